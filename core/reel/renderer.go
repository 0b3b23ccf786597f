package reel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"meetingreel/config"
	"meetingreel/core/media"
	"meetingreel/logger"
	"meetingreel/model"
)

// Background color for synthesized video when the source has no video stream
// at the highlighted moment.
const audioOnlyBackground = "0x1F2A44"

// Renderer extracts one annotated clip per highlight from the source
// recording. Clips are always re-encoded, never stream-copied: the overlay is
// burned in, and missing streams are synthesized so every clip carries both a
// video and an audio track.
type Renderer struct {
	engine media.Engine
	cfg    *config.Config
}

// NewRenderer creates a segment renderer driving the given engine.
func NewRenderer(engine media.Engine, cfg *config.Config) *Renderer {
	return &Renderer{engine: engine, cfg: cfg}
}

// Render cuts [start, start+duration) out of the source recording into a
// registered temp file and returns its path. A non-zero engine exit is fatal
// for the run; the renderer never retries.
func (r *Renderer) Render(ctx context.Context, sess *Session, sourcePath string, start, duration float64, ordinal int, h model.Highlight) (string, error) {
	outPath := sess.TempPath(fmt.Sprintf("clip_%03d_%s.mp4", ordinal, h.ID))
	args := buildSegmentArgs(r.cfg, sourcePath, outPath, start, duration, h)

	began := time.Now()
	if err := r.engine.Run(ctx, args); err != nil {
		return "", fmt.Errorf("rendering segment for highlight %s: %w", h.ID, err)
	}

	logger.Info("segment rendered",
		logger.String("runId", sess.RunID),
		logger.String("highlightId", h.ID),
		logger.String("type", string(h.Type)),
		logger.Float64("start", start),
		logger.Float64("duration", duration),
		logger.Duration("took", time.Since(began)))

	return outPath, nil
}

// buildSegmentArgs assembles the full ffmpeg argument list for one highlight
// clip. Input layout varies with stream availability; the output format never
// does.
func buildSegmentArgs(cfg *config.Config, sourcePath, outPath string, start, duration float64, h model.Highlight) []string {
	args := globalArgs()

	videoInput := -1 // input index carrying the video track
	audioInput := -1
	inputs := 0

	if !h.VideoAvailable() {
		// Synthetic backdrop replaces the missing video track.
		args = append(args, "-f", "lavfi", "-i", colorSource(cfg, audioOnlyBackground, duration))
		videoInput = inputs
		inputs++
	}

	if h.VideoAvailable() || h.AudioAvailable() {
		// Seek before the input so ffmpeg skips decode up to the window.
		args = append(args,
			"-ss", formatSeconds(start),
			"-t", formatSeconds(duration),
			"-i", sourcePath,
		)
		if h.VideoAvailable() {
			videoInput = inputs
		}
		if h.AudioAvailable() {
			audioInput = inputs
		}
		inputs++
	}

	if !h.AudioAvailable() {
		// Silent track keeps the clip stream-compatible with the rest of the reel.
		args = append(args,
			"-f", "lavfi",
			"-t", formatSeconds(duration),
			"-i", silentSource(cfg),
		)
		audioInput = inputs
		inputs++
	}

	args = append(args, "-vf", segmentFilter(cfg, h))
	args = append(args,
		"-map", fmt.Sprintf("%d:v:0", videoInput),
		"-map", fmt.Sprintf("%d:a:0", audioInput),
		"-shortest",
	)
	args = append(args, outputArgs(cfg)...)
	args = append(args, outPath)
	return args
}

// segmentFilter builds the video filter chain: geometry normalization for
// real footage, then the highlight caption, plus a centered "audio only"
// marker when the video track is synthetic.
func segmentFilter(cfg *config.Config, h model.Highlight) string {
	var filters []string
	if h.VideoAvailable() {
		filters = append(filters, scalePad(cfg))
	}
	filters = append(filters, drawtext(overlayText(h), 36, "(w-text_w)/2", "h-th-60"))
	if !h.VideoAvailable() {
		filters = append(filters, drawtext("audio only", 28, "(w-text_w)/2", "(h-th)/2"))
	}
	return strings.Join(filters, ",")
}
