package reel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"meetingreel/config"
	"meetingreel/core/media"
	"meetingreel/logger"
	"meetingreel/model"
)

// Seconds of placeholder footage per highlight in fallback videos.
const fallbackSecondsPerHighlight = 15

const fallbackBackground = "0x3A2E39"
const fallbackToneHz = 440

// FallbackSynth produces a degraded artifact when the primary path cannot
// run. Tiers are an ordered list of strategies tried through one uniform
// attempt signature; each tier runs only after the previous one errored.
type FallbackSynth struct {
	engine media.Engine
	cfg    *config.Config
}

// NewFallbackSynth creates a fallback synthesizer driving the given engine.
func NewFallbackSynth(engine media.Engine, cfg *config.Config) *FallbackSynth {
	return &FallbackSynth{engine: engine, cfg: cfg}
}

type fallbackTier struct {
	tier    model.FallbackTier
	ext     string
	attempt func(ctx context.Context, outPath string, meetingID string, highlights []model.Highlight) error
}

// Synthesize walks the tier cascade and returns the first artifact that
// could be produced, tagged with the originating failure reason and the tier
// that served it. Only when every tier fails does the run surface an error.
func (f *FallbackSynth) Synthesize(ctx context.Context, meetingID string, highlights []model.Highlight, reason model.FallbackReason) (*model.PipelineResult, error) {
	if err := os.MkdirAll(f.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	tiers := []fallbackTier{
		{model.TierPlaceholderVideo, ".mp4", f.placeholderVideo},
		{model.TierPlainVideo, ".mp4", f.plainVideo},
		{model.TierTextManifest, ".txt", f.textManifest},
	}

	base := fmt.Sprintf("reel_%s_fallback_%s", meetingID, uuid.NewString()[:8])

	var lastErr error
	for _, t := range tiers {
		outPath := filepath.Join(f.cfg.OutputDir, base+"_"+string(t.tier)+t.ext)
		if err := t.attempt(ctx, outPath, meetingID, highlights); err != nil {
			logger.Warn("fallback tier failed",
				logger.String("meetingId", meetingID),
				logger.String("tier", string(t.tier)),
				logger.ErrorField(err))
			lastErr = err
			continue
		}

		logger.Info("fallback artifact produced",
			logger.String("meetingId", meetingID),
			logger.String("tier", string(t.tier)),
			logger.String("reason", string(reason)),
			logger.String("output", outPath))

		return &model.PipelineResult{
			OutputPath: outPath,
			Fallback:   true,
			Reason:     reason,
			Tier:       t.tier,
		}, nil
	}

	return nil, fmt.Errorf("all fallback tiers failed for meeting %s: %w", meetingID, lastErr)
}

// placeholderVideo is tier one: a synthetic clip with a descriptive caption.
func (f *FallbackSynth) placeholderVideo(ctx context.Context, outPath, meetingID string, highlights []model.Highlight) error {
	if !f.engine.Available() {
		return fmt.Errorf("encoding engine unavailable")
	}

	seconds := float64(len(highlights) * fallbackSecondsPerHighlight)
	caption := fmt.Sprintf("Highlight reel unavailable · %d highlights captured", len(highlights))

	args := f.placeholderArgs(seconds, drawtext(caption, 36, "(w-text_w)/2", "(h-th)/2"), outPath)
	return f.engine.Run(ctx, args)
}

// plainVideo is tier two: the same synthetic clip without any text, for
// engines built without the drawtext filter.
func (f *FallbackSynth) plainVideo(ctx context.Context, outPath, meetingID string, highlights []model.Highlight) error {
	if !f.engine.Available() {
		return fmt.Errorf("encoding engine unavailable")
	}

	seconds := float64(len(highlights) * fallbackSecondsPerHighlight)
	args := f.placeholderArgs(seconds, "", outPath)
	return f.engine.Run(ctx, args)
}

// textManifest is the last resort: a plain-text listing of the highlights, so
// the caller still receives something attributable to the meeting.
func (f *FallbackSynth) textManifest(_ context.Context, outPath, meetingID string, highlights []model.Highlight) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Highlight manifest for meeting %s\n", meetingID))
	sb.WriteString(fmt.Sprintf("%d highlights (video synthesis unavailable)\n\n", len(highlights)))
	for _, h := range highlights {
		sb.WriteString(fmt.Sprintf("%8.1fs  %-10s  %-8s  %s\n",
			float64(h.Timestamp)/1000, h.Type, h.Priority, h.ParticipantID))
	}
	return os.WriteFile(outPath, []byte(sb.String()), 0644)
}

// placeholderArgs builds the lavfi color+tone encode shared by the two video
// tiers; filter may be empty.
func (f *FallbackSynth) placeholderArgs(seconds float64, filter, outPath string) []string {
	args := globalArgs()
	args = append(args,
		"-f", "lavfi", "-i", colorSource(f.cfg, fallbackBackground, seconds),
		"-f", "lavfi", "-i", toneSource(f.cfg, fallbackToneHz, seconds),
	)
	if filter != "" {
		args = append(args, "-vf", filter)
	}
	args = append(args,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-shortest",
	)
	args = append(args, outputArgs(f.cfg)...)
	args = append(args, outPath)
	return args
}
