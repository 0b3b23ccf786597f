package reel

import (
	"fmt"
	"strconv"
	"strings"

	"meetingreel/config"
	"meetingreel/model"
)

// Every segment and bumper is encoded with the same codec pair, container,
// geometry, frame rate, and audio layout. Concatenation relies on this: the
// assembler stream-copies, it never re-muxes.

// globalArgs is the invocation preamble shared by every encode.
func globalArgs() []string {
	return []string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error"}
}

// outputArgs returns the codec and format arguments that pin every produced
// file to the pipeline's single output format.
func outputArgs(cfg *config.Config) []string {
	return []string{
		"-c:v", cfg.VideoCodec,
		"-b:v", cfg.VideoBitrate,
		"-pix_fmt", "yuv420p",
		"-r", strconv.Itoa(cfg.FrameRate),
		"-c:a", cfg.AudioCodec,
		"-b:a", cfg.AudioBitrate,
		"-ar", strconv.Itoa(cfg.SampleRate),
		"-ac", "2",
		"-movflags", "+faststart",
	}
}

// colorSource builds a lavfi solid-color video source of the given length.
func colorSource(cfg *config.Config, color string, seconds float64) string {
	return fmt.Sprintf("color=c=%s:s=%s:r=%d:d=%s",
		color, cfg.Resolution, cfg.FrameRate, formatSeconds(seconds))
}

// silentSource builds a lavfi silent audio source matching the pipeline's
// audio layout.
func silentSource(cfg *config.Config) string {
	return fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=%d", cfg.SampleRate)
}

// toneSource builds a lavfi sine tone of the given length.
func toneSource(cfg *config.Config, frequency int, seconds float64) string {
	return fmt.Sprintf("sine=frequency=%d:sample_rate=%d:duration=%s",
		frequency, cfg.SampleRate, formatSeconds(seconds))
}

// scalePad normalizes source footage to the pipeline geometry, preserving
// aspect ratio with black bars.
func scalePad(cfg *config.Config) string {
	wh := strings.SplitN(cfg.Resolution, "x", 2)
	w, h := wh[0], "720"
	if len(wh) == 2 {
		h = wh[1]
	}
	return fmt.Sprintf("scale=%s:%s:force_original_aspect_ratio=decrease,pad=%s:%s:(ow-iw)/2:(oh-ih)/2",
		w, h, w, h)
}

// drawtext builds one drawtext filter with the pipeline's boxed caption look.
func drawtext(text string, fontsize int, x, y string) string {
	return fmt.Sprintf("drawtext=text='%s':fontcolor=white:fontsize=%d:x=%s:y=%s:box=1:boxcolor=black@0.5:boxborderw=12",
		escapeDrawtext(text), fontsize, x, y)
}

// drawtextEscaper escapes characters that terminate or re-parse a filter
// argument. Single quotes are swapped for a typographic apostrophe instead of
// escaped: nesting quote levels inside an already-quoted drawtext argument is
// not worth fighting.
var drawtextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`:`, `\:`,
	`%`, `\%`,
	`,`, `\,`,
	`'`, "’",
)

func escapeDrawtext(s string) string {
	return drawtextEscaper.Replace(s)
}

// formatSeconds renders a duration for ffmpeg arguments without trailing
// float noise.
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// typeIcons keys the overlay icon by highlight type.
var typeIcons = map[model.HighlightType]string{
	model.TypeDecision:   "✅",
	model.TypeProblem:    "⚠️",
	model.TypeSolution:   "💡",
	model.TypeAction:     "📋",
	model.TypeUrgent:     "🔥",
	model.TypeEmotional:  "💬",
	model.TypeDiscussion: "🗣️",
	model.TypeOther:      "⭐",
}

// overlayText builds the single-line caption burned into a highlight clip:
// type icon, priority label, then the description or the upper-cased type.
func overlayText(h model.Highlight) string {
	icon, ok := typeIcons[h.Type]
	if !ok {
		icon = typeIcons[model.TypeOther]
	}

	label := string(h.Priority)
	if label == "" {
		label = string(model.PriorityLow)
	}

	text := h.Description
	if text == "" {
		text = strings.ToUpper(string(h.Type))
	}

	return fmt.Sprintf("%s [%s] %s", icon, strings.ToUpper(label), text)
}
