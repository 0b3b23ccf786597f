package reel

import (
	"context"
	"fmt"
	"strings"

	"meetingreel/config"
	"meetingreel/core/media"
	"meetingreel/logger"
	"meetingreel/model"
)

// Bumper colors and tones. Transitions sit visually between the intro and
// outro shades so the reel reads as one piece.
const (
	introBackground      = "0x24344D"
	transitionBackground = "0x2C3E50"
	outroBackground      = "0x1B2838"

	introToneHz      = 523
	transitionToneHz = 659
	outroToneHz      = 392
)

// BumperSynth produces the short synthetic clips that frame the reel: one
// intro, one outro, and a transition between every pair of adjacent highlight
// clips. Bumpers are generated from lavfi sources, never cut from footage.
type BumperSynth struct {
	engine media.Engine
	cfg    *config.Config
}

// NewBumperSynth creates a bumper synthesizer driving the given engine.
func NewBumperSynth(engine media.Engine, cfg *config.Config) *BumperSynth {
	return &BumperSynth{engine: engine, cfg: cfg}
}

// Intro renders the opening bumper: meeting title, date, and highlight count.
func (b *BumperSynth) Intro(ctx context.Context, sess *Session, meeting model.MeetingInfo, highlightCount int) (string, error) {
	lines := []string{
		meeting.DisplayTitle(),
		fmt.Sprintf("%s · %d highlights", meeting.StartedAt.Format("Jan 2, 2006"), highlightCount),
	}
	return b.render(ctx, sess, "intro", introBackground, introToneHz, lines)
}

// Outro renders the closing bumper.
func (b *BumperSynth) Outro(ctx context.Context, sess *Session, meeting model.MeetingInfo, highlightCount int) (string, error) {
	lines := []string{
		fmt.Sprintf("%d highlights from %s", highlightCount, meeting.DisplayTitle()),
		"Thanks for watching",
	}
	return b.render(ctx, sess, "outro", outroBackground, outroToneHz, lines)
}

// Transition renders the bumper announcing the next highlight. Only the
// upcoming clip matters for the announcement text; the previous one is there
// for symmetry with the reel structure.
func (b *BumperSynth) Transition(ctx context.Context, sess *Session, ordinal int, _, next model.Highlight) (string, error) {
	topic := next.Description
	if topic == "" {
		topic = strings.ToUpper(string(next.Type))
	}
	lines := []string{"Next: " + topic}
	return b.render(ctx, sess, fmt.Sprintf("transition_%03d", ordinal), transitionBackground, transitionToneHz, lines)
}

// render produces one bumper clip into a registered temp file.
func (b *BumperSynth) render(ctx context.Context, sess *Session, name, background string, toneHz int, lines []string) (string, error) {
	outPath := sess.TempPath(name + ".mp4")
	args := buildBumperArgs(b.cfg, outPath, background, toneHz, lines)

	if err := b.engine.Run(ctx, args); err != nil {
		return "", fmt.Errorf("rendering %s bumper: %w", name, err)
	}

	logger.Debug("bumper rendered",
		logger.String("runId", sess.RunID),
		logger.String("bumper", name))

	return outPath, nil
}

// buildBumperArgs assembles the ffmpeg argument list for one bumper: a solid
// color source, a generated tone, and up to two caption lines.
func buildBumperArgs(cfg *config.Config, outPath, background string, toneHz int, lines []string) []string {
	seconds := float64(cfg.BumperSeconds)

	args := globalArgs()
	args = append(args,
		"-f", "lavfi", "-i", colorSource(cfg, background, seconds),
		"-f", "lavfi", "-i", toneSource(cfg, toneHz, seconds),
	)

	var filters []string
	switch len(lines) {
	case 1:
		filters = append(filters, drawtext(lines[0], 40, "(w-text_w)/2", "(h-th)/2"))
	default:
		filters = append(filters, drawtext(lines[0], 44, "(w-text_w)/2", "(h-th)/2-40"))
		filters = append(filters, drawtext(lines[1], 30, "(w-text_w)/2", "(h-th)/2+40"))
	}

	args = append(args, "-vf", strings.Join(filters, ","))
	args = append(args,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-shortest",
	)
	args = append(args, outputArgs(cfg)...)
	args = append(args, outPath)
	return args
}
