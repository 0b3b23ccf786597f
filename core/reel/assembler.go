package reel

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"meetingreel/config"
	"meetingreel/core/media"
	"meetingreel/logger"
	"meetingreel/model"
)

// Assembler concatenates the rendered segments, in manifest order, into the
// final reel. All inputs already share one codec pair and container, so the
// engine runs in lossless stream-copy mode.
type Assembler struct {
	engine media.Engine
	cfg    *config.Config
}

// NewAssembler creates a timeline assembler driving the given engine.
func NewAssembler(engine media.Engine, cfg *config.Config) *Assembler {
	return &Assembler{engine: engine, cfg: cfg}
}

// Assemble writes the concat list for the manifest and invokes the engine's
// concat demuxer. The list file is a registered temp artifact like any other
// segment. No reordering, deduplication, or trimming happens here.
func (a *Assembler) Assemble(ctx context.Context, sess *Session, manifest *model.TimelineManifest, outPath string) error {
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("invalid timeline manifest: %w", err)
	}

	listPath := sess.TempPath("concat.txt")
	if err := os.WriteFile(listPath, []byte(concatList(manifest)), 0644); err != nil {
		return fmt.Errorf("writing concat list: %w", err)
	}

	args := globalArgs()
	args = append(args,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-movflags", "+faststart",
		outPath,
	)

	began := time.Now()
	if err := a.engine.Run(ctx, args); err != nil {
		return fmt.Errorf("concatenating %d segments: %w", len(manifest.Segments), err)
	}

	logger.Info("timeline assembled",
		logger.String("runId", sess.RunID),
		logger.Int("segments", len(manifest.Segments)),
		logger.Int("clips", manifest.ClipCount()),
		logger.String("output", outPath),
		logger.Duration("took", time.Since(began)))

	return nil
}

// concatList renders the manifest in the engine's concat demuxer format, one
// `file` directive per segment in order.
func concatList(manifest *model.TimelineManifest) string {
	var sb strings.Builder
	for _, seg := range manifest.Segments {
		sb.WriteString("file '")
		sb.WriteString(escapeConcatPath(seg.Path))
		sb.WriteString("'\n")
	}
	return sb.String()
}

// escapeConcatPath escapes a path for a single-quoted concat directive. The
// demuxer's quoting rule: close the quote, emit an escaped quote, reopen.
func escapeConcatPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
