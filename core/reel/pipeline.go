// Package reel turns a meeting recording plus its flagged highlights into a
// single composed highlight video: intro, annotated clips separated by
// transition bumpers, outro. The external encoding engine is driven as an
// opaque subprocess; when it is unavailable or fails, the run degrades to a
// fallback artifact instead of a reel.
package reel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"meetingreel/config"
	"meetingreel/core/media"
	"meetingreel/logger"
	"meetingreel/model"
)

// ErrSourceMissing is returned when the source recording cannot be found.
// Like ErrNoHighlights it is an input error: the caller gets it back
// directly, no fallback artifact is produced, and no subprocess is spawned.
var ErrSourceMissing = fmt.Errorf("source recording not found")

// ErrInvalidHighlight wraps per-highlight validation failures so callers can
// distinguish them from pipeline failures.
var ErrInvalidHighlight = fmt.Errorf("invalid highlight")

// Pipeline sequences one reel generation run: validate, schedule, render,
// assemble, clean up. Stages run strictly sequentially — one engine
// subprocess at a time — and no stage retries; any stage failure aborts the
// whole run into the fallback branch. Independent runs for different
// meetings may execute concurrently; they share only the filesystem.
type Pipeline struct {
	engine    media.Engine
	cfg       *config.Config
	renderer  *Renderer
	bumpers   *BumperSynth
	assembler *Assembler
	fallback  *FallbackSynth
}

// New creates a pipeline around the given engine.
func New(engine media.Engine, cfg *config.Config) *Pipeline {
	return &Pipeline{
		engine:    engine,
		cfg:       cfg,
		renderer:  NewRenderer(engine, cfg),
		bumpers:   NewBumperSynth(engine, cfg),
		assembler: NewAssembler(engine, cfg),
		fallback:  NewFallbackSynth(engine, cfg),
	}
}

// GenerateHighlightReel runs the full pipeline for one meeting. It blocks
// until every engine subprocess has finished. The caller always receives
// either a finished reel path or a tagged fallback artifact — never a
// half-built manifest or a dangling temp file.
func (p *Pipeline) GenerateHighlightReel(ctx context.Context, req model.ReelRequest) (*model.PipelineResult, error) {
	began := time.Now()

	// --- Validate: input errors fail fast, before any subprocess. ---
	if len(req.Highlights) == 0 {
		return nil, ErrNoHighlights
	}
	if _, err := os.Stat(req.SourcePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, req.SourcePath)
	}

	// --- Engine probe: decided once per run. ---
	if !p.engine.Available() {
		logger.Warn("encoding engine unavailable, skipping primary path",
			logger.String("meetingId", req.Meeting.ID))
		return p.fallback.Synthesize(ctx, req.Meeting.ID, req.Highlights, model.ReasonEngineUnavailable)
	}

	// Timestamps past the recording end are caller errors too, but only
	// enforceable when the probe yields a duration.
	sourceDuration, err := p.engine.Duration(ctx, req.SourcePath)
	if err != nil {
		logger.Warn("could not probe source duration",
			logger.String("source", req.SourcePath),
			logger.ErrorField(err))
		sourceDuration = 0
	}
	for _, h := range req.Highlights {
		if err := h.Validate(sourceDuration); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHighlight, err)
		}
	}

	ordered, err := Schedule(req.Highlights)
	if err != nil {
		return nil, err
	}

	sess, err := NewSession(p.cfg.TempDir)
	if err != nil {
		return nil, fmt.Errorf("creating run session: %w", err)
	}

	logger.Info("reel run started",
		logger.String("runId", sess.RunID),
		logger.String("meetingId", req.Meeting.ID),
		logger.Int("highlights", len(ordered)))

	// --- Render highlight clips, in scheduled order. ---
	clips := make([]string, 0, len(ordered))
	for i, h := range ordered {
		duration := ClipDuration(h)
		start := ClipStart(h, duration)

		path, err := p.renderer.Render(ctx, sess, req.SourcePath, start, duration, i, h)
		if err != nil {
			// One failed segment aborts the whole run: dropping it silently
			// would break the schedule computed for the full set.
			return p.abort(ctx, sess, req, model.ReasonRenderFailed, err)
		}
		clips = append(clips, path)
	}

	// --- Transitions between adjacent clips; never at the outer edges. ---
	transitions := make([]string, 0, len(ordered)-1)
	for i := 0; i < len(ordered)-1; i++ {
		path, err := p.bumpers.Transition(ctx, sess, i, ordered[i], ordered[i+1])
		if err != nil {
			return p.abort(ctx, sess, req, model.ReasonRenderFailed, err)
		}
		transitions = append(transitions, path)
	}

	// --- Intro and outro. ---
	introPath, err := p.bumpers.Intro(ctx, sess, req.Meeting, len(ordered))
	if err != nil {
		return p.abort(ctx, sess, req, model.ReasonRenderFailed, err)
	}
	outroPath, err := p.bumpers.Outro(ctx, sess, req.Meeting, len(ordered))
	if err != nil {
		return p.abort(ctx, sess, req, model.ReasonRenderFailed, err)
	}

	// --- Assemble in manifest order. ---
	manifest := &model.TimelineManifest{}
	manifest.Append(introPath, model.SegmentIntro)
	for i, clip := range clips {
		manifest.Append(clip, model.SegmentClip)
		if i < len(transitions) {
			manifest.Append(transitions[i], model.SegmentTransition)
		}
	}
	manifest.Append(outroPath, model.SegmentOutro)

	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return p.abort(ctx, sess, req, model.ReasonAssembleFailed, err)
	}
	outPath := filepath.Join(p.cfg.OutputDir,
		fmt.Sprintf("reel_%s_%s.mp4", req.Meeting.ID, sess.RunID[:8]))

	if err := p.assembler.Assemble(ctx, sess, manifest, outPath); err != nil {
		return p.abort(ctx, sess, req, model.ReasonAssembleFailed, err)
	}

	sess.Teardown()

	logger.Info("reel run complete",
		logger.String("runId", sess.RunID),
		logger.String("meetingId", req.Meeting.ID),
		logger.String("output", outPath),
		logger.Duration("took", time.Since(began)))

	return &model.PipelineResult{OutputPath: outPath}, nil
}

// abort handles the degradation branch: log, clean up the run's temp files,
// and hand over to the fallback cascade. The orchestrator is the only place
// that decides escalation versus degradation.
func (p *Pipeline) abort(ctx context.Context, sess *Session, req model.ReelRequest, reason model.FallbackReason, cause error) (*model.PipelineResult, error) {
	logger.Error("reel run aborted",
		logger.String("runId", sess.RunID),
		logger.String("meetingId", req.Meeting.ID),
		logger.String("reason", string(reason)),
		logger.ErrorField(cause))

	sess.Teardown()
	return p.fallback.Synthesize(ctx, req.Meeting.ID, req.Highlights, reason)
}
