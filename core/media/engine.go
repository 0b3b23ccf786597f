// Package media wraps the external encoding engine. Every encode, extract,
// and concatenate operation goes through an out-of-process ffmpeg invocation;
// there is no other coupling with the engine.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"meetingreel/logger"
)

// Engine is the minimal surface the pipeline needs from the encoding engine.
// It exists so pipeline stages can run against a fake in tests.
type Engine interface {
	// Available reports whether the engine is callable. Consulted once per
	// run before committing to the primary path.
	Available() bool
	// Run executes one engine invocation and blocks until it exits.
	Run(ctx context.Context, args []string) error
	// Duration probes a media file and returns its length in seconds.
	Duration(ctx context.Context, path string) (float64, error)
}

// FFmpeg implements Engine by shelling out to ffmpeg/ffprobe.
type FFmpeg struct {
	ffmpegPath string
}

// NewFFmpeg creates an FFmpeg engine using the given ffmpeg binary path.
func NewFFmpeg(ffmpegPath string) *FFmpeg {
	return &FFmpeg{ffmpegPath: ffmpegPath}
}

// probePath derives the ffprobe binary path from the configured ffmpeg path.
func (e *FFmpeg) probePath() string {
	return strings.Replace(e.ffmpegPath, "ffmpeg", "ffprobe", 1)
}

// Available reports whether both ffmpeg and ffprobe resolve to executables.
func (e *FFmpeg) Available() bool {
	if _, err := exec.LookPath(e.ffmpegPath); err != nil {
		return false
	}
	if _, err := exec.LookPath(e.probePath()); err != nil {
		return false
	}
	return true
}

// Run executes ffmpeg with the given arguments. Stderr is captured and folded
// into the returned error; a kill by the environment surfaces the same way as
// a non-zero exit.
func (e *FFmpeg) Run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("executing ffmpeg",
		logger.String("path", e.ffmpegPath),
		logger.String("args", strings.Join(args, " ")))

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg execution failed: %w\nFFmpeg Error: %s", err, stderr.String())
	}
	return nil
}

// ffprobeOutput defines the structure for ffprobe JSON output.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration uses ffprobe to get the duration of a media file in seconds.
func (e *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	}

	cmd := exec.CommandContext(ctx, e.probePath(), args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe execution failed for %s: %w\nFFprobe Error: %s", path, err, stderr.String())
	}

	var probeData ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probeData); err != nil {
		return 0, fmt.Errorf("failed to unmarshal ffprobe output for %s: %w", path, err)
	}

	if probeData.Format.Duration == "" {
		return 0, fmt.Errorf("duration not found in ffprobe output for %s", path)
	}

	duration, err := strconv.ParseFloat(probeData.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q for %s: %w", probeData.Format.Duration, path, err)
	}

	return duration, nil
}
