package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"meetingreel/config"
	"meetingreel/core/media"
	"meetingreel/core/reel"
	"meetingreel/logger"
	"meetingreel/model"
)

const requestSuffix = ".reel.json"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a drop directory for reel requests",
	Long: `Watch the configured drop directory. When a *.reel.json request file
appears (a ReelRequest: meeting metadata, sourcePath, highlights), a pipeline
run is started for it. Requests are processed one at a time, in arrival order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := os.MkdirAll(cfg.WatchDir, 0755); err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		if err := watcher.Add(cfg.WatchDir); err != nil {
			return err
		}

		pipeline := reel.New(media.NewFFmpeg(cfg.FFmpegPath), cfg)
		logger.Info("watching for reel requests", logger.String("dir", cfg.WatchDir))

		// Files still being written are parked here until their size settles.
		pending := make(map[string]time.Time)
		processed := make(map[string]bool)
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) != 0 &&
					strings.HasSuffix(event.Name, requestSuffix) {
					pending[event.Name] = time.Now()
				}

			case <-ticker.C:
				now := time.Now()
				for path, seen := range pending {
					if now.Sub(seen) < 500*time.Millisecond {
						continue
					}
					delete(pending, path)
					if processed[path] {
						continue
					}
					processed[path] = true
					runRequest(pipeline, path)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error", logger.ErrorField(err))
			}
		}
	},
}

// runRequest parses one dropped request file and runs the pipeline for it.
// A relative sourcePath is resolved against the request file's directory.
func runRequest(pipeline *reel.Pipeline, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("cannot read reel request", logger.String("path", path), logger.ErrorField(err))
		return
	}

	var req model.ReelRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Error("cannot parse reel request", logger.String("path", path), logger.ErrorField(err))
		return
	}

	if req.SourcePath != "" && !filepath.IsAbs(req.SourcePath) {
		req.SourcePath = filepath.Join(filepath.Dir(path), req.SourcePath)
	}
	if req.Meeting.StartedAt.IsZero() {
		req.Meeting.StartedAt = time.Now()
	}

	result, err := pipeline.GenerateHighlightReel(context.Background(), req)
	if err != nil {
		logger.Error("reel request failed",
			logger.String("path", path),
			logger.String("meetingId", req.Meeting.ID),
			logger.ErrorField(err))
		return
	}

	logger.Info("reel request served",
		logger.String("path", path),
		logger.String("meetingId", req.Meeting.ID),
		logger.String("output", result.OutputPath),
		logger.Bool("fallback", result.Fallback))
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
