package reel

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"meetingreel/logger"
)

// Session holds the per-run mutable state: a unique run id and the registry
// of every temporary file the run created. Concurrent runs for different
// meetings share only the filesystem; the run id keeps their temp file names
// from colliding.
type Session struct {
	RunID   string
	tempDir string

	mu        sync.Mutex
	tempFiles []string
	torn      bool
}

// NewSession creates a session with a fresh run id, making sure the shared
// scratch directory exists.
func NewSession(tempDir string) (*Session, error) {
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}
	return &Session{
		RunID:   uuid.NewString(),
		tempDir: tempDir,
	}, nil
}

// TempPath reserves a uniquely-named temporary file path for this run and
// registers it for cleanup. The file itself is created later by the engine.
func (s *Session) TempPath(name string) string {
	path := filepath.Join(s.tempDir, "reel_"+s.RunID+"_"+name)
	s.Register(path)
	return path
}

// Register adds a path to the cleanup registry. Registering the same path
// twice is harmless; removal is attempted once per registered entry.
func (s *Session) Register(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tempFiles = append(s.tempFiles, path)
}

// Teardown deletes every registered temporary file. It runs at most once per
// session and is best-effort: a failed delete is logged, never escalated, and
// does not change the outcome of the run that owns this session.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.torn {
		return
	}
	s.torn = true

	for _, path := range s.tempFiles {
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			logger.Warn("failed to remove temp file",
				logger.String("runId", s.RunID),
				logger.String("path", path),
				logger.ErrorField(err))
		}
	}

	logger.Debug("session teardown complete",
		logger.String("runId", s.RunID),
		logger.Int("tempFiles", len(s.tempFiles)))
}
