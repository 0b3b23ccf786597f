package reel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingreel/model"
)

func buildManifest(paths ...string) *model.TimelineManifest {
	m := &model.TimelineManifest{}
	for i, p := range paths {
		kind := model.SegmentClip
		switch {
		case i == 0:
			kind = model.SegmentIntro
		case i == len(paths)-1:
			kind = model.SegmentOutro
		case i%2 == 0:
			kind = model.SegmentTransition
		}
		m.Append(p, kind)
	}
	return m
}

func TestAssembleWritesConcatListInOrder(t *testing.T) {
	cfg := testConfig(t)
	engine := &fakeEngine{available: true}
	a := NewAssembler(engine, cfg)

	sess, err := NewSession(cfg.TempDir)
	require.NoError(t, err)

	manifest := buildManifest("intro.mp4", "clip0.mp4", "trans0.mp4", "clip1.mp4", "outro.mp4")
	outPath := filepath.Join(cfg.OutputDir, "final.mp4")

	// Capture the list file contents before teardown deletes it.
	var listContent string
	engine.failOn = func(args []string) error {
		for i, arg := range args {
			if arg == "-i" && i+1 < len(args) {
				data, err := os.ReadFile(args[i+1])
				require.NoError(t, err)
				listContent = string(data)
			}
		}
		return nil
	}

	require.NoError(t, a.Assemble(context.Background(), sess, manifest, outPath))

	lines := strings.Split(strings.TrimSpace(listContent), "\n")
	assert.Equal(t, []string{
		"file 'intro.mp4'",
		"file 'clip0.mp4'",
		"file 'trans0.mp4'",
		"file 'clip1.mp4'",
		"file 'outro.mp4'",
	}, lines)

	call := engine.callContaining("-f concat")
	require.NotNil(t, call)
	assert.Contains(t, strings.Join(call, " "), "-c copy")

	sess.Teardown()
	assert.Equal(t, 0, tempFileCount(t, cfg.TempDir))
}

func TestAssembleRejectsMalformedManifest(t *testing.T) {
	cfg := testConfig(t)
	engine := &fakeEngine{available: true}
	a := NewAssembler(engine, cfg)

	sess, err := NewSession(cfg.TempDir)
	require.NoError(t, err)
	defer sess.Teardown()

	// Two clips with no transition between them.
	m := &model.TimelineManifest{}
	m.Append("intro.mp4", model.SegmentIntro)
	m.Append("clip0.mp4", model.SegmentClip)
	m.Append("clip1.mp4", model.SegmentClip)
	m.Append("outro.mp4", model.SegmentOutro)

	err = a.Assemble(context.Background(), sess, m, "final.mp4")
	assert.Error(t, err)
	assert.Equal(t, 0, engine.callCount())
}

func TestEscapeConcatPath(t *testing.T) {
	assert.Equal(t, `/tmp/it'\''s.mp4`, escapeConcatPath("/tmp/it's.mp4"))
	assert.Equal(t, "/tmp/plain.mp4", escapeConcatPath("/tmp/plain.mp4"))
}
