package reel

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingreel/model"
)

func fallbackHighlights() []model.Highlight {
	return []model.Highlight{
		{ID: "h1", Timestamp: 12000, Type: model.TypeDecision, Priority: model.PriorityHigh, ParticipantID: "alice"},
		{ID: "h2", Timestamp: 48000, Type: model.TypeProblem, Priority: model.PriorityLow, ParticipantID: "bob"},
	}
}

func TestFallbackFirstTierServes(t *testing.T) {
	cfg := testConfig(t)
	engine := &fakeEngine{available: true}
	f := NewFallbackSynth(engine, cfg)

	result, err := f.Synthesize(context.Background(), "m-1", fallbackHighlights(), model.ReasonRenderFailed)
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	assert.Equal(t, model.ReasonRenderFailed, result.Reason)
	assert.Equal(t, model.TierPlaceholderVideo, result.Tier)
	assert.True(t, strings.HasSuffix(result.OutputPath, ".mp4"))
	assert.FileExists(t, result.OutputPath)

	// Placeholder length: 2 highlights × 15s.
	call := engine.callContaining("color=")
	require.NotNil(t, call)
	assert.Contains(t, strings.Join(call, " "), "d=30")
}

func TestFallbackCascadesPastDrawtext(t *testing.T) {
	cfg := testConfig(t)
	engine := &fakeEngine{
		available: true,
		failOn: func(args []string) error {
			if strings.Contains(strings.Join(args, " "), "drawtext") {
				return assert.AnError
			}
			return nil
		},
	}
	f := NewFallbackSynth(engine, cfg)

	result, err := f.Synthesize(context.Background(), "m-1", fallbackHighlights(), model.ReasonAssembleFailed)
	require.NoError(t, err)
	assert.Equal(t, model.TierPlainVideo, result.Tier)
	assert.Equal(t, model.ReasonAssembleFailed, result.Reason)
	assert.FileExists(t, result.OutputPath)
}

func TestFallbackTextManifestLastResort(t *testing.T) {
	cfg := testConfig(t)
	engine := &fakeEngine{available: false}
	f := NewFallbackSynth(engine, cfg)

	result, err := f.Synthesize(context.Background(), "m-1", fallbackHighlights(), model.ReasonEngineUnavailable)
	require.NoError(t, err)
	assert.Equal(t, model.TierTextManifest, result.Tier)
	assert.True(t, strings.HasSuffix(result.OutputPath, ".txt"))

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "m-1")
	assert.Contains(t, text, "alice")
	assert.Contains(t, text, "bob")
	assert.Contains(t, text, "12.0s")
	assert.Contains(t, text, "decision")
}
