package reel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingreel/model"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildSegmentArgsFullStreams(t *testing.T) {
	cfg := testConfig(t)
	h := model.Highlight{
		ID:          "h1",
		Type:        model.TypeDecision,
		Priority:    model.PriorityHigh,
		Description: "Ship the release",
	}

	args := buildSegmentArgs(cfg, "in.mp4", "out.mp4", 30, 20, h)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-ss 30 -t 20 -i in.mp4")
	assert.Contains(t, joined, "-map 0:v:0")
	assert.Contains(t, joined, "-map 0:a:0")
	assert.Contains(t, joined, "-c:v libx264")
	assert.Contains(t, joined, "-c:a aac")
	assert.Contains(t, joined, "scale=1280:720")
	assert.Contains(t, joined, "[HIGH] Ship the release")
	assert.Equal(t, "out.mp4", args[len(args)-1])
	assert.NotContains(t, joined, "anullsrc")
	assert.NotContains(t, joined, "color=")
}

func TestBuildSegmentArgsNoVideo(t *testing.T) {
	cfg := testConfig(t)
	h := model.Highlight{
		ID:       "h2",
		Type:     model.TypeProblem,
		HasVideo: boolPtr(false),
	}

	args := buildSegmentArgs(cfg, "in.mp4", "out.mp4", 0, 25, h)
	joined := strings.Join(args, " ")

	// Synthetic backdrop carries the video; the source contributes audio.
	assert.Contains(t, joined, "color=c="+audioOnlyBackground)
	assert.Contains(t, joined, "-map 0:v:0")
	assert.Contains(t, joined, "-map 1:a:0")
	assert.Contains(t, joined, "audio only")
	// No footage means no geometry normalization in the filter chain.
	assert.NotContains(t, joined, "scale=")
}

func TestBuildSegmentArgsNoAudio(t *testing.T) {
	cfg := testConfig(t)
	h := model.Highlight{
		ID:       "h3",
		Type:     model.TypeAction,
		HasAudio: boolPtr(false),
	}

	args := buildSegmentArgs(cfg, "in.mp4", "out.mp4", 10, 15, h)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "anullsrc")
	assert.Contains(t, joined, "-map 0:v:0")
	assert.Contains(t, joined, "-map 1:a:0")
	assert.NotContains(t, joined, "audio only")
}

func TestBuildSegmentArgsNoStreamsAtAll(t *testing.T) {
	cfg := testConfig(t)
	h := model.Highlight{
		ID:       "h4",
		Type:     model.TypeOther,
		HasVideo: boolPtr(false),
		HasAudio: boolPtr(false),
	}

	args := buildSegmentArgs(cfg, "in.mp4", "out.mp4", 10, 10, h)
	joined := strings.Join(args, " ")

	// Both streams synthesized; the source is not read at all.
	assert.NotContains(t, joined, "in.mp4")
	assert.Contains(t, joined, "color=c="+audioOnlyBackground)
	assert.Contains(t, joined, "anullsrc")
	assert.Contains(t, joined, "-map 0:v:0")
	assert.Contains(t, joined, "-map 1:a:0")
}

func TestOverlayText(t *testing.T) {
	withDescription := model.Highlight{
		Type:        model.TypeUrgent,
		Priority:    model.PriorityHigh,
		Description: "Server is down",
	}
	assert.Equal(t, "🔥 [HIGH] Server is down", overlayText(withDescription))

	// Missing description falls back to the upper-cased type; unset
	// priority labels as low.
	bare := model.Highlight{Type: model.TypeDiscussion}
	assert.Equal(t, "🗣️ [LOW] DISCUSSION", overlayText(bare))
}

func TestEscapeDrawtext(t *testing.T) {
	assert.Equal(t, `budget\: 40\% done`, escapeDrawtext("budget: 40% done"))
	assert.Equal(t, `a\\b`, escapeDrawtext(`a\b`))
	// Single quotes become typographic apostrophes instead of escapes.
	assert.Equal(t, "it’s fine", escapeDrawtext("it's fine"))
	assert.Equal(t, `one\, two`, escapeDrawtext("one, two"))
}

func TestSegmentFilterOrder(t *testing.T) {
	cfg := testConfig(t)

	filter := segmentFilter(cfg, model.Highlight{Type: model.TypeDecision, Description: "x"})
	require.True(t, strings.HasPrefix(filter, "scale="), "normalization must run before the caption")
	assert.Contains(t, filter, "drawtext=")
}
