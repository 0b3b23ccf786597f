package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reelManifest(kinds ...SegmentKind) *TimelineManifest {
	m := &TimelineManifest{}
	for _, k := range kinds {
		m.Append("x.mp4", k)
	}
	return m
}

func TestManifestValidateShapes(t *testing.T) {
	// N=1: intro, clip, outro.
	assert.NoError(t, reelManifest(SegmentIntro, SegmentClip, SegmentOutro).Validate())

	// N=3: 1 + 3 + 2 + 1 = 7 entries.
	assert.NoError(t, reelManifest(
		SegmentIntro,
		SegmentClip, SegmentTransition,
		SegmentClip, SegmentTransition,
		SegmentClip,
		SegmentOutro,
	).Validate())

	assert.Error(t, reelManifest().Validate(), "empty")
	assert.Error(t, reelManifest(SegmentIntro, SegmentOutro).Validate(), "no clips")
	assert.Error(t, reelManifest(SegmentClip, SegmentClip, SegmentOutro).Validate(), "missing intro")
	assert.Error(t, reelManifest(SegmentIntro, SegmentClip, SegmentClip).Validate(), "missing outro")
	assert.Error(t, reelManifest(
		SegmentIntro, SegmentClip, SegmentClip, SegmentOutro,
	).Validate(), "adjacent clips without a transition")
	assert.Error(t, reelManifest(
		SegmentIntro, SegmentClip, SegmentTransition, SegmentOutro,
	).Validate(), "trailing transition before outro")
}

func TestManifestOrdinalsAndClipCount(t *testing.T) {
	m := reelManifest(SegmentIntro, SegmentClip, SegmentTransition, SegmentClip, SegmentOutro)
	for i, seg := range m.Segments {
		assert.Equal(t, i, seg.Ordinal)
	}
	assert.Equal(t, 2, m.ClipCount())
}
