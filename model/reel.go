package model

import "fmt"

// SegmentKind tags a rendered intermediate artifact by its role in the reel.
type SegmentKind string

const (
	SegmentIntro      SegmentKind = "intro"
	SegmentClip       SegmentKind = "clip"
	SegmentTransition SegmentKind = "transition"
	SegmentOutro      SegmentKind = "outro"
)

// RenderedSegment is one intermediate clip on disk, owned by a single
// pipeline run and deleted before that run ends.
type RenderedSegment struct {
	Path    string      `json:"path"`
	Ordinal int         `json:"ordinal"`
	Kind    SegmentKind `json:"kind"`
}

// TimelineManifest is the ordered list of segments that fully determines the
// final concatenation. Built once per run and discarded after consumption.
type TimelineManifest struct {
	Segments []RenderedSegment
}

// Append adds a segment at the next ordinal position.
func (m *TimelineManifest) Append(path string, kind SegmentKind) {
	m.Segments = append(m.Segments, RenderedSegment{
		Path:    path,
		Ordinal: len(m.Segments),
		Kind:    kind,
	})
}

// Validate enforces the reel shape for N highlight clips:
// intro, clip, (transition, clip)*, outro — i.e. 2N+1 entries.
func (m *TimelineManifest) Validate() error {
	n := len(m.Segments)
	if n < 3 {
		return fmt.Errorf("manifest has %d segments, need at least intro+clip+outro", n)
	}
	if m.Segments[0].Kind != SegmentIntro {
		return fmt.Errorf("manifest does not start with an intro")
	}
	if m.Segments[n-1].Kind != SegmentOutro {
		return fmt.Errorf("manifest does not end with an outro")
	}
	for i := 1; i < n-1; i++ {
		want := SegmentClip
		if i%2 == 0 {
			want = SegmentTransition
		}
		if m.Segments[i].Kind != want {
			return fmt.Errorf("manifest entry %d is %s, want %s", i, m.Segments[i].Kind, want)
		}
	}
	// Clips and transitions must alternate, so the interior length is odd.
	if (n-2)%2 != 1 {
		return fmt.Errorf("manifest interior has %d entries, want an alternating clip/transition run", n-2)
	}
	return nil
}

// ClipCount returns the number of highlight clips in the manifest.
func (m *TimelineManifest) ClipCount() int {
	count := 0
	for _, s := range m.Segments {
		if s.Kind == SegmentClip {
			count++
		}
	}
	return count
}

// FallbackReason explains why a run degraded to a fallback artifact.
type FallbackReason string

const (
	ReasonEngineUnavailable FallbackReason = "engine-unavailable"
	ReasonRenderFailed      FallbackReason = "render-failed"
	ReasonAssembleFailed    FallbackReason = "assemble-failed"
)

// FallbackTier identifies which degradation tier produced the artifact.
type FallbackTier string

const (
	TierPlaceholderVideo FallbackTier = "placeholder-video"
	TierPlainVideo       FallbackTier = "plain-video"
	TierTextManifest     FallbackTier = "text-manifest"
)

// PipelineResult is what a pipeline run hands back to the caller: either the
// finished reel, or a fallback artifact tagged with why and how it degraded.
type PipelineResult struct {
	OutputPath string         `json:"outputPath"`
	Fallback   bool           `json:"fallback"`
	Reason     FallbackReason `json:"reason,omitempty"`
	Tier       FallbackTier   `json:"tier,omitempty"`
}

// ReelRequest is the unit of work submitted to the pipeline: one meeting's
// recording plus its flagged highlights.
type ReelRequest struct {
	Meeting    MeetingInfo `json:"meeting"`
	SourcePath string      `json:"sourcePath"`
	Highlights []Highlight `json:"highlights"`
}
