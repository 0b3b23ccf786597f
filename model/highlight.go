package model

import "fmt"

// HighlightType classifies the kind of moment a highlight marks. The set is
// closed; anything outside it is rejected during validation rather than
// silently mapped to a default.
type HighlightType string

const (
	TypeDecision   HighlightType = "decision"
	TypeProblem    HighlightType = "problem"
	TypeSolution   HighlightType = "solution"
	TypeAction     HighlightType = "action"
	TypeUrgent     HighlightType = "urgent"
	TypeEmotional  HighlightType = "emotional"
	TypeDiscussion HighlightType = "discussion"
	TypeOther      HighlightType = "other"
)

// Valid reports whether t is one of the known highlight types.
func (t HighlightType) Valid() bool {
	switch t {
	case TypeDecision, TypeProblem, TypeSolution, TypeAction,
		TypeUrgent, TypeEmotional, TypeDiscussion, TypeOther:
		return true
	}
	return false
}

// Priority is the coarse importance tier assigned when a highlight is flagged.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority. The empty string is accepted
// and treated as low.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, "":
		return true
	}
	return false
}

// Rank maps a priority onto a comparable weight: high=3, medium=2,
// low or unset=1.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Highlight is one flagged moment in a meeting. Produced by the live
// highlight-detection collaborator; read-only input to the reel pipeline.
type Highlight struct {
	ID              string        `json:"id"`
	Timestamp       int64         `json:"timestamp"` // milliseconds since meeting start
	Type            HighlightType `json:"type"`
	Priority        Priority      `json:"priority,omitempty"`
	ImportanceScore float64       `json:"importanceScore,omitempty"`
	Description     string        `json:"description,omitempty"`
	ParticipantID   string        `json:"participantId,omitempty"`

	// Stream availability at the flagged moment. Pointers so that an absent
	// field decodes as "available" rather than false.
	HasVideo *bool `json:"hasVideo,omitempty"`
	HasAudio *bool `json:"hasAudio,omitempty"`
}

// VideoAvailable reports whether the source has a video stream at this moment.
func (h Highlight) VideoAvailable() bool {
	return h.HasVideo == nil || *h.HasVideo
}

// AudioAvailable reports whether the source has an audio stream at this moment.
func (h Highlight) AudioAvailable() bool {
	return h.HasAudio == nil || *h.HasAudio
}

// Validate checks the highlight's fields against the closed enumerations and
// value ranges. sourceDuration is the recording length in seconds; pass 0 to
// skip the upper timestamp bound (used when the recording was not probed).
func (h Highlight) Validate(sourceDuration float64) error {
	if h.ID == "" {
		return fmt.Errorf("highlight has no id")
	}
	if h.Timestamp < 0 {
		return fmt.Errorf("highlight %s: negative timestamp %d", h.ID, h.Timestamp)
	}
	if sourceDuration > 0 && float64(h.Timestamp)/1000 > sourceDuration {
		return fmt.Errorf("highlight %s: timestamp %dms beyond recording end (%.1fs)",
			h.ID, h.Timestamp, sourceDuration)
	}
	if !h.Type.Valid() {
		return fmt.Errorf("highlight %s: unknown type %q", h.ID, h.Type)
	}
	if !h.Priority.Valid() {
		return fmt.Errorf("highlight %s: unknown priority %q", h.ID, h.Priority)
	}
	if h.ImportanceScore < 0 || h.ImportanceScore > 1 {
		return fmt.Errorf("highlight %s: importance score %.2f outside [0,1]", h.ID, h.ImportanceScore)
	}
	return nil
}
