package reel

import (
	"errors"
	"sort"

	"meetingreel/model"
)

// ErrNoHighlights is returned when a reel is requested for an empty
// highlight list. This is a caller error, not a degradation trigger.
var ErrNoHighlights = errors.New("no highlights to schedule")

// Clip duration policy: base seconds by highlight type, then bonuses for
// importance and priority, clamped at maxClipSeconds. Context-heavy moment
// types (problems, decisions) get longer windows than passing mentions.
const (
	maxClipSeconds = 30

	highImportanceBonus = 5 // importanceScore > 0.8
	midImportanceBonus  = 3 // importanceScore > 0.6
	highPriorityBonus   = 5
	mediumPriorityBonus = 2
)

var baseSeconds = map[model.HighlightType]float64{
	model.TypeDecision:  20,
	model.TypeProblem:   25,
	model.TypeSolution:  20,
	model.TypeAction:    15,
	model.TypeUrgent:    15,
	model.TypeEmotional: 12,
}

const defaultBaseSeconds = 10 // discussion, other

// Schedule returns a sorted copy of the highlight list: priority descending,
// then importance score descending, then timestamp ascending. The timestamp
// tie-break makes the order total, so the same input always produces the
// same sequence.
func Schedule(highlights []model.Highlight) ([]model.Highlight, error) {
	if len(highlights) == 0 {
		return nil, ErrNoHighlights
	}

	ordered := make([]model.Highlight, len(highlights))
	copy(ordered, highlights)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if a.ImportanceScore != b.ImportanceScore {
			return a.ImportanceScore > b.ImportanceScore
		}
		return a.Timestamp < b.Timestamp
	})

	return ordered, nil
}

// ClipDuration computes how many seconds of source footage a highlight's clip
// should cover. Pure function of type, importance score, and priority; the
// result always falls in [10, 30].
func ClipDuration(h model.Highlight) float64 {
	dur, ok := baseSeconds[h.Type]
	if !ok {
		dur = defaultBaseSeconds
	}

	if h.ImportanceScore > 0.8 {
		dur += highImportanceBonus
	} else if h.ImportanceScore > 0.6 {
		dur += midImportanceBonus
	}

	switch h.Priority {
	case model.PriorityHigh:
		dur += highPriorityBonus
	case model.PriorityMedium:
		dur += mediumPriorityBonus
	}

	if dur > maxClipSeconds {
		dur = maxClipSeconds
	}
	return dur
}

// ClipStart computes the clip window's start offset in the source recording,
// centering the window on the highlight's timestamp. Never negative, so a
// highlight at t=0 yields a window starting at 0.
func ClipStart(h model.Highlight, duration float64) float64 {
	start := float64(h.Timestamp)/1000 - duration/2
	if start < 0 {
		return 0
	}
	return start
}
