package reel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingreel/model"
)

func TestScheduleEmptyInput(t *testing.T) {
	_, err := Schedule(nil)
	assert.ErrorIs(t, err, ErrNoHighlights)

	_, err = Schedule([]model.Highlight{})
	assert.ErrorIs(t, err, ErrNoHighlights)
}

func TestScheduleOrdering(t *testing.T) {
	highlights := []model.Highlight{
		{ID: "low-late", Timestamp: 90000, Type: model.TypeDiscussion, Priority: model.PriorityLow},
		{ID: "high-mid-score", Timestamp: 50000, Type: model.TypeDecision, Priority: model.PriorityHigh, ImportanceScore: 0.5},
		{ID: "high-top-score", Timestamp: 70000, Type: model.TypeUrgent, Priority: model.PriorityHigh, ImportanceScore: 0.9},
		{ID: "medium", Timestamp: 10000, Type: model.TypeAction, Priority: model.PriorityMedium},
		{ID: "unset-priority", Timestamp: 5000, Type: model.TypeOther},
	}

	ordered, err := Schedule(highlights)
	require.NoError(t, err)

	ids := make([]string, len(ordered))
	for i, h := range ordered {
		ids[i] = h.ID
	}
	// Priority desc, then importance desc, then timestamp asc. Unset
	// priority ranks with low; the earlier timestamp wins the low tie.
	assert.Equal(t, []string{"high-top-score", "high-mid-score", "medium", "unset-priority", "low-late"}, ids)
}

func TestScheduleUrgentHighBeatsEarlierActionLow(t *testing.T) {
	highlights := []model.Highlight{
		{ID: "a", Timestamp: 10000, Type: model.TypeAction, Priority: model.PriorityLow, ImportanceScore: 0.2},
		{ID: "u", Timestamp: 20000, Type: model.TypeUrgent, Priority: model.PriorityHigh, ImportanceScore: 0.95},
	}

	ordered, err := Schedule(highlights)
	require.NoError(t, err)
	assert.Equal(t, "u", ordered[0].ID)
	assert.Equal(t, "a", ordered[1].ID)
}

func TestScheduleIsIdempotentAndNonMutating(t *testing.T) {
	highlights := []model.Highlight{
		{ID: "b", Timestamp: 2000, Type: model.TypeProblem, Priority: model.PriorityLow},
		{ID: "a", Timestamp: 1000, Type: model.TypeDecision, Priority: model.PriorityHigh},
	}

	once, err := Schedule(highlights)
	require.NoError(t, err)
	twice, err := Schedule(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	// The input slice stays untouched.
	assert.Equal(t, "b", highlights[0].ID)
}

func TestScheduleTimestampBreaksTies(t *testing.T) {
	highlights := []model.Highlight{
		{ID: "later", Timestamp: 30000, Type: model.TypeDiscussion, Priority: model.PriorityMedium, ImportanceScore: 0.4},
		{ID: "earlier", Timestamp: 10000, Type: model.TypeDiscussion, Priority: model.PriorityMedium, ImportanceScore: 0.4},
	}

	ordered, err := Schedule(highlights)
	require.NoError(t, err)
	assert.Equal(t, "earlier", ordered[0].ID)
}

func TestClipDurationPolicy(t *testing.T) {
	tests := []struct {
		name string
		h    model.Highlight
		want float64
	}{
		{"decision base", model.Highlight{Type: model.TypeDecision}, 20},
		{"problem base", model.Highlight{Type: model.TypeProblem}, 25},
		{"solution base", model.Highlight{Type: model.TypeSolution}, 20},
		{"action base", model.Highlight{Type: model.TypeAction}, 15},
		{"urgent base", model.Highlight{Type: model.TypeUrgent}, 15},
		{"emotional base", model.Highlight{Type: model.TypeEmotional}, 12},
		{"discussion base", model.Highlight{Type: model.TypeDiscussion}, 10},
		{"other base", model.Highlight{Type: model.TypeOther}, 10},
		{"mid importance bonus", model.Highlight{Type: model.TypeAction, ImportanceScore: 0.7}, 18},
		{"high importance bonus", model.Highlight{Type: model.TypeAction, ImportanceScore: 0.9}, 20},
		{"medium priority bonus", model.Highlight{Type: model.TypeEmotional, Priority: model.PriorityMedium}, 14},
		{"high priority bonus", model.Highlight{Type: model.TypeEmotional, Priority: model.PriorityHigh}, 17},
		{"clamped at cap", model.Highlight{Type: model.TypeProblem, Priority: model.PriorityHigh, ImportanceScore: 0.95}, 30},
		{"decision high at cap", model.Highlight{Type: model.TypeDecision, Priority: model.PriorityHigh, ImportanceScore: 0.9}, 30},
		{"exactly 0.8 gets mid bonus", model.Highlight{Type: model.TypeOther, ImportanceScore: 0.8}, 13},
		{"exactly 0.6 gets no bonus", model.Highlight{Type: model.TypeOther, ImportanceScore: 0.6}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClipDuration(tt.h))
		})
	}
}

func TestClipDurationAlwaysWithinBounds(t *testing.T) {
	types := []model.HighlightType{
		model.TypeDecision, model.TypeProblem, model.TypeSolution, model.TypeAction,
		model.TypeUrgent, model.TypeEmotional, model.TypeDiscussion, model.TypeOther,
	}
	priorities := []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow, ""}
	scores := []float64{0, 0.3, 0.6, 0.61, 0.8, 0.81, 1}

	for _, typ := range types {
		for _, prio := range priorities {
			for _, score := range scores {
				d := ClipDuration(model.Highlight{Type: typ, Priority: prio, ImportanceScore: score})
				assert.GreaterOrEqual(t, d, 10.0, "%s/%s/%.2f", typ, prio, score)
				assert.LessOrEqual(t, d, 30.0, "%s/%s/%.2f", typ, prio, score)
			}
		}
	}
}

func TestClipStartNeverNegative(t *testing.T) {
	assert.Equal(t, 0.0, ClipStart(model.Highlight{Timestamp: 0}, 20))
	assert.Equal(t, 0.0, ClipStart(model.Highlight{Timestamp: 5000}, 20))
	assert.Equal(t, 50.0, ClipStart(model.Highlight{Timestamp: 60000}, 20))
}
