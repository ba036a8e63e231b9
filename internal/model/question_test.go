package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortQuestionsPriorityFirst(t *testing.T) {
	qs := []Question{
		{ID: "c", Priority: 3, Captures: []string{"x"}},
		{ID: "a", Priority: 1, Captures: []string{"y"}},
		{ID: "b", Priority: 2, Captures: []string{"z"}},
	}

	out := SortQuestions(qs, ConfidenceMap{})

	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, "c", out[2].ID)
	// Input untouched.
	assert.Equal(t, "c", qs[0].ID)
}

func TestSortQuestionsConfidenceBreaksTies(t *testing.T) {
	qs := []Question{
		{ID: "known", Priority: 2, Captures: []string{"name"}},
		{ID: "gap", Priority: 2, Captures: []string{"services"}},
	}
	conf := ConfidenceMap{"name": 0.9, "services": 0.1}

	out := SortQuestions(qs, conf)

	assert.Equal(t, "gap", out[0].ID, "weakest fact is asked first")
	assert.Equal(t, "known", out[1].ID)
}

func TestSortQuestionsStableOnFullTies(t *testing.T) {
	qs := []Question{
		{ID: "first", Priority: 1, Captures: []string{"a"}},
		{ID: "second", Priority: 1, Captures: []string{"b"}},
		{ID: "third", Priority: 1, Captures: []string{"c"}},
	}

	out := SortQuestions(qs, ConfidenceMap{})

	assert.Equal(t, "first", out[0].ID)
	assert.Equal(t, "second", out[1].ID)
	assert.Equal(t, "third", out[2].ID)
}

func TestCaptureConfidenceUsesWeakestFact(t *testing.T) {
	q := Question{ID: "multi", Captures: []string{"a", "b"}}
	conf := ConfidenceMap{"a": 0.9, "b": 0.2}

	assert.InDelta(t, 0.2, captureConfidence(q, conf), 0.001)
	assert.Zero(t, captureConfidence(Question{}, conf), "no captures means no signal")
}

func TestWeekHoursComplete(t *testing.T) {
	assert.False(t, WeekHours{}.Complete())
	assert.False(t, WeekHours{"monday": {}}.Complete())
	assert.True(t, WeekHours{"monday": {"09:00-17:00"}}.Complete())
}

func TestConfirmedFactsAttr(t *testing.T) {
	var empty ConfirmedFacts
	assert.Empty(t, empty.Attr(FactPositioning))

	f := ConfirmedFacts{Extra: map[string]string{FactPositioning: "emergency-focused"}}
	assert.Equal(t, "emergency-focused", f.Attr(FactPositioning))
}
