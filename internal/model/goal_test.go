package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleGoalCompletesOnce(t *testing.T) {
	g := NewSimpleGoal("Run", "Run a marathon", 1000, false)

	assert.Equal(t, "[ ]", g.Status())
	assert.Equal(t, 1000, g.RecordEvent())
	assert.True(t, g.Complete())
	assert.Equal(t, "[X]", g.Status())

	for range 3 {
		assert.Equal(t, 0, g.RecordEvent())
	}
	assert.True(t, g.Complete())
	assert.Equal(t, "Simple|Run|Run a marathon|1000|True", g.Serialize())
}

func TestEternalGoalNeverCompletes(t *testing.T) {
	g := NewEternalGoal("Scriptures", "Read daily", 100, 0)

	for range 5 {
		assert.Equal(t, 100, g.RecordEvent())
	}
	assert.Equal(t, 5, g.TimesRecorded())
	assert.False(t, g.Complete())
	assert.Equal(t, "[~] Completed 5 time(s)", g.Status())
}

func TestChecklistGoalPaysBonusOnCompletion(t *testing.T) {
	g := NewChecklistGoal("Temple", "Attend the temple", 10, 3, 0, 50)

	assert.Equal(t, 10, g.RecordEvent())
	assert.Equal(t, "[ ] Completed 1/3", g.Status())
	assert.Equal(t, 10, g.RecordEvent())
	assert.False(t, g.Complete())

	assert.Equal(t, 60, g.RecordEvent())
	assert.True(t, g.Complete())
	assert.Equal(t, "[X]", g.Status())

	assert.Equal(t, 0, g.RecordEvent())
	assert.Equal(t, 3, g.CurrentCount())
	assert.True(t, g.Complete())
}

func TestChecklistGoalCompleteAtConstruction(t *testing.T) {
	g := NewChecklistGoal("Done", "", 10, 3, 3, 50)

	assert.True(t, g.Complete())
	assert.Equal(t, 0, g.RecordEvent())
	assert.Equal(t, 3, g.CurrentCount())
}

func TestParseGoalRoundTrip(t *testing.T) {
	goals := []Goal{
		NewSimpleGoal("Run", "Run a marathon", 1000, false),
		NewSimpleGoal("Swim", "", 5, true),
		NewEternalGoal("Pray", "Morning and night", 50, 12),
		NewChecklistGoal("Temple", "Attend 10 times", 50, 10, 4, 500),
		NewChecklistGoal("Finished", "Already complete", 10, 2, 2, 20),
	}

	for _, want := range goals {
		t.Run(want.Serialize(), func(t *testing.T) {
			got, err := ParseGoal(want.Serialize())
			require.NoError(t, err)

			assert.Equal(t, want, got)
			assert.Equal(t, want.Status(), got.Status())
			assert.Equal(t, want.Complete(), got.Complete())
			assert.Equal(t, want.Serialize(), got.Serialize())
		})
	}
}

func TestParseGoalLenientValues(t *testing.T) {
	g, err := ParseGoal("Simple|Run|Far| 10 |true\r")
	require.NoError(t, err)
	assert.Equal(t, 10, g.Points())
	assert.True(t, g.Complete())

	g, err = ParseGoal("Simple|Run|Far|10|FALSE")
	require.NoError(t, err)
	assert.False(t, g.Complete())
}

func TestParseGoalErrors(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   error
	}{
		{"unknown kind", "Weekly|Run|Far|10|0", ErrUnknownGoalKind},
		{"lowercase kind", "simple|Run|Far|10|True", ErrUnknownGoalKind},
		{"too few fields", "Simple|Run", ErrMalformedRecord},
		{"empty line", "", ErrMalformedRecord},
		{"checklist missing field", "Checklist|Temple|Go|50|10|4", ErrMalformedRecord},
		{"extra field", "Eternal|Pray|Daily|50|3|9", ErrMalformedRecord},
		{"points not a number", "Eternal|Pray|Daily|lots|3", ErrMalformedRecord},
		{"count not a number", "Eternal|Pray|Daily|50|x", ErrMalformedRecord},
		{"bad boolean", "Simple|Run|Far|10|yes", ErrMalformedRecord},
		{"bad bonus", "Checklist|Temple|Go|50|10|4|big", ErrMalformedRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGoal(tt.record)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseKind(t *testing.T) {
	for input, want := range map[string]GoalKind{
		"1":         GoalKindSimple,
		"simple":    GoalKindSimple,
		"Eternal":   GoalKindEternal,
		"2":         GoalKindEternal,
		" 3 ":       GoalKindChecklist,
		"CHECKLIST": GoalKindChecklist,
	} {
		got, err := ParseKind(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseKind("4")
	assert.ErrorIs(t, err, ErrUnknownGoalKind)
}
