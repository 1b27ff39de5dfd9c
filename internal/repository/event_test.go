package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/eternalquest/internal/db"
	"github.com/templui/eternalquest/internal/model"
)

func newTestJournal(t *testing.T) *db.Journal {
	t.Helper()

	journal := db.NewJournal("sqlite", filepath.Join(t.TempDir(), "journal.db"))
	t.Cleanup(func() { journal.Close() })
	return journal
}

func TestEventRepository(t *testing.T) {
	repo := NewEventRepository(newTestJournal(t))

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		err := repo.Create(&model.Event{
			ID:         uuid.New().String(),
			GoalIndex:  i + 1,
			GoalKind:   string(model.GoalKindEternal),
			GoalTitle:  "Pray",
			Points:     50,
			Score:      50 * (i + 1),
			Level:      1,
			RecordedAt: start.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	events, err := repo.Recent(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 3, events[0].GoalIndex)
	assert.Equal(t, 150, events[0].Score)
	assert.Equal(t, 2, events[1].GoalIndex)
	assert.True(t, events[0].RecordedAt.Equal(start.Add(2*time.Minute)))
}

func TestEventRepositoryUnavailableJournal(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	repo := NewEventRepository(db.NewJournal("sqlite", filepath.Join(blocker, "journal.db")))

	err := repo.Create(&model.Event{ID: uuid.New().String()})
	assert.Error(t, err)

	_, err = repo.Recent(5)
	assert.Error(t, err)
}
