package model

import (
	"time"
)

// Event is one recorded occurrence against a goal, as kept in the journal.
type Event struct {
	ID         string    `db:"id"`
	GoalIndex  int       `db:"goal_index"`
	GoalKind   string    `db:"goal_kind"`
	GoalTitle  string    `db:"goal_title"`
	Points     int       `db:"points"`
	Score      int       `db:"score"`
	Level      int       `db:"level"`
	RecordedAt time.Time `db:"recorded_at"`
}
