package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/templui/eternalquest/internal/model"
)

type EventRepository interface {
	Create(event *model.Event) error
	Recent(limit int) ([]*model.Event, error)
	Count() (int, error)
}

// Connector hands out the journal database, opening it on first use.
type Connector interface {
	Conn() (*sqlx.DB, error)
}

type eventRepository struct {
	journal Connector
}

func NewEventRepository(journal Connector) EventRepository {
	return &eventRepository{journal: journal}
}

func (r *eventRepository) Create(event *model.Event) error {
	query := `INSERT INTO events (id, goal_index, goal_kind, goal_title, points, score, level, recorded_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	db, err := r.journal.Conn()
	if err != nil {
		return err
	}

	_, err = db.Exec(query,
		event.ID,
		event.GoalIndex,
		event.GoalKind,
		event.GoalTitle,
		event.Points,
		event.Score,
		event.Level,
		event.RecordedAt,
	)

	return err
}

// Recent returns the newest events first.
func (r *eventRepository) Recent(limit int) ([]*model.Event, error) {
	db, err := r.journal.Conn()
	if err != nil {
		return nil, err
	}

	var events []*model.Event

	query := `SELECT * FROM events ORDER BY recorded_at DESC LIMIT $1`

	err = db.Select(&events, query, limit)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *eventRepository) Count() (int, error) {
	db, err := r.journal.Conn()
	if err != nil {
		return 0, err
	}

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&count)
	return count, err
}
