package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/templui/eternalquest/internal/model"
	"github.com/templui/eternalquest/internal/repository"
	"github.com/templui/eternalquest/internal/validation"
)

var ErrJournalDisabled = errors.New("event journal is disabled")

// EventOutcome is what the control loop reports after recording an event.
type EventOutcome struct {
	Index int
	Goal  model.Goal
	Award model.Award
}

// Earned is the number of points the event produced.
func (o EventOutcome) Earned() int {
	return o.Award.Points
}

type EngineStatus struct {
	Score  int
	Level  int
	Badges []string // badge labels in the order they were earned
}

type LoadResult struct {
	Path    string
	Goals   int
	Skipped int
	Message string
}

// QuestService owns the session state: the goal registry and the
// gamification engine. It is driven by a single control loop and is not
// safe for concurrent use.
type QuestService struct {
	files       repository.QuestFileRepository
	events      repository.EventRepository // nil when the journal is disabled
	policy      model.Policy
	defaultPath string

	registry *model.Registry
	engine   *model.Gamification
	now      func() time.Time
}

func NewQuestService(
	files repository.QuestFileRepository,
	events repository.EventRepository,
	policy model.Policy,
	defaultPath string,
) *QuestService {
	return &QuestService{
		files:       files,
		events:      events,
		policy:      policy,
		defaultPath: defaultPath,
		registry:    model.NewRegistry(),
		engine:      model.NewGamification(policy, 0),
		now:         time.Now,
	}
}

func (s *QuestService) DefaultPath() string {
	return s.defaultPath
}

func (s *QuestService) CreateGoal(p model.GoalParams) (model.Goal, error) {
	err := validation.ValidateGoalParams(p)
	if err != nil {
		return nil, err
	}

	goal, err := s.registry.Create(p)
	if err != nil {
		return nil, err
	}

	slog.Debug("goal created", "kind", goal.Kind(), "title", goal.Title(), "count", s.registry.Len())
	return goal, nil
}

func (s *QuestService) ListGoals() []model.GoalView {
	return s.registry.List()
}

// RecordEventAt records an event against the goal at a 1-based index and
// feeds the earned points to the gamification engine.
func (s *QuestService) RecordEventAt(index int) (EventOutcome, error) {
	result, err := s.registry.RecordEventAt(index)
	if err != nil {
		return EventOutcome{}, err
	}

	outcome := EventOutcome{
		Index: result.Index,
		Goal:  result.Goal,
		Award: s.engine.AddPoints(result.Points),
	}

	s.journal(outcome)
	return outcome, nil
}

// journal appends the event to the history. The quest file stays the
// source of truth, so failures are only logged.
func (s *QuestService) journal(outcome EventOutcome) {
	if s.events == nil {
		return
	}

	event := &model.Event{
		ID:         uuid.New().String(),
		GoalIndex:  outcome.Index,
		GoalKind:   string(outcome.Goal.Kind()),
		GoalTitle:  outcome.Goal.Title(),
		Points:     outcome.Earned(),
		Score:      s.engine.Score(),
		Level:      s.engine.Level(),
		RecordedAt: s.now().UTC(),
	}

	err := s.events.Create(event)
	if err != nil {
		slog.Warn("failed to journal event", "error", err, "goal_index", outcome.Index)
	}
}

func (s *QuestService) History(limit int) ([]*model.Event, error) {
	if s.events == nil {
		return nil, ErrJournalDisabled
	}
	return s.events.Recent(limit)
}

func (s *QuestService) EngineStatus() EngineStatus {
	status := EngineStatus{
		Score: s.engine.Score(),
		Level: s.engine.Level(),
	}
	for _, name := range s.engine.Badges() {
		status.Badges = append(status.Badges, s.engine.BadgeLabel(name))
	}
	return status
}

func (s *QuestService) resolvePath(path string) string {
	if path == "" {
		return s.defaultPath
	}
	return path
}

// SaveToPath writes the score and goals to path, or to the default quest
// file when path is empty.
func (s *QuestService) SaveToPath(path string) (string, error) {
	path = s.resolvePath(path)

	err := s.files.Save(path, s.engine, s.registry)
	if err != nil {
		slog.Error("failed to save quest file", "error", err, "path", path)
		return fmt.Sprintf("Failed to save: %v", err), err
	}

	slog.Debug("quest file saved", "path", path, "goals", s.registry.Len())
	return fmt.Sprintf("Saved to %s.", path), nil
}

// LoadFromPath replaces the session state with the content of path. The
// current state is kept when the file cannot be read.
func (s *QuestService) LoadFromPath(path string) (LoadResult, error) {
	path = s.resolvePath(path)
	result := LoadResult{Path: path}

	snapshot, err := s.files.Load(path, s.policy)
	switch {
	case errors.Is(err, repository.ErrQuestFileNotFound):
		result.Message = fmt.Sprintf("File '%s' not found.", path)
		return result, err
	case errors.Is(err, repository.ErrQuestFileEmpty):
		result.Message = "File empty."
		return result, err
	case err != nil:
		slog.Error("failed to load quest file", "error", err, "path", path)
		result.Message = fmt.Sprintf("Failed to load: %v", err)
		return result, err
	}

	return s.replace(snapshot, path), nil
}

// Encode writes the session state in quest file format.
func (s *QuestService) Encode(w io.Writer) error {
	return repository.Encode(w, s.engine, s.registry)
}

// Restore replaces the session state with quest file content read from r.
// source names where the content came from in the result message.
func (s *QuestService) Restore(r io.Reader, source string) (LoadResult, error) {
	snapshot, err := repository.Decode(r, s.policy)
	if err != nil {
		return LoadResult{Path: source, Message: fmt.Sprintf("Failed to load: %v", err)}, err
	}
	return s.replace(snapshot, source), nil
}

func (s *QuestService) replace(snapshot *repository.Snapshot, source string) LoadResult {
	s.registry = snapshot.Registry
	s.engine = snapshot.Engine

	if snapshot.Skipped > 0 {
		slog.Warn("skipped unreadable goal records", "source", source, "skipped", snapshot.Skipped)
	}

	return LoadResult{
		Path:    source,
		Goals:   snapshot.Registry.Len(),
		Skipped: snapshot.Skipped,
		Message: fmt.Sprintf("Loaded %d goals and score from %s.", snapshot.Registry.Len(), source),
	}
}
