package model

import (
	"errors"
	"fmt"
	"slices"
)

var ErrIndexOutOfRange = errors.New("goal index out of range")

// GoalParams describes a goal to create. TargetCount and Bonus only apply
// to checklist goals.
type GoalParams struct {
	Kind        GoalKind
	Title       string
	Description string
	Points      int
	TargetCount int
	Bonus       int
}

// GoalView is the read-only projection of a goal used by listings.
type GoalView struct {
	Index       int
	Kind        GoalKind
	Status      string
	Title       string
	Description string
}

// RecordResult is the outcome of recording an event against a goal.
type RecordResult struct {
	Index  int
	Goal   Goal
	Points int
}

// Registry is the ordered list of goals in a session. Goals are addressed
// by their 1-based position.
type Registry struct {
	goals []Goal
}

func NewRegistry(goals ...Goal) *Registry {
	return &Registry{goals: slices.Clone(goals)}
}

func (r *Registry) Len() int      { return len(r.goals) }
func (r *Registry) Goals() []Goal { return slices.Clone(r.goals) }

// Create builds a goal of the requested kind and appends it.
func (r *Registry) Create(p GoalParams) (Goal, error) {
	var goal Goal
	switch p.Kind {
	case GoalKindSimple:
		goal = NewSimpleGoal(p.Title, p.Description, p.Points, false)
	case GoalKindEternal:
		goal = NewEternalGoal(p.Title, p.Description, p.Points, 0)
	case GoalKindChecklist:
		goal = NewChecklistGoal(p.Title, p.Description, p.Points, p.TargetCount, 0, p.Bonus)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGoalKind, p.Kind)
	}

	r.goals = append(r.goals, goal)
	return goal, nil
}

func (r *Registry) List() []GoalView {
	views := make([]GoalView, 0, len(r.goals))
	for i, g := range r.goals {
		views = append(views, GoalView{
			Index:       i + 1,
			Kind:        g.Kind(),
			Status:      g.Status(),
			Title:       g.Title(),
			Description: g.Description(),
		})
	}
	return views
}

// At returns the goal at a 1-based index.
func (r *Registry) At(index int) (Goal, error) {
	if index < 1 || index > len(r.goals) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrIndexOutOfRange, index, len(r.goals))
	}
	return r.goals[index-1], nil
}

// RecordEventAt records an event against the goal at a 1-based index.
func (r *Registry) RecordEventAt(index int) (RecordResult, error) {
	goal, err := r.At(index)
	if err != nil {
		return RecordResult{}, err
	}
	return RecordResult{Index: index, Goal: goal, Points: goal.RecordEvent()}, nil
}
