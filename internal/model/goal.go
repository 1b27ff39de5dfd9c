package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FieldDelimiter separates the fields of a serialized goal record.
const FieldDelimiter = "|"

type GoalKind string

const (
	GoalKindSimple    GoalKind = "Simple"
	GoalKindEternal   GoalKind = "Eternal"
	GoalKindChecklist GoalKind = "Checklist"
)

var (
	ErrUnknownGoalKind = errors.New("unknown goal kind")
	ErrMalformedRecord = errors.New("malformed goal record")
)

// ParseKind resolves a goal kind from its name (any case) or from the
// number shown in the create menu.
func ParseKind(s string) (GoalKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "simple":
		return GoalKindSimple, nil
	case "2", "eternal":
		return GoalKindEternal, nil
	case "3", "checklist":
		return GoalKindChecklist, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGoalKind, s)
}

// Goal is a trackable objective that awards points when an event is
// recorded against it.
type Goal interface {
	Kind() GoalKind
	Title() string
	Description() string
	Points() int
	Complete() bool

	// RecordEvent advances the goal and returns the points earned.
	RecordEvent() int

	// Status returns the completion marker shown in goal listings.
	Status() string

	// Serialize returns the goal as a single delimited record.
	Serialize() string
}

type baseGoal struct {
	title       string
	description string
	points      int
}

func (g *baseGoal) Title() string       { return g.title }
func (g *baseGoal) Description() string { return g.description }
func (g *baseGoal) Points() int         { return g.points }

func (g *baseGoal) fields(kind GoalKind, extra ...string) string {
	parts := append([]string{string(kind), g.title, g.description, strconv.Itoa(g.points)}, extra...)
	return strings.Join(parts, FieldDelimiter)
}

// SimpleGoal is completed by a single event.
type SimpleGoal struct {
	baseGoal
	complete bool
}

func NewSimpleGoal(title, description string, points int, complete bool) *SimpleGoal {
	return &SimpleGoal{
		baseGoal: baseGoal{title: title, description: description, points: points},
		complete: complete,
	}
}

func (g *SimpleGoal) Kind() GoalKind { return GoalKindSimple }
func (g *SimpleGoal) Complete() bool { return g.complete }

func (g *SimpleGoal) RecordEvent() int {
	if g.complete {
		return 0
	}
	g.complete = true
	return g.points
}

func (g *SimpleGoal) Status() string {
	if g.complete {
		return "[X]"
	}
	return "[ ]"
}

func (g *SimpleGoal) Serialize() string {
	return g.fields(GoalKindSimple, formatBool(g.complete))
}

// EternalGoal is never completed and awards points for every event.
type EternalGoal struct {
	baseGoal
	timesRecorded int
}

func NewEternalGoal(title, description string, points, timesRecorded int) *EternalGoal {
	return &EternalGoal{
		baseGoal:      baseGoal{title: title, description: description, points: points},
		timesRecorded: timesRecorded,
	}
}

func (g *EternalGoal) Kind() GoalKind     { return GoalKindEternal }
func (g *EternalGoal) Complete() bool     { return false }
func (g *EternalGoal) TimesRecorded() int { return g.timesRecorded }

func (g *EternalGoal) RecordEvent() int {
	g.timesRecorded++
	return g.points
}

func (g *EternalGoal) Status() string {
	return fmt.Sprintf("[~] Completed %d time(s)", g.timesRecorded)
}

func (g *EternalGoal) Serialize() string {
	return g.fields(GoalKindEternal, strconv.Itoa(g.timesRecorded))
}

// ChecklistGoal is completed after TargetCount events and pays a bonus on
// the completing event.
type ChecklistGoal struct {
	baseGoal
	targetCount       int
	currentCount      int
	bonusOnCompletion int
	complete          bool
}

func NewChecklistGoal(title, description string, points, targetCount, currentCount, bonusOnCompletion int) *ChecklistGoal {
	return &ChecklistGoal{
		baseGoal:          baseGoal{title: title, description: description, points: points},
		targetCount:       targetCount,
		currentCount:      currentCount,
		bonusOnCompletion: bonusOnCompletion,
		complete:          currentCount >= targetCount,
	}
}

func (g *ChecklistGoal) Kind() GoalKind         { return GoalKindChecklist }
func (g *ChecklistGoal) Complete() bool         { return g.complete }
func (g *ChecklistGoal) TargetCount() int       { return g.targetCount }
func (g *ChecklistGoal) CurrentCount() int      { return g.currentCount }
func (g *ChecklistGoal) BonusOnCompletion() int { return g.bonusOnCompletion }

func (g *ChecklistGoal) RecordEvent() int {
	if g.complete {
		return 0
	}

	g.currentCount++
	earned := g.points

	if g.currentCount >= g.targetCount {
		g.complete = true
		earned += g.bonusOnCompletion
	}

	return earned
}

func (g *ChecklistGoal) Status() string {
	if g.complete {
		return "[X]"
	}
	return fmt.Sprintf("[ ] Completed %d/%d", g.currentCount, g.targetCount)
}

func (g *ChecklistGoal) Serialize() string {
	return g.fields(GoalKindChecklist,
		strconv.Itoa(g.targetCount),
		strconv.Itoa(g.currentCount),
		strconv.Itoa(g.bonusOnCompletion),
	)
}

// ParseGoal rebuilds a goal from a record produced by Goal.Serialize.
// Unknown kinds return ErrUnknownGoalKind; anything else that cannot be
// parsed returns ErrMalformedRecord.
func ParseGoal(record string) (Goal, error) {
	parts := strings.Split(strings.TrimRight(record, "\r\n"), FieldDelimiter)
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: expected at least 4 fields, got %d", ErrMalformedRecord, len(parts))
	}

	kind := GoalKind(parts[0])
	title, description := parts[1], parts[2]

	want, ok := recordFieldCount[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGoalKind, parts[0])
	}
	if len(parts) != want {
		return nil, fmt.Errorf("%w: %s record needs %d fields, got %d", ErrMalformedRecord, kind, want, len(parts))
	}

	points, err := parseInt(parts[3])
	if err != nil {
		return nil, err
	}

	switch kind {
	case GoalKindSimple:
		complete, err := parseBool(parts[4])
		if err != nil {
			return nil, err
		}
		return NewSimpleGoal(title, description, points, complete), nil

	case GoalKindEternal:
		times, err := parseInt(parts[4])
		if err != nil {
			return nil, err
		}
		return NewEternalGoal(title, description, points, times), nil

	default: // GoalKindChecklist
		ints := make([]int, 3)
		for i, raw := range parts[4:7] {
			ints[i], err = parseInt(raw)
			if err != nil {
				return nil, err
			}
		}
		return NewChecklistGoal(title, description, points, ints[0], ints[1], ints[2]), nil
	}
}

var recordFieldCount = map[GoalKind]int{
	GoalKindSimple:    5,
	GoalKindEternal:   5,
	GoalKindChecklist: 7,
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return n, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: invalid boolean %q", ErrMalformedRecord, s)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
