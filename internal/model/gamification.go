package model

import (
	"slices"
	"strconv"
	"strings"
)

// BadgeRule awards a badge once the score reaches Threshold.
type BadgeRule struct {
	Name      string
	Label     string
	Threshold int
}

// Policy holds the tuning values of the gamification engine.
type Policy struct {
	LevelStep int
	Badges    []BadgeRule
}

const DefaultLevelStep = 100

// DefaultPolicy returns level steps of 100 points and badges at 100 and 500.
func DefaultPolicy() Policy {
	return Policy{
		LevelStep: DefaultLevelStep,
		Badges: []BadgeRule{
			{Name: "Score100", Label: "100+ points", Threshold: 100},
			{Name: "Score500", Label: "500+ points", Threshold: 500},
		},
	}
}

// Award describes what a call to AddPoints changed.
type Award struct {
	Points    int
	OldLevel  int
	NewLevel  int
	NewBadges []BadgeRule
}

func (a Award) LevelUp() bool {
	return a.NewLevel > a.OldLevel
}

// Gamification tracks the score, the level derived from it and the badges
// earned along the way. Badges are never revoked.
type Gamification struct {
	policy Policy
	score  int
	level  int
	badges []string
}

func NewGamification(policy Policy, startingScore int) *Gamification {
	if policy.LevelStep <= 0 {
		policy.LevelStep = DefaultLevelStep
	}
	policy.Badges = slices.Clone(policy.Badges)
	slices.SortStableFunc(policy.Badges, func(a, b BadgeRule) int {
		return a.Threshold - b.Threshold
	})

	g := &Gamification{policy: policy, score: max(0, startingScore)}
	g.level = g.calculateLevel()
	return g
}

func (g *Gamification) Score() int       { return g.score }
func (g *Gamification) Level() int       { return g.level }
func (g *Gamification) Policy() Policy   { return g.policy }
func (g *Gamification) Badges() []string { return slices.Clone(g.badges) }

func (g *Gamification) HasBadge(name string) bool {
	return slices.Contains(g.badges, name)
}

// AddPoints adds a positive amount to the score and reports any level-up
// and newly earned badges. Non-positive amounts are ignored.
func (g *Gamification) AddPoints(points int) Award {
	award := Award{OldLevel: g.level, NewLevel: g.level}
	if points <= 0 {
		return award
	}

	g.score += points
	g.level = g.calculateLevel()
	award.Points = points
	award.NewLevel = g.level

	for _, rule := range g.policy.Badges {
		if g.score >= rule.Threshold && !g.HasBadge(rule.Name) {
			g.badges = append(g.badges, rule.Name)
			award.NewBadges = append(award.NewBadges, rule)
		}
	}

	return award
}

// RemovePoints subtracts from the score without going below zero.
func (g *Gamification) RemovePoints(points int) {
	if points <= 0 {
		return
	}
	g.score = max(0, g.score-points)
	g.level = g.calculateLevel()
}

func (g *Gamification) calculateLevel() int {
	return g.score/g.policy.LevelStep + 1
}

// BadgeLabel returns the display label of a badge, or its name if the
// policy does not know it.
func (g *Gamification) BadgeLabel(name string) string {
	for _, rule := range g.policy.Badges {
		if rule.Name == name {
			return rule.Label
		}
	}
	return name
}

// Serialize returns the score as decimal text.
func (g *Gamification) Serialize() string {
	return strconv.Itoa(g.score)
}

// ParseScore reads a serialized score. Anything that is not a
// non-negative integer yields zero.
func ParseScore(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
