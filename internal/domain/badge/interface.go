package badge

import "github.com/habitquest/backend/internal/entity"

// State is the aggregate snapshot a badge rule is evaluated against. Rules
// are pure predicates over it: no I/O, no failure surface.
type State struct {
	TotalXP       int
	Completions   []entity.Completion
	CurrentStreak int
	LongestStreak int
}

type Scanner interface {
	// Name returns the badge identifier this rule awards.
	Name() string

	// Evaluate reports whether the badge is earned for the given state.
	Evaluate(state State) bool
}
