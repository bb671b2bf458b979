package badge

import (
	"fmt"
	"strings"
)

// completionCountScanner awards a badge once the user has at least threshold
// completions, optionally restricted to one category.
type completionCountScanner struct {
	name      string
	category  string
	threshold int
}

func NewCompletionCountScanner(name, category string, threshold int) *completionCountScanner {
	return &completionCountScanner{name: name, category: category, threshold: threshold}
}

func (s *completionCountScanner) Name() string { return s.name }

func (s *completionCountScanner) Evaluate(state State) bool {
	count := 0
	for _, c := range state.Completions {
		if s.category == "" || c.Category == s.category {
			count++
		}
	}

	return count >= s.threshold
}

// xpScanner awards a badge at a total-XP threshold.
type xpScanner struct {
	name      string
	threshold int
}

func NewXPScanner(name string, threshold int) *xpScanner {
	return &xpScanner{name: name, threshold: threshold}
}

func (s *xpScanner) Name() string { return s.name }

func (s *xpScanner) Evaluate(state State) bool {
	return state.TotalXP >= s.threshold
}

// streakScanner awards a badge at a streak threshold. The longest streak
// counts too, so losing a streak never revokes the badge.
type streakScanner struct {
	name      string
	threshold int
}

func NewStreakScanner(name string, threshold int) *streakScanner {
	return &streakScanner{name: name, threshold: threshold}
}

func (s *streakScanner) Name() string { return s.name }

func (s *streakScanner) Evaluate(state State) bool {
	return state.CurrentStreak >= s.threshold || state.LongestStreak >= s.threshold
}

// titleScanner awards a badge when any completed quest's title contains the
// given substring, case-insensitively.
type titleScanner struct {
	name      string
	substring string
}

func NewTitleScanner(name, substring string) *titleScanner {
	return &titleScanner{name: name, substring: strings.ToLower(substring)}
}

func (s *titleScanner) Name() string { return s.name }

func (s *titleScanner) Evaluate(state State) bool {
	for _, c := range state.Completions {
		if strings.Contains(strings.ToLower(c.Title), s.substring) {
			return true
		}
	}

	return false
}

// DefaultManager builds the rule registry once at startup. Category rules are
// generated per catalog category so new categories need no evaluator change.
func DefaultManager(categories []string) *Manager {
	scanners := []Scanner{
		NewCompletionCountScanner("first_quest", "", 1),

		NewXPScanner("xp_1k", 1_000),
		NewXPScanner("xp_10k", 10_000),
		NewXPScanner("xp_50k", 50_000),
		NewXPScanner("xp_100k", 100_000),

		NewStreakScanner("streak_7", 7),
		NewStreakScanner("streak_30", 30),

		NewTitleScanner("marathon_finisher", "marathon"),
		NewTitleScanner("cold_warrior", "cold shower"),
	}

	for _, category := range categories {
		scanners = append(scanners,
			NewCompletionCountScanner(fmt.Sprintf("%s_novice", category), category, 1),
			NewCompletionCountScanner(fmt.Sprintf("%s_adept", category), category, 10),
			NewCompletionCountScanner(fmt.Sprintf("%s_master", category), category, 50),
		)
	}

	return NewManager(scanners...)
}
