package store

import (
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/pkg/dateutil"
	"golang.org/x/exp/slices"
)

type DayXP struct {
	Day string `json:"day"`
	XP  int    `json:"xp"`
}

type Stats struct {
	CompletionsToday     int     `json:"completionsToday"`
	CompletionsThisWeek  int     `json:"completionsThisWeek"`
	CompletionsThisMonth int     `json:"completionsThisMonth"`
	XPToday              int     `json:"xpToday"`
	XPThisWeek           int     `json:"xpThisWeek"`
	XPThisMonth          int     `json:"xpThisMonth"`
	DailyXP              []DayXP `json:"dailyXP"`
	AverageDifficulty    float64 `json:"averageDifficulty"`
	FavoriteCategory     string  `json:"favoriteCategory"`
}

// Stats derives the dashboard view from the completion history. It recomputes
// on every call: completion lists stay small enough in practice that caching
// is not worth the staleness risk.
func (s *Store) Stats() Stats {
	state := s.State()
	now := s.clock()
	loc := s.location

	today := dateutil.LocalDay(now, loc)
	weekStart := dateutil.StartOfWeek(now, state.Settings.WeekStartDay, loc)
	monthStart := dateutil.StartOfMonth(now, loc)

	trailing := dateutil.TrailingDays(now, 14, loc)
	xpByDay := make(map[string]int, len(trailing))

	stats := Stats{}
	difficultySum := 0
	categoryCounts := map[string]int{}

	for _, c := range state.Completions {
		day := dateutil.LocalDay(c.CompletedAt, loc)

		if day == today {
			stats.CompletionsToday++
			stats.XPToday += c.XP
		}
		if !c.CompletedAt.In(loc).Before(weekStart) {
			stats.CompletionsThisWeek++
			stats.XPThisWeek += c.XP
		}
		if !c.CompletedAt.In(loc).Before(monthStart) {
			stats.CompletionsThisMonth++
			stats.XPThisMonth += c.XP
		}

		xpByDay[day] += c.XP
		difficultySum += entity.DifficultyScale[c.Difficulty]
		categoryCounts[c.Category]++
	}

	stats.DailyXP = make([]DayXP, 0, len(trailing))
	for _, day := range trailing {
		stats.DailyXP = append(stats.DailyXP, DayXP{Day: day, XP: xpByDay[day]})
	}

	if len(state.Completions) > 0 {
		stats.AverageDifficulty = float64(difficultySum) / float64(len(state.Completions))
	}

	// Mode of completion categories; ties resolve to the lexicographically
	// smallest name so the answer is stable.
	best := 0
	for category, count := range categoryCounts {
		if count > best || (count == best && category < stats.FavoriteCategory) {
			best = count
			stats.FavoriteCategory = category
		}
	}

	return stats
}

// TodaysQuests returns the active quests scheduled for the local weekday:
// dailies always, weeklies only on their scheduled days.
func (s *Store) TodaysQuests() []entity.UserQuest {
	state := s.State()
	weekday := s.clock().In(s.location).Weekday()

	quests := []entity.UserQuest{}
	for _, q := range state.UserQuests {
		if !q.Active {
			continue
		}

		switch q.Schedule.Recurrence {
		case entity.Daily:
			quests = append(quests, q)
		case entity.Weekly:
			if slices.Contains(q.Schedule.DaysOfWeek, weekday) {
				quests = append(quests, q)
			}
		}
	}

	return quests
}
