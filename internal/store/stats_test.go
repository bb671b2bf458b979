package store

import (
	"context"
	"testing"
	"time"

	"github.com/habitquest/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func completion(at time.Time, category string, difficulty entity.Difficulty, xp int) entity.Completion {
	return entity.Completion{
		QuestID:     "q",
		Category:    category,
		Difficulty:  difficulty,
		CompletedAt: at,
		XP:          xp,
	}
}

func TestStatsBucketsByLocalDay(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()

	// clock starts 2023-06-01 (Thursday) 10:00 UTC; week starts Monday 05-29.
	now := clock.Now()
	s.AddCompletion(ctx, completion(now, "fitness", entity.Easy, 100))
	s.AddCompletion(ctx, completion(now.Add(-24*time.Hour), "fitness", entity.Hard, 50))
	s.AddCompletion(ctx, completion(now.Add(-4*24*time.Hour), "mindfulness", entity.Medium, 30))
	s.AddCompletion(ctx, completion(now.Add(-40*24*time.Hour), "learning", entity.Easy, 20))

	stats := s.Stats()
	require.Equal(t, 1, stats.CompletionsToday)
	require.Equal(t, 100, stats.XPToday)
	require.Equal(t, 2, stats.CompletionsThisWeek) // today + yesterday
	require.Equal(t, 150, stats.XPThisWeek)
	require.Equal(t, 1, stats.CompletionsThisMonth) // yesterday was still May
	require.Equal(t, 100, stats.XPThisMonth)
}

func TestStatsDailySeriesHas14Days(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()

	now := clock.Now()
	s.AddCompletion(ctx, completion(now, "fitness", entity.Easy, 100))
	s.AddCompletion(ctx, completion(now.Add(-3*24*time.Hour), "fitness", entity.Easy, 40))

	stats := s.Stats()
	require.Len(t, stats.DailyXP, 14)
	require.Equal(t, "2023-06-01", stats.DailyXP[13].Day)
	require.Equal(t, 100, stats.DailyXP[13].XP)
	require.Equal(t, 40, stats.DailyXP[10].XP)
	require.Equal(t, 0, stats.DailyXP[0].XP)
}

func TestStatsAverageDifficultyAndFavoriteCategory(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	now := clock.Now()

	s.AddCompletion(ctx, completion(now, "fitness", entity.Easy, 10))      // 1
	s.AddCompletion(ctx, completion(now, "fitness", entity.Legendary, 10)) // 5
	s.AddCompletion(ctx, completion(now, "mindfulness", entity.Hard, 10))  // 3

	stats := s.Stats()
	require.InDelta(t, 3.0, stats.AverageDifficulty, 1e-9)
	require.Equal(t, "fitness", stats.FavoriteCategory)
}

func TestStatsOnEmptyHistory(t *testing.T) {
	s, _ := newTestStore(t)

	stats := s.Stats()
	require.Zero(t, stats.CompletionsToday)
	require.Zero(t, stats.AverageDifficulty)
	require.Empty(t, stats.FavoriteCategory)
	require.Len(t, stats.DailyXP, 14)
}

func TestTodaysQuestsFiltersBySchedule(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// 2023-06-01 is a Thursday.
	daily := s.AddUserQuest(ctx, entity.UserQuest{
		Title:    "Daily stretch",
		Active:   true,
		Schedule: entity.Schedule{Recurrence: entity.Daily},
	})
	s.AddUserQuest(ctx, entity.UserQuest{
		Title:  "Thursday run",
		Active: true,
		Schedule: entity.Schedule{
			Recurrence: entity.Weekly,
			DaysOfWeek: []time.Weekday{time.Thursday},
		},
	})
	s.AddUserQuest(ctx, entity.UserQuest{
		Title:  "Monday swim",
		Active: true,
		Schedule: entity.Schedule{
			Recurrence: entity.Weekly,
			DaysOfWeek: []time.Weekday{time.Monday},
		},
	})
	s.AddUserQuest(ctx, entity.UserQuest{
		Title:    "Paused daily",
		Active:   false,
		Schedule: entity.Schedule{Recurrence: entity.Daily},
	})
	s.AddUserQuest(ctx, entity.UserQuest{
		Title:    "One-off",
		Active:   true,
		Schedule: entity.Schedule{Recurrence: entity.Once},
	})

	quests := s.TodaysQuests()
	require.Len(t, quests, 2)
	require.Equal(t, daily.ID, quests[0].ID)
	require.Equal(t, "Thursday run", quests[1].Title)
}
