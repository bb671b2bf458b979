package streak

import (
	"math/rand"
	"testing"
	"time"

	"github.com/habitquest/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func completionAt(t time.Time) entity.Completion {
	return entity.Completion{ID: t.String(), CompletedAt: t}
}

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestEmptyHistory(t *testing.T) {
	result := Compute(nil, time.Now(), time.UTC)
	require.Zero(t, result.CurrentStreak)
	require.Zero(t, result.LongestStreak)
	require.Empty(t, result.LastCompletionDay)
}

func TestThreeConsecutiveDays(t *testing.T) {
	completions := []entity.Completion{
		completionAt(day(2023, 6, 1, 9)),
		completionAt(day(2023, 6, 2, 9)),
		completionAt(day(2023, 6, 3, 9)),
	}

	result := Compute(completions, day(2023, 6, 3, 10), time.UTC)
	require.Equal(t, 3, result.CurrentStreak)
	require.Equal(t, 3, result.LongestStreak)
	require.Equal(t, "2023-06-03", result.LastCompletionDay)
}

func TestGraceWindowExpiry(t *testing.T) {
	completions := []entity.Completion{
		completionAt(day(2023, 6, 1, 9)),
		completionAt(day(2023, 6, 2, 9)),
		completionAt(day(2023, 6, 3, 10)),
	}

	// 37 hours after the last completion the current streak is gone, but the
	// longest streak still reports the historical run.
	result := Compute(completions, day(2023, 6, 4, 23), time.UTC)
	require.Equal(t, 0, result.CurrentStreak)
	require.Equal(t, 3, result.LongestStreak)
}

func TestGraceWindowBoundary(t *testing.T) {
	completions := []entity.Completion{completionAt(day(2023, 6, 3, 10))}

	// 35 hours later: alive. 37 hours later: broken.
	require.Equal(t, 1, Compute(completions, day(2023, 6, 4, 21), time.UTC).CurrentStreak)
	require.Equal(t, 0, Compute(completions, day(2023, 6, 4, 23), time.UTC).CurrentStreak)
}

func TestSameDayCompletionsCountOnce(t *testing.T) {
	completions := []entity.Completion{
		completionAt(day(2023, 6, 2, 8)),
		completionAt(day(2023, 6, 2, 12)),
		completionAt(day(2023, 6, 2, 20)),
		completionAt(day(2023, 6, 3, 9)),
	}

	result := Compute(completions, day(2023, 6, 3, 10), time.UTC)
	require.Equal(t, 2, result.CurrentStreak)
	require.Equal(t, 2, result.LongestStreak)
}

func TestGapEndsRun(t *testing.T) {
	completions := []entity.Completion{
		// A 5-day historical run...
		completionAt(day(2023, 5, 1, 9)),
		completionAt(day(2023, 5, 2, 9)),
		completionAt(day(2023, 5, 3, 9)),
		completionAt(day(2023, 5, 4, 9)),
		completionAt(day(2023, 5, 5, 9)),
		// ...a gap, then a fresh 2-day run.
		completionAt(day(2023, 6, 2, 9)),
		completionAt(day(2023, 6, 3, 9)),
	}

	result := Compute(completions, day(2023, 6, 3, 10), time.UTC)
	require.Equal(t, 2, result.CurrentStreak)
	require.Equal(t, 5, result.LongestStreak)
}

func TestInputOrderInvariance(t *testing.T) {
	completions := []entity.Completion{
		completionAt(day(2023, 5, 30, 9)),
		completionAt(day(2023, 5, 31, 9)),
		completionAt(day(2023, 6, 1, 9)),
		completionAt(day(2023, 6, 3, 9)),
	}
	now := day(2023, 6, 3, 10)
	want := Compute(completions, now, time.UTC)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]entity.Completion, len(completions))
		copy(shuffled, completions)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		require.Equal(t, want, Compute(shuffled, now, time.UTC))
	}
}

func TestLocalDaysNotUTCDays(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Both completions fall on 2023-06-02 in UTC, but in New York they land
	// on the 1st (23:30) and the 2nd (19:30): two consecutive local days.
	completions := []entity.Completion{
		completionAt(time.Date(2023, 6, 2, 3, 30, 0, 0, time.UTC)),  // 2023-06-01 local
		completionAt(time.Date(2023, 6, 2, 23, 30, 0, 0, time.UTC)), // 2023-06-02 local
	}

	result := Compute(completions, time.Date(2023, 6, 3, 1, 0, 0, 0, time.UTC), newYork)
	require.Equal(t, 2, result.CurrentStreak)
}

func TestStreakSurvivesSpringForward(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2023-03-12 is the spring-forward day in New York: only 23 hours long.
	// Consecutive 09:00 completions across it must still read as a 3-day run.
	completions := []entity.Completion{
		completionAt(time.Date(2023, 3, 11, 9, 0, 0, 0, newYork)),
		completionAt(time.Date(2023, 3, 12, 9, 0, 0, 0, newYork)),
		completionAt(time.Date(2023, 3, 13, 9, 0, 0, 0, newYork)),
	}

	result := Compute(completions, time.Date(2023, 3, 13, 10, 0, 0, 0, newYork), newYork)
	require.Equal(t, 3, result.CurrentStreak)
	require.Equal(t, 3, result.LongestStreak)
}

func TestLongestFoldsCurrentSingleRun(t *testing.T) {
	completions := []entity.Completion{completionAt(day(2023, 6, 3, 9))}

	result := Compute(completions, day(2023, 6, 3, 10), time.UTC)
	require.Equal(t, 1, result.CurrentStreak)
	require.Equal(t, 1, result.LongestStreak)
}

func TestRandomSequencesKeepInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := day(2023, 1, 1, 12)

	for trial := 0; trial < 100; trial++ {
		var completions []entity.Completion
		n := rng.Intn(40)
		for i := 0; i < n; i++ {
			offset := time.Duration(rng.Intn(90*24)) * time.Hour
			completions = append(completions, completionAt(base.Add(offset)))
		}

		now := base.Add(time.Duration(rng.Intn(120*24)) * time.Hour)
		result := Compute(completions, now, time.UTC)
		require.GreaterOrEqual(t, result.LongestStreak, result.CurrentStreak)
		require.GreaterOrEqual(t, result.CurrentStreak, 0)
	}
}
