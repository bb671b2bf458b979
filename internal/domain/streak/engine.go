package streak

import (
	"sort"
	"time"

	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/pkg/dateutil"
	"github.com/pkg/math"
)

// GraceWindow is how long after the most recent completion a streak stays
// alive. It lets a late-evening completion followed by an early-morning one
// skip a calendar day without resetting, while truly absent users drop to 0.
const GraceWindow = 36 * time.Hour

type Result struct {
	CurrentStreak     int
	LongestStreak     int
	LastCompletionDay string
}

// Compute derives streaks from the full completion history. The history may
// arrive in any order; results depend only on its contents.
func Compute(completions []entity.Completion, now time.Time, loc *time.Location) Result {
	return ComputeWithGrace(completions, now, loc, GraceWindow)
}

func ComputeWithGrace(
	completions []entity.Completion, now time.Time, loc *time.Location, grace time.Duration,
) Result {
	if len(completions) == 0 {
		return Result{}
	}

	// Reduce to the set of distinct local calendar days, newest first. Two
	// completions on the same day count as one streak day.
	daySet := map[string]struct{}{}
	var latest time.Time
	for _, c := range completions {
		daySet[dateutil.LocalDay(c.CompletedAt, loc)] = struct{}{}
		if c.CompletedAt.After(latest) {
			latest = c.CompletedAt
		}
	}

	days := make([]time.Time, 0, len(daySet))
	for day := range daySet {
		t, err := dateutil.ParseDay(day, loc)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	result := Result{LastCompletionDay: dateutil.LocalDay(latest, loc)}

	// Current streak: walk back from the newest day while each day is exactly
	// one calendar day before the previous counted one.
	if now.Sub(latest) <= grace {
		result.CurrentStreak = 1
		for i := 1; i < len(days); i++ {
			if dateutil.DaysBetween(days[i], days[i-1], loc) != 1 {
				break
			}
			result.CurrentStreak++
		}
	}

	// Longest streak: one descending scan for maximal consecutive-day runs,
	// folded against the current streak so a sole active run still counts.
	run := 1
	longest := 1
	for i := 1; i < len(days); i++ {
		if dateutil.DaysBetween(days[i], days[i-1], loc) == 1 {
			run++
		} else {
			run = 1
		}
		longest = math.Max(longest, run)
	}
	result.LongestStreak = math.Max(longest, result.CurrentStreak)

	return result
}
