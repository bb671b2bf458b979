package badge

import (
	"context"
	"testing"

	"github.com/habitquest/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func completionsIn(category string, n int) []entity.Completion {
	completions := make([]entity.Completion, 0, n)
	for i := 0; i < n; i++ {
		completions = append(completions, entity.Completion{Category: category, Title: "Quest"})
	}

	return completions
}

func TestUnknownRuleReturnsFalse(t *testing.T) {
	manager := DefaultManager(nil)
	require.False(t, manager.Evaluate(context.Background(), "no_such_rule", State{TotalXP: 1 << 30}))
}

func TestXPThresholdRules(t *testing.T) {
	ctx := context.Background()
	manager := DefaultManager(nil)

	require.False(t, manager.Evaluate(ctx, "xp_1k", State{TotalXP: 999}))
	require.True(t, manager.Evaluate(ctx, "xp_1k", State{TotalXP: 1_000}))
	require.True(t, manager.Evaluate(ctx, "xp_100k", State{TotalXP: 250_000}))
}

func TestCategoryCountRules(t *testing.T) {
	ctx := context.Background()
	manager := DefaultManager([]string{"fitness", "mindfulness"})

	state := State{Completions: completionsIn("fitness", 10)}
	require.True(t, manager.Evaluate(ctx, "fitness_novice", state))
	require.True(t, manager.Evaluate(ctx, "fitness_adept", state))
	require.False(t, manager.Evaluate(ctx, "fitness_master", state))
	require.False(t, manager.Evaluate(ctx, "mindfulness_novice", state))
}

func TestStreakRulesUseLongestToo(t *testing.T) {
	ctx := context.Background()
	manager := DefaultManager(nil)

	// A broken current streak does not revoke a streak badge.
	state := State{CurrentStreak: 0, LongestStreak: 12}
	require.True(t, manager.Evaluate(ctx, "streak_7", state))
	require.False(t, manager.Evaluate(ctx, "streak_30", state))
}

func TestTitleSubstringRule(t *testing.T) {
	ctx := context.Background()
	manager := DefaultManager(nil)

	state := State{Completions: []entity.Completion{{Title: "Run a Half-Marathon"}}}
	require.True(t, manager.Evaluate(ctx, "marathon_finisher", state))

	state = State{Completions: []entity.Completion{{Title: "Morning jog"}}}
	require.False(t, manager.Evaluate(ctx, "marathon_finisher", state))
}

func TestEarnedIsDeterministic(t *testing.T) {
	ctx := context.Background()
	manager := DefaultManager([]string{"fitness"})

	state := State{
		TotalXP:       2_000,
		LongestStreak: 8,
		Completions:   completionsIn("fitness", 1),
	}

	first := manager.Earned(ctx, state)
	require.Equal(t, []string{"first_quest", "fitness_novice", "streak_7", "xp_1k"}, first)

	for i := 0; i < 5; i++ {
		require.Equal(t, first, manager.Earned(ctx, state))
	}
}
