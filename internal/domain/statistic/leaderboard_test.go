package statistic

import (
	"context"
	"testing"
	"time"

	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/repository"
	"github.com/habitquest/backend/internal/testutil"
	"github.com/habitquest/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func seedLeaderboard(t *testing.T) (context.Context, *Leaderboard) {
	ctx := testutil.MockContextWithDB(t)
	redisClient := testutil.NewMockRedisClient()
	lb := NewLeaderboard(redisClient, repository.NewLeaderboardRepository())

	now := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)
	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "alice", DisplayName: "Alice", TotalXP: 900, Level: 4, LastUpdated: now})
	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "bob", DisplayName: "Bob", TotalXP: 400, Level: 3, LastUpdated: now})
	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "carol", DisplayName: "Carol", TotalXP: 900, Level: 4, LastUpdated: now})
	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "dave", DisplayName: "Dave", TotalXP: 100, Level: 1, LastUpdated: now})

	return ctx, lb
}

func TestTopNOrderingAndTieRanks(t *testing.T) {
	ctx := testutil.MockContextWithDB(t)
	redisClient := testutil.NewMockRedisClient()
	lb := NewLeaderboard(redisClient, repository.NewLeaderboardRepository())

	now := time.Now()
	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "alice", DisplayName: "Alice", TotalXP: 900, Level: 4, LastUpdated: now})
	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "bob", DisplayName: "Bob", TotalXP: 400, Level: 3, LastUpdated: now})
	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "carol", DisplayName: "Carol", TotalXP: 900, Level: 4, LastUpdated: now})

	entries, err := lb.TopN(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Tied 900s share rank 1, the 400 resumes at its absolute position.
	require.Equal(t, 900, entries[0].TotalXP)
	require.Equal(t, 900, entries[1].TotalXP)
	require.Equal(t, 1, entries[0].Rank)
	require.Equal(t, 1, entries[1].Rank)
	require.Equal(t, "bob", entries[2].UserID)
	require.Equal(t, 3, entries[2].Rank)
	require.Equal(t, "Bob", entries[2].DisplayName)
	require.Equal(t, 3, entries[2].Level)
}

func TestRankOfSharesTiedRank(t *testing.T) {
	ctx, lb := seedLeaderboard(t)

	rank, err := lb.RankOf(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 1, rank)

	rank, err = lb.RankOf(ctx, "carol")
	require.NoError(t, err)
	require.Equal(t, 1, rank)

	rank, err = lb.RankOf(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, 3, rank)

	rank, err = lb.RankOf(ctx, "dave")
	require.NoError(t, err)
	require.Equal(t, 4, rank)
}

func TestRankOfUnknownUser(t *testing.T) {
	ctx, lb := seedLeaderboard(t)

	_, err := lb.RankOf(ctx, "mallory")
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.NotFound, "User is not on the leaderboard"), err)
}

func TestUpsertReplacesScore(t *testing.T) {
	ctx := testutil.MockContextWithDB(t)
	redisClient := testutil.NewMockRedisClient()
	lb := NewLeaderboard(redisClient, repository.NewLeaderboardRepository())

	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "alice", DisplayName: "Alice", TotalXP: 100, Level: 1, LastUpdated: time.Now()})
	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "alice", DisplayName: "Alice", TotalXP: 250, Level: 2, LastUpdated: time.Now()})

	entries, err := lb.TopN(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 250, entries[0].TotalXP)
	require.Equal(t, 2, entries[0].Level)
}

func TestLeaderboardRebuildsFromDurableRows(t *testing.T) {
	ctx := testutil.MockContextWithDB(t)
	redisClient := testutil.NewMockRedisClient()
	lb := NewLeaderboard(redisClient, repository.NewLeaderboardRepository())

	now := time.Now()
	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "alice", DisplayName: "Alice", TotalXP: 900, Level: 4, LastUpdated: now})
	lb.Upsert(ctx, entity.LeaderboardRow{UserID: "bob", DisplayName: "Bob", TotalXP: 400, Level: 3, LastUpdated: now})

	// Simulate a redis flush; the rows remain in the database.
	require.NoError(t, redisClient.Del(ctx, "leaderboard:xp", "leaderboard:meta"))

	entries, err := lb.TopN(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "alice", entries[0].UserID)
	require.Equal(t, "Alice", entries[0].DisplayName)
}
