package statistic

import (
	"context"
	"encoding/json"
	"time"

	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/repository"
	"github.com/habitquest/backend/pkg/errorx"
	"github.com/habitquest/backend/pkg/xcontext"
	"github.com/habitquest/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const (
	xpKey   = "leaderboard:xp"
	metaKey = "leaderboard:meta"
)

// Leaderboard keeps the XP ranking in a redis sorted set, with a durable copy
// in the database. The redis side is rebuilt lazily from the rows when it is
// missing, so a cache flush costs one rebuild, never data.
type Leaderboard struct {
	redisClient     xredis.Client
	leaderboardRepo repository.LeaderboardRepository
}

func NewLeaderboard(
	redisClient xredis.Client,
	leaderboardRepo repository.LeaderboardRepository,
) *Leaderboard {
	return &Leaderboard{redisClient: redisClient, leaderboardRepo: leaderboardRepo}
}

type rowMeta struct {
	DisplayName string `json:"displayName"`
	Level       int    `json:"level"`
	LastUpdated int64  `json:"lastUpdated"`
}

// Upsert is best-effort: a failed leaderboard write must never fail the
// completion that triggered it.
func (l *Leaderboard) Upsert(ctx context.Context, row entity.LeaderboardRow) {
	if err := l.leaderboardRepo.Upsert(ctx, &row); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist leaderboard row: %v", err)
	}

	if err := l.redisClient.ZAdd(ctx, xpKey, redis.Z{
		Member: row.UserID,
		Score:  float64(row.TotalXP),
	}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update leaderboard sorted set: %v", err)
		return
	}

	meta, err := json.Marshal(rowMeta{
		DisplayName: row.DisplayName,
		Level:       row.Level,
		LastUpdated: row.LastUpdated.Unix(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal leaderboard meta: %v", err)
		return
	}

	if err := l.redisClient.HSet(ctx, metaKey, row.UserID, string(meta)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update leaderboard meta: %v", err)
	}
}

// TopN returns the highest-XP entries. Entries with equal XP share a rank,
// the next distinct score resumes at its absolute position.
func (l *Leaderboard) TopN(ctx context.Context, n int) ([]entity.LeaderboardEntry, error) {
	if err := l.ensure(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rebuild leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	zs, err := l.redisClient.ZRevRangeWithScores(ctx, xpKey, 0, n)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot range leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	meta, err := l.redisClient.HGetAll(ctx, metaKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load leaderboard meta: %v", err)
		return nil, errorx.Unknown
	}

	entries := make([]entity.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		rank := i + 1
		if i > 0 && z.Score == zs[i-1].Score {
			rank = entries[i-1].Rank
		}

		entry := entity.LeaderboardEntry{
			UserID:  z.Member.(string),
			TotalXP: int(z.Score),
			Rank:    rank,
		}

		if raw, ok := meta[entry.UserID]; ok {
			var m rowMeta
			if err := json.Unmarshal([]byte(raw), &m); err == nil {
				entry.DisplayName = m.DisplayName
				entry.Level = m.Level
				entry.LastUpdated = time.Unix(m.LastUpdated, 0)
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// RankOf is one plus the number of strictly greater scores, so tied users
// share the better rank. It walks the full set; at self-improvement-app
// scale that set stays small.
func (l *Leaderboard) RankOf(ctx context.Context, userID string) (int, error) {
	if err := l.ensure(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rebuild leaderboard: %v", err)
		return 0, errorx.Unknown
	}

	total, err := l.redisClient.ZCard(ctx, xpKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count leaderboard: %v", err)
		return 0, errorx.Unknown
	}

	zs, err := l.redisClient.ZRevRangeWithScores(ctx, xpKey, 0, int(total))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot range leaderboard: %v", err)
		return 0, errorx.Unknown
	}

	var score float64
	found := false
	for _, z := range zs {
		if z.Member.(string) == userID {
			score = z.Score
			found = true
			break
		}
	}

	if !found {
		return 0, errorx.New(errorx.NotFound, "User is not on the leaderboard")
	}

	rank := 1
	for _, z := range zs {
		if z.Score > score {
			rank++
		}
	}

	return rank, nil
}

// ensure rebuilds the sorted set from the durable rows when redis lost it.
func (l *Leaderboard) ensure(ctx context.Context) error {
	ok, err := l.redisClient.Exist(ctx, xpKey)
	if err != nil {
		return err
	}

	if ok {
		return nil
	}

	rows, err := l.leaderboardRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := l.redisClient.ZAdd(ctx, xpKey, redis.Z{
			Member: row.UserID,
			Score:  float64(row.TotalXP),
		}); err != nil {
			return err
		}

		meta, err := json.Marshal(rowMeta{
			DisplayName: row.DisplayName,
			Level:       row.Level,
			LastUpdated: row.LastUpdated.Unix(),
		})
		if err != nil {
			return err
		}

		if err := l.redisClient.HSet(ctx, metaKey, row.UserID, string(meta)); err != nil {
			return err
		}
	}

	return nil
}
