package domain

import (
	"context"

	"github.com/habitquest/backend/internal/domain/statistic"
	"github.com/habitquest/backend/internal/model"
	"github.com/habitquest/backend/pkg/errorx"
	"github.com/habitquest/backend/pkg/xcontext"
)

const maxLeaderboardLimit = 100

type LeaderboardDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetMyRank(context.Context, *model.GetMyRankRequest) (*model.GetMyRankResponse, error)
}

type leaderboardDomain struct {
	leaderboard *statistic.Leaderboard
}

func NewLeaderboardDomain(leaderboard *statistic.Leaderboard) LeaderboardDomain {
	return &leaderboardDomain{leaderboard: leaderboard}
}

func (d *leaderboardDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := d.leaderboard.TopN(ctx, limit)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}

func (d *leaderboardDomain) GetMyRank(
	ctx context.Context, req *model.GetMyRankRequest,
) (*model.GetMyRankResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not signed in")
	}

	rank, err := d.leaderboard.RankOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.GetMyRankResponse{Rank: rank}, nil
}
