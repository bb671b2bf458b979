package repository

import (
	"context"

	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type LeaderboardRepository interface {
	Upsert(ctx context.Context, row *entity.LeaderboardRow) error
	GetAll(ctx context.Context) ([]entity.LeaderboardRow, error)
}

type leaderboardRepository struct{}

func NewLeaderboardRepository() *leaderboardRepository {
	return &leaderboardRepository{}
}

func (r *leaderboardRepository) Upsert(ctx context.Context, row *entity.LeaderboardRow) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "total_xp", "level", "last_updated",
		}),
	}).Create(row).Error
}

func (r *leaderboardRepository) GetAll(ctx context.Context) ([]entity.LeaderboardRow, error) {
	var result []entity.LeaderboardRow
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
