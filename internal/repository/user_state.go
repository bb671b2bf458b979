package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserStateRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserState, error)
	Upsert(ctx context.Context, state *entity.UserState) error
	MergeSubscription(ctx context.Context, userID string, sub entity.Subscription) error
}

type userStateRepository struct{}

func NewUserStateRepository() *userStateRepository {
	return &userStateRepository{}
}

func (r *userStateRepository) Get(ctx context.Context, userID string) (*entity.UserState, error) {
	var result entity.UserState
	err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userStateRepository) Upsert(ctx context.Context, state *entity.UserState) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"doc", "last_synced"}),
	}).Create(state).Error
}

// MergeSubscription rewrites only profile.subscription inside the stored
// document. Unlike the client's wholesale writes, lifecycle facts arrive out
// of band and must not clobber gamification fields the client wrote since.
func (r *userStateRepository) MergeSubscription(
	ctx context.Context, userID string, sub entity.Subscription,
) error {
	var state entity.UserState
	err := xcontext.DB(ctx).Take(&state, "user_id=?", userID).Error
	if err != nil {
		return err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(state.Doc), &doc); err != nil {
		return err
	}

	var profile entity.Profile
	if raw, ok := doc["profile"]; ok {
		if err := json.Unmarshal(raw, &profile); err != nil {
			return err
		}
	}

	profile.Subscription = &sub
	rawProfile, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	doc["profile"] = rawProfile

	rawDoc, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return xcontext.DB(ctx).Model(&entity.UserState{}).
		Where("user_id=?", userID).
		Updates(map[string]any{"doc": string(rawDoc), "last_synced": time.Now()}).Error
}
