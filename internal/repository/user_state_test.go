package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserStateUpsert(t *testing.T) {
	ctx := testutil.MockContextWithDB(t)
	repo := NewUserStateRepository()

	_, err := repo.Get(ctx, "u1")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	first := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, &entity.UserState{
		UserID: "u1", Doc: `{"profile":{}}`, LastSynced: first,
	}))

	second := first.Add(time.Hour)
	require.NoError(t, repo.Upsert(ctx, &entity.UserState{
		UserID: "u1", Doc: `{"profile":{"nickname":"Casey"}}`, LastSynced: second,
	}))

	state, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, `{"profile":{"nickname":"Casey"}}`, state.Doc)
	require.Equal(t, second.Unix(), state.LastSynced.Unix())
}

func TestMergeSubscriptionUnknownUser(t *testing.T) {
	ctx := testutil.MockContextWithDB(t)
	repo := NewUserStateRepository()

	err := repo.MergeSubscription(ctx, "ghost", entity.Subscription{
		Status: entity.SubscriptionActive,
	})
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
