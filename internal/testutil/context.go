package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/habitquest/backend/config"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/pkg/logger"
	"github.com/habitquest/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockContext(t *testing.T) context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, config.Configs{}.Default())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	return ctx
}

// MockContextWithDB attaches an in-memory sqlite database with the full
// schema migrated.
func MockContextWithDB(t *testing.T) context.Context {
	ctx := MockContext(t)

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.UserState{},
		&entity.LeaderboardRow{},
	))

	return xcontext.WithDB(ctx, db)
}
