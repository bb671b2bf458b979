package main

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/habitquest/backend/config"
	"github.com/habitquest/backend/internal/catalog"
	"github.com/habitquest/backend/internal/domain"
	"github.com/habitquest/backend/internal/domain/badge"
	"github.com/habitquest/backend/internal/domain/recommend"
	"github.com/habitquest/backend/internal/domain/statistic"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/middleware"
	"github.com/habitquest/backend/internal/model"
	"github.com/habitquest/backend/internal/repository"
	"github.com/habitquest/backend/internal/session"
	"github.com/habitquest/backend/pkg/authenticator"
	"github.com/habitquest/backend/pkg/jwt"
	"github.com/habitquest/backend/pkg/logger"
	"github.com/habitquest/backend/pkg/router"
	"github.com/habitquest/backend/pkg/storage"
	"github.com/habitquest/backend/pkg/xcontext"
	"github.com/habitquest/backend/pkg/xredis"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	configs config.Configs

	db          *gorm.DB
	redisClient xredis.Client
	storage     storage.Storage
	catalog     *catalog.Catalog

	tokenEngine *jwt.Engine[model.AccessToken]
	verifier    authenticator.IDTokenVerifier

	userStateRepo   repository.UserStateRepository
	leaderboardRepo repository.LeaderboardRepository

	badges          *badge.Manager
	recommendEngine *recommend.Engine
	leaderboard     *statistic.Leaderboard
	hub             *session.Hub

	authDomain        domain.AuthDomain
	stateDomain       domain.StateDomain
	completionDomain  domain.CompletionDomain
	catalogDomain     domain.CatalogDomain
	leaderboardDomain domain.LeaderboardDomain
	fileDomain        domain.FileDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadContext() {
	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.LevelFromString(s.configs.LogLevel)))

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := s.db.AutoMigrate(
		&entity.UserState{},
		&entity.LeaderboardRow{},
	); err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadCatalog() {
	var err error
	s.catalog, err = catalog.Load(s.ctx, s.configs.Catalog.Dir)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadAuth() {
	s.tokenEngine = jwt.NewEngine[model.AccessToken](
		s.configs.Auth.TokenSecret, s.configs.Auth.TokenExpiration)

	var err error
	s.verifier, err = authenticator.NewOIDCVerifier(s.ctx, s.configs.Auth.Google)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userStateRepo = repository.NewUserStateRepository()
	s.leaderboardRepo = repository.NewLeaderboardRepository()
}

func (s *srv) loadDomains() {
	s.badges = badge.DefaultManager(s.catalog.CategoryIDs())
	s.recommendEngine = recommend.NewEngine()
	s.leaderboard = statistic.NewLeaderboard(s.redisClient, s.leaderboardRepo)
	s.hub = session.NewHub(s.ctx, s.userStateRepo, s.badges)

	s.authDomain = domain.NewAuthDomain(
		s.verifier, s.hub, s.tokenEngine, s.catalog, s.recommendEngine)
	s.stateDomain = domain.NewStateDomain(s.hub, s.catalog, s.recommendEngine)
	s.completionDomain = domain.NewCompletionDomain(s.hub, s.leaderboard)
	s.catalogDomain = domain.NewCatalogDomain(s.catalog)
	s.leaderboardDomain = domain.NewLeaderboardDomain(s.leaderboard)
	s.fileDomain = domain.NewFileDomain(s.storage)
}

func (s *srv) startServer() {
	xcontext.Logger(s.ctx).Infof("Starting server on %s", s.configs.ApiServer.Address())

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: middleware.AllowCors(s.configs, s.router.Handler()),
	}

	cert := s.configs.ApiServer.Cert
	key := s.configs.ApiServer.Key
	if cert != "" && key != "" {
		if err := s.server.ListenAndServeTLS(cert, key); err != nil {
			panic(err)
		}
	} else if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
}
