package main

import (
	"github.com/habitquest/backend/internal/middleware"
	"github.com/habitquest/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig()
	s.loadContext()
	s.loadDatabase()
	s.loadRedis()
	s.loadStorage()
	s.loadCatalog()
	s.loadAuth()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()
	s.startServer()
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)

	// Public surface: login and read-only catalog browsing.
	router.POST(s.router, "/login", s.authDomain.Login)
	router.GET(s.router, "/getTemplates", s.catalogDomain.GetTemplates)
	router.GET(s.router, "/getPacks", s.catalogDomain.GetPacks)
	router.GET(s.router, "/getCategories", s.catalogDomain.GetCategories)
	router.GET(s.router, "/searchTemplates", s.catalogDomain.Search)
	router.GET(s.router, "/getLeaderboard", s.leaderboardDomain.GetLeaderboard)

	authRouter := s.router.Branch("")
	authRouter.Before(middleware.WithAuthentication(s.tokenEngine))

	router.POST(authRouter, "/logout", s.authDomain.Logout)
	router.GET(authRouter, "/getState", s.stateDomain.GetState)
	router.GET(authRouter, "/getStats", s.stateDomain.GetStats)
	router.GET(authRouter, "/getTodayQuests", s.stateDomain.GetTodayQuests)
	router.POST(authRouter, "/addCompletion", s.completionDomain.AddCompletion)
	router.POST(authRouter, "/addQuest", s.stateDomain.AddQuest)
	router.POST(authRouter, "/removeQuest", s.stateDomain.RemoveQuest)
	router.POST(authRouter, "/toggleQuest", s.stateDomain.ToggleQuest)
	router.POST(authRouter, "/activatePack", s.stateDomain.ActivatePack)
	router.POST(authRouter, "/deactivatePack", s.stateDomain.DeactivatePack)
	router.POST(authRouter, "/updateSettings", s.stateDomain.UpdateSettings)
	router.POST(authRouter, "/setShowTutorial", s.stateDomain.SetShowTutorial)
	router.POST(authRouter, "/completeOnboarding", s.stateDomain.CompleteOnboarding)
	router.POST(authRouter, "/uploadProof", s.fileDomain.UploadProof)
	router.GET(authRouter, "/getMyRank", s.leaderboardDomain.GetMyRank)
}
