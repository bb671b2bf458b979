package model

import "github.com/habitquest/backend/internal/entity"

type GetTemplatesRequest struct {
	Category string `json:"category"`
}

type GetTemplatesResponse struct {
	Templates []entity.QuestTemplate `json:"templates"`
}

type GetPacksRequest struct{}

type GetPacksResponse struct {
	Packs []entity.QuestPack `json:"packs"`
}

type GetCategoriesRequest struct{}

type GetCategoriesResponse struct {
	Categories []entity.Category `json:"categories"`
}

type SearchTemplatesRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type SearchTemplatesResponse struct {
	Templates []entity.QuestTemplate `json:"templates"`
}

type GetLeaderboardRequest struct {
	Limit int `json:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []entity.LeaderboardEntry `json:"entries"`
}

type GetMyRankRequest struct{}

type GetMyRankResponse struct {
	Rank int `json:"rank"`
}
