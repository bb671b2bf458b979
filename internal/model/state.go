package model

import (
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/store"
)

type GetStateRequest struct{}

type GetStateResponse struct {
	State entity.AppState `json:"state"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	Stats store.Stats `json:"stats"`
}

type GetTodayQuestsRequest struct{}

type GetTodayQuestsResponse struct {
	Quests []entity.UserQuest `json:"quests"`
}

type AddCompletionRequest struct {
	QuestID string     `json:"questId"`
	Proof   entity.Map `json:"proof"`
}

type AddCompletionResponse struct {
	Completion entity.Completion `json:"completion"`
	LeveledUp  bool              `json:"leveledUp"`
	NewBadges  []string          `json:"newBadges,omitempty"`
}

type AddQuestRequest struct {
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	Difficulty      string   `json:"difficulty"`
	DurationMinutes int      `json:"durationMinutes"`
	ProofType       string   `json:"proofType"`
	BaseXP          int      `json:"baseXP"`
	Recurrence      string   `json:"recurrence"`
	DaysOfWeek      []int    `json:"daysOfWeek,omitempty"`
	TemplateID      string   `json:"templateId,omitempty"`
}

type AddQuestResponse struct {
	Quest entity.UserQuest `json:"quest"`
}

type RemoveQuestRequest struct {
	ID string `json:"id"`
}

type RemoveQuestResponse struct{}

type ToggleQuestRequest struct {
	ID string `json:"id"`
}

type ToggleQuestResponse struct{}

type ActivatePackRequest struct {
	PackID string `json:"packId"`
}

type ActivatePackResponse struct {
	Quests []entity.UserQuest `json:"quests"`
}

type DeactivatePackRequest struct {
	PackID string `json:"packId"`
}

type DeactivatePackResponse struct{}

type UpdateSettingsRequest struct {
	Settings entity.Settings `json:"settings"`
}

type UpdateSettingsResponse struct{}

type SetShowTutorialRequest struct {
	Show bool `json:"show"`
}

type SetShowTutorialResponse struct{}

type CompleteOnboardingRequest struct {
	Data entity.OnboardingData `json:"data"`
}

type CompleteOnboardingResponse struct {
	Quests []entity.UserQuest `json:"quests"`
}

type UploadProofRequest struct{}

type UploadProofResponse struct {
	URL string `json:"url"`
}
