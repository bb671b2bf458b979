package sync

import (
	"reflect"

	"github.com/habitquest/backend/internal/entity"
)

// Payload is the only shape ever written to the remote document: always this
// full, consistent subset of the session state, never a partial field set.
// Optional fields are omitted from the serialized form since the remote
// store cannot persist undefined values.
type Payload struct {
	Profile            entity.Profile          `json:"profile"`
	UserQuests         []entity.UserQuest      `json:"userQuests"`
	Completions        []entity.Completion     `json:"completions"`
	ActivePacks        []string                `json:"activePacks"`
	Settings           entity.Settings         `json:"settings"`
	OnboardingComplete bool                    `json:"onboardingComplete"`
	OnboardingData     *entity.OnboardingData  `json:"onboardingData,omitempty"`
	ShowTutorial       bool                    `json:"showTutorial"`
}

func PayloadFromState(state entity.AppState) Payload {
	return Payload{
		Profile:            state.Profile,
		UserQuests:         state.UserQuests,
		Completions:        state.Completions,
		ActivePacks:        state.ActivePacks,
		Settings:           state.Settings,
		OnboardingComplete: state.OnboardingComplete,
		OnboardingData:     state.OnboardingData,
		ShowTutorial:       state.ShowTutorial,
	}
}

// State converts a fetched document back into a full local state. A state
// that existed remotely is by definition past its first run.
func (p Payload) State() entity.AppState {
	return entity.AppState{
		Profile:            p.Profile,
		UserQuests:         p.UserQuests,
		Completions:        p.Completions,
		ActivePacks:        p.ActivePacks,
		Settings:           p.Settings,
		OnboardingComplete: p.OnboardingComplete,
		OnboardingData:     p.OnboardingData,
		ShowTutorial:       p.ShowTutorial,
		Initialized:        true,
	}
}

// Equal is the dirtiness check against the last acknowledged sync payload.
func (p Payload) Equal(other Payload) bool {
	return reflect.DeepEqual(p, other)
}
