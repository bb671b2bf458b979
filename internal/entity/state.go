package entity

// AppState is the full per-session state graph: the single unit of local
// persistence and of every remote sync payload. Sync never writes partial
// field subsets within this group.
type AppState struct {
	Profile            Profile         `json:"profile"`
	Settings           Settings        `json:"settings"`
	UserQuests         []UserQuest     `json:"userQuests"`
	Completions        []Completion    `json:"completions"`
	ActivePacks        []string        `json:"activePacks"`
	OnboardingComplete bool            `json:"onboardingComplete"`
	OnboardingData     *OnboardingData `json:"onboardingData,omitempty"`
	ShowTutorial       bool            `json:"showTutorial"`

	// Initialized distinguishes "not yet loaded" from "loaded and empty".
	Initialized bool `json:"initialized"`
}
