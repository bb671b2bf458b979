package entity

// OnboardingData is captured once by the onboarding wizard and consumed only
// by the recommendation engine.
type OnboardingData struct {
	Categories  []string        `json:"categories"`
	Experience  ExperienceLevel `json:"experience"`
	TimeBudget  TimeBudget      `json:"timeBudget"`
	Preferences []string        `json:"preferences"`
}
