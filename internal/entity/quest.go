package entity

import (
	"time"

	"github.com/habitquest/backend/pkg/enum"
)

type Difficulty string

var (
	Easy      = enum.New(Difficulty("easy"))
	Medium    = enum.New(Difficulty("medium"))
	Hard      = enum.New(Difficulty("hard"))
	Elite     = enum.New(Difficulty("elite"))
	Legendary = enum.New(Difficulty("legendary"))
)

// DifficultyScale maps difficulties onto the numeric 1..5 scale used by the
// average-difficulty statistic.
var DifficultyScale = map[Difficulty]int{
	Easy:      1,
	Medium:    2,
	Hard:      3,
	Elite:     4,
	Legendary: 5,
}

type ProofType string

var (
	ProofCheck   = enum.New(ProofType("check"))
	ProofPhoto   = enum.New(ProofType("photo"))
	ProofTimer   = enum.New(ProofType("timer"))
	ProofCounter = enum.New(ProofType("counter"))
	ProofText    = enum.New(ProofType("text"))
)

type RecurrenceType string

var (
	Once    = enum.New(RecurrenceType("once"))
	Daily   = enum.New(RecurrenceType("daily"))
	Weekly  = enum.New(RecurrenceType("weekly"))
	Program = enum.New(RecurrenceType("program"))
)

type ExperienceLevel string

var (
	Beginner     = enum.New(ExperienceLevel("beginner"))
	Intermediate = enum.New(ExperienceLevel("intermediate"))
	Advanced     = enum.New(ExperienceLevel("advanced"))
)

type TimeBudget string

var (
	Budget15To30 = enum.New(TimeBudget("15-30"))
	Budget30To60 = enum.New(TimeBudget("30-60"))
	Budget60Plus = enum.New(TimeBudget("60+"))
)

// QuestTemplate is an immutable entry of the static catalog. The engine never
// mutates it; user queues carry denormalized copies instead of references.
type QuestTemplate struct {
	ID              string         `toml:"id"`
	Category        string         `toml:"category"`
	Title           string         `toml:"title"`
	Description     string         `toml:"description"`
	Difficulty      Difficulty     `toml:"difficulty"`
	DurationMinutes int            `toml:"duration_minutes"`
	ProofType       ProofType      `toml:"proof_type"`
	Recurrence      RecurrenceType `toml:"recurrence"`
	BaseXP          int            `toml:"base_xp"`
	Tags            []string       `toml:"tags"`
	Equipment       []string       `toml:"equipment"`
	SafetyNote      string         `toml:"safety_note"`
}

// QuestPack is a curated, ordered bundle of templates activated as a unit.
type QuestPack struct {
	ID          string   `toml:"id"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	TemplateIDs []string `toml:"template_ids"`
}

type Category struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
	Icon  string `toml:"icon"`
}

type Schedule struct {
	Recurrence RecurrenceType `json:"recurrence"`
	DaysOfWeek []time.Weekday `json:"daysOfWeek,omitempty"`
}

// UserQuest is a template materialized into a user's active queue, or a
// custom quest. Completions reference it by id but never mutate it, so
// recurring quests can be completed repeatedly.
type UserQuest struct {
	ID              string         `json:"id"`
	TemplateID      string         `json:"templateId,omitempty"`
	Title           string         `json:"title"`
	Category        string         `json:"category"`
	Difficulty      Difficulty     `json:"difficulty"`
	DurationMinutes int            `json:"durationMinutes"`
	ProofType       ProofType      `json:"proofType"`
	BaseXP          int            `json:"baseXP"`
	Schedule        Schedule       `json:"schedule"`
	Active          bool           `json:"active"`
	CreatedAt       time.Time      `json:"createdAt"`
}
