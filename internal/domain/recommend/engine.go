package recommend

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/habitquest/backend/internal/entity"
	"golang.org/x/exp/slices"
)

// targetQueueSize is how many quests a fresh queue aims for across all
// selected categories.
const targetQueueSize = 8

// preferenceKeywords maps an onboarding preference onto the tag and equipment
// keywords it should boost.
var preferenceKeywords = map[string][]string{
	"outdoor":  {"outdoor", "running", "nature", "walk"},
	"home":     {"home", "indoor", "bodyweight"},
	"strength": {"strength", "weights", "dumbbell", "kettlebell"},
	"cardio":   {"cardio", "running", "hiit", "cycling"},
	"mindful":  {"meditation", "breathing", "calm", "journal"},
	"social":   {"social", "group", "partner"},
	"learning": {"reading", "study", "language", "course"},
}

var allowedDifficulties = map[entity.ExperienceLevel][]entity.Difficulty{
	entity.Beginner:     {entity.Easy, entity.Medium},
	entity.Intermediate: {entity.Easy, entity.Medium, entity.Hard},
	entity.Advanced:     {entity.Easy, entity.Medium, entity.Hard, entity.Elite, entity.Legendary},
}

func durationCeiling(budget entity.TimeBudget) int {
	switch budget {
	case entity.Budget15To30:
		return 30
	case entity.Budget30To60:
		return 60
	default:
		return 999
	}
}

// weeklyDefaultDays is the schedule given to weekly recommendations; the user
// adjusts it from the queue screen afterwards.
var weeklyDefaultDays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}

type Engine struct {
	now   func() time.Time
	newID func() string
}

func NewEngine() *Engine {
	return &Engine{now: time.Now, newID: uuid.NewString}
}

// NewEngineWithSources injects the id and clock sources. Neither may affect
// selection order or scoring; they only stamp the materialized quests.
func NewEngineWithSources(now func() time.Time, newID func() string) *Engine {
	return &Engine{now: now, newID: newID}
}

type scored struct {
	template entity.QuestTemplate
	score    int
}

// Recommend selects a starter quest set from the catalog for the given
// onboarding answers. It is a total function: malformed answers yield an
// empty set, never an error.
func (e *Engine) Recommend(
	catalog []entity.QuestTemplate, data entity.OnboardingData,
) []entity.UserQuest {
	if len(data.Categories) == 0 {
		return []entity.UserQuest{}
	}

	difficulties := allowedDifficulties[data.Experience]
	if difficulties == nil {
		difficulties = allowedDifficulties[entity.Beginner]
	}
	ceiling := durationCeiling(data.TimeBudget)

	// Stage 1-3: narrow the catalog by category, difficulty, and duration.
	candidates := []scored{}
	for _, template := range catalog {
		if !slices.Contains(data.Categories, template.Category) {
			continue
		}
		if !slices.Contains(difficulties, template.Difficulty) {
			continue
		}
		if template.DurationMinutes > ceiling {
			continue
		}

		candidates = append(candidates, scored{
			template: template,
			score:    e.score(template, data),
		})
	}

	// Stage 5: per-category quota so one category cannot dominate the queue.
	slices.SortStableFunc(candidates, func(a, b scored) bool {
		if a.score != b.score {
			return a.score > b.score
		}
		return a.template.ID < b.template.ID
	})

	quota := int(math.Ceil(float64(targetQueueSize) / float64(len(data.Categories))))
	selected := []entity.QuestTemplate{}
	for _, category := range data.Categories {
		taken := 0
		for _, c := range candidates {
			if taken >= quota {
				break
			}
			if c.template.Category == category {
				selected = append(selected, c.template)
				taken++
			}
		}
	}

	quests := make([]entity.UserQuest, 0, len(selected))
	for _, template := range selected {
		quests = append(quests, e.materialize(template))
	}

	return quests
}

func (e *Engine) score(template entity.QuestTemplate, data entity.OnboardingData) int {
	score := 0

	// Habit-building bias towards daily quests.
	if template.Recurrence == entity.Daily {
		score += 5
	}

	for _, preference := range data.Preferences {
		if e.matchesPreference(template, preference) {
			score += 3
		}
	}

	if data.Experience == entity.Beginner && template.Difficulty == entity.Easy {
		score += 2
	}

	if data.TimeBudget == entity.Budget15To30 && template.DurationMinutes <= 20 {
		score += 2
	}

	return score
}

func (e *Engine) matchesPreference(template entity.QuestTemplate, preference string) bool {
	keywords, ok := preferenceKeywords[preference]
	if !ok {
		return false
	}

	for _, keyword := range keywords {
		if slices.Contains(template.Tags, keyword) || slices.Contains(template.Equipment, keyword) {
			return true
		}
	}

	return false
}

// Materialize turns a catalog template into an active user quest. Pack
// activation uses the same mapping as recommendation.
func (e *Engine) Materialize(template entity.QuestTemplate) entity.UserQuest {
	return e.materialize(template)
}

func (e *Engine) materialize(template entity.QuestTemplate) entity.UserQuest {
	schedule := entity.Schedule{Recurrence: template.Recurrence}
	if template.Recurrence == entity.Weekly {
		schedule.DaysOfWeek = slices.Clone(weeklyDefaultDays)
	}

	return entity.UserQuest{
		ID:              e.newID(),
		TemplateID:      template.ID,
		Title:           template.Title,
		Category:        template.Category,
		Difficulty:      template.Difficulty,
		DurationMinutes: template.DurationMinutes,
		ProofType:       template.ProofType,
		BaseXP:          template.BaseXP,
		Schedule:        schedule,
		Active:          true,
		CreatedAt:       e.now(),
	}
}
