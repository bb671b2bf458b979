package entity

import "time"

// Completion is append-only. Quest fields are denormalized so the record
// survives quest deletion, and XP is computed exactly once at creation.
type Completion struct {
	ID          string     `json:"id"`
	QuestID     string     `json:"questId"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	CompletedAt time.Time  `json:"completedAt"`
	XP          int        `json:"xp"`
	Proof       Map        `json:"proof,omitempty"`
	StreakBonus bool       `json:"streakBonus,omitempty"`
}
