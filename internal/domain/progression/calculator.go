package progression

import (
	stdmath "math"

	"github.com/habitquest/backend/internal/entity"
)

// Proof-type multipliers reward higher-friction evidence: timed or photo
// proof pays 10% over a bare checkbox.
var proofMultipliers = map[entity.ProofType]float64{
	entity.ProofCheck:   1.00,
	entity.ProofText:    1.00,
	entity.ProofCounter: 1.05,
	entity.ProofTimer:   1.10,
	entity.ProofPhoto:   1.10,
}

const (
	StreakBonusPerDay = 0.02
	StreakBonusCap    = 0.30
)

// AwardXP converts a quest's base XP into the awarded amount: base times the
// proof-type multiplier, times a streak bonus of 2% per streak day capped at
// 30%, floored to an integer. Total function, no I/O.
func AwardXP(baseXP int, proofType entity.ProofType, streakDays int) int {
	return AwardXPWithBonus(baseXP, proofType, streakDays, StreakBonusPerDay, StreakBonusCap)
}

// AwardXPWithBonus is AwardXP with operator-tuned streak bonus parameters.
func AwardXPWithBonus(
	baseXP int, proofType entity.ProofType, streakDays int, bonusPerDay, bonusCap float64,
) int {
	mult, ok := proofMultipliers[proofType]
	if !ok {
		mult = 1.00
	}

	bonus := stdmath.Min(float64(streakDays)*bonusPerDay, bonusCap)
	return int(stdmath.Floor(float64(baseXP) * mult * (1 + bonus)))
}

// XPThreshold is the total XP required to reach level. The curve is
// super-linear so late levels cost progressively more.
func XPThreshold(level int) int {
	if level <= 1 {
		return 0
	}

	return int(stdmath.Floor(100 * stdmath.Pow(float64(level), 1.6)))
}

// LevelForTotalXP returns the smallest level L with totalXP < XPThreshold(L+1).
func LevelForTotalXP(totalXP int) int {
	level := 1
	for totalXP >= XPThreshold(level+1) {
		level++
	}

	return level
}

type Progress struct {
	Level          int     `json:"level"`
	XPIntoLevel    int     `json:"xpIntoLevel"`
	XPWidthOfLevel int     `json:"xpWidthOfLevel"`
	Fraction       float64 `json:"fraction"`
	XPToNext       int     `json:"xpToNext"`
}

// LevelProgress derives the position of totalXP within its level span.
func LevelProgress(totalXP int) Progress {
	level := LevelForTotalXP(totalXP)
	floor := XPThreshold(level)
	ceil := XPThreshold(level + 1)

	p := Progress{
		Level:          level,
		XPIntoLevel:    totalXP - floor,
		XPWidthOfLevel: ceil - floor,
		XPToNext:       ceil - totalXP,
	}

	// A degenerate zero-width span must not divide by zero.
	if p.XPWidthOfLevel > 0 {
		p.Fraction = float64(p.XPIntoLevel) / float64(p.XPWidthOfLevel)
	}

	return p
}
