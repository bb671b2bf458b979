package domain

import (
	"context"
	"time"

	"github.com/habitquest/backend/internal/domain/progression"
	"github.com/habitquest/backend/internal/domain/proof"
	"github.com/habitquest/backend/internal/domain/statistic"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/model"
	"github.com/habitquest/backend/internal/session"
	"github.com/habitquest/backend/pkg/errorx"
	"github.com/habitquest/backend/pkg/xcontext"
)

type CompletionDomain interface {
	AddCompletion(context.Context, *model.AddCompletionRequest) (*model.AddCompletionResponse, error)
}

type completionDomain struct {
	hub         *session.Hub
	leaderboard *statistic.Leaderboard
}

func NewCompletionDomain(
	hub *session.Hub,
	leaderboard *statistic.Leaderboard,
) CompletionDomain {
	return &completionDomain{hub: hub, leaderboard: leaderboard}
}

// AddCompletion records a quest completion: XP is computed exactly once here,
// from the streak standing before this completion, then the store recomputes
// every profile aggregate in one transition.
func (d *completionDomain) AddCompletion(
	ctx context.Context, req *model.AddCompletionRequest,
) (*model.AddCompletionResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	before := s.Store.State()

	var quest *entity.UserQuest
	for i := range before.UserQuests {
		if before.UserQuests[i].ID == req.QuestID {
			quest = &before.UserQuests[i]
			break
		}
	}
	if quest == nil {
		return nil, errorx.New(errorx.NotFound, "Not found quest %s", req.QuestID)
	}

	proofPayload, err := proof.Canonicalize(ctx, quest.ProofType, req.Proof)
	if err != nil {
		return nil, err
	}

	tuning := xcontext.Configs(ctx).Progression
	xp := progression.AwardXPWithBonus(
		quest.BaseXP, quest.ProofType, before.Profile.CurrentStreak,
		tuning.StreakBonusPerDay, tuning.StreakBonusCap,
	)

	completion := s.Store.AddCompletion(ctx, entity.Completion{
		QuestID:     quest.ID,
		Title:       quest.Title,
		Category:    quest.Category,
		Difficulty:  quest.Difficulty,
		XP:          xp,
		Proof:       proofPayload,
		StreakBonus: before.Profile.CurrentStreak > 0,
	})

	after := s.Store.State()

	newBadges := []string{}
	for _, b := range after.Profile.Badges {
		if !before.Profile.HasBadge(b) {
			newBadges = append(newBadges, b)
		}
	}

	// Best-effort; a leaderboard failure never fails the completion.
	d.leaderboard.Upsert(ctx, entity.LeaderboardRow{
		UserID:      s.UserID,
		DisplayName: after.Profile.Nickname,
		TotalXP:     after.Profile.TotalXP,
		Level:       after.Profile.Level,
		LastUpdated: time.Now(),
	})

	return &model.AddCompletionResponse{
		Completion: completion,
		LeveledUp:  after.Profile.Level > before.Profile.Level,
		NewBadges:  newBadges,
	}, nil
}
