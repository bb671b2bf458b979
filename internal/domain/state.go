package domain

import (
	"context"
	"time"

	"github.com/habitquest/backend/internal/catalog"
	"github.com/habitquest/backend/internal/domain/recommend"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/model"
	"github.com/habitquest/backend/internal/session"
	"github.com/habitquest/backend/pkg/enum"
	"github.com/habitquest/backend/pkg/errorx"
	"github.com/habitquest/backend/pkg/xcontext"
	"github.com/google/uuid"
)

type StateDomain interface {
	GetState(context.Context, *model.GetStateRequest) (*model.GetStateResponse, error)
	GetStats(context.Context, *model.GetStatsRequest) (*model.GetStatsResponse, error)
	GetTodayQuests(context.Context, *model.GetTodayQuestsRequest) (*model.GetTodayQuestsResponse, error)
	AddQuest(context.Context, *model.AddQuestRequest) (*model.AddQuestResponse, error)
	RemoveQuest(context.Context, *model.RemoveQuestRequest) (*model.RemoveQuestResponse, error)
	ToggleQuest(context.Context, *model.ToggleQuestRequest) (*model.ToggleQuestResponse, error)
	ActivatePack(context.Context, *model.ActivatePackRequest) (*model.ActivatePackResponse, error)
	DeactivatePack(context.Context, *model.DeactivatePackRequest) (*model.DeactivatePackResponse, error)
	UpdateSettings(context.Context, *model.UpdateSettingsRequest) (*model.UpdateSettingsResponse, error)
	SetShowTutorial(context.Context, *model.SetShowTutorialRequest) (*model.SetShowTutorialResponse, error)
	CompleteOnboarding(context.Context, *model.CompleteOnboardingRequest) (*model.CompleteOnboardingResponse, error)
}

type stateDomain struct {
	hub     *session.Hub
	catalog *catalog.Catalog
	engine  *recommend.Engine
}

func NewStateDomain(
	hub *session.Hub,
	cat *catalog.Catalog,
	engine *recommend.Engine,
) StateDomain {
	return &stateDomain{hub: hub, catalog: cat, engine: engine}
}

// requireSession resolves the caller's live, reconciled session. State must
// not be served while reconciliation is still running, or a returning user
// would be routed through onboarding again.
func requireSession(ctx context.Context, hub *session.Hub) (*session.Session, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not signed in")
	}

	s, ok := hub.Get(userID)
	if !ok {
		return nil, errorx.New(errorx.Unauthenticated, "No active session, please sign in")
	}

	if !s.Protocol.Ready() {
		return nil, errorx.New(errorx.SyncNotReady, "Session is still syncing, try again")
	}

	return s, nil
}

func (d *stateDomain) GetState(
	ctx context.Context, req *model.GetStateRequest,
) (*model.GetStateResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	return &model.GetStateResponse{State: s.Store.State()}, nil
}

func (d *stateDomain) GetStats(
	ctx context.Context, req *model.GetStatsRequest,
) (*model.GetStatsResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	return &model.GetStatsResponse{Stats: s.Store.Stats()}, nil
}

func (d *stateDomain) GetTodayQuests(
	ctx context.Context, req *model.GetTodayQuestsRequest,
) (*model.GetTodayQuestsResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	return &model.GetTodayQuestsResponse{Quests: s.Store.TodaysQuests()}, nil
}

func (d *stateDomain) AddQuest(
	ctx context.Context, req *model.AddQuestRequest,
) (*model.AddQuestResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Please provide a title")
	}

	difficulty, err := enum.ToEnum[entity.Difficulty](req.Difficulty)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid difficulty %s", req.Difficulty)
	}

	proofType, err := enum.ToEnum[entity.ProofType](req.ProofType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid proof type %s", req.ProofType)
	}

	recurrence, err := enum.ToEnum[entity.RecurrenceType](req.Recurrence)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid recurrence %s", req.Recurrence)
	}

	if req.BaseXP <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Base XP must be positive")
	}

	schedule := entity.Schedule{Recurrence: recurrence}
	for _, day := range req.DaysOfWeek {
		if day < 0 || day > 6 {
			return nil, errorx.New(errorx.BadRequest, "Invalid day of week %d", day)
		}
		schedule.DaysOfWeek = append(schedule.DaysOfWeek, time.Weekday(day))
	}

	quest := s.Store.AddUserQuest(ctx, entity.UserQuest{
		ID:              uuid.NewString(),
		TemplateID:      req.TemplateID,
		Title:           req.Title,
		Category:        req.Category,
		Difficulty:      difficulty,
		DurationMinutes: req.DurationMinutes,
		ProofType:       proofType,
		BaseXP:          req.BaseXP,
		Schedule:        schedule,
		Active:          true,
	})

	return &model.AddQuestResponse{Quest: quest}, nil
}

func (d *stateDomain) RemoveQuest(
	ctx context.Context, req *model.RemoveQuestRequest,
) (*model.RemoveQuestResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	s.Store.RemoveUserQuest(ctx, req.ID)
	return &model.RemoveQuestResponse{}, nil
}

func (d *stateDomain) ToggleQuest(
	ctx context.Context, req *model.ToggleQuestRequest,
) (*model.ToggleQuestResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	s.Store.ToggleQuestActive(ctx, req.ID)
	return &model.ToggleQuestResponse{}, nil
}

// ActivatePack marks the pack active and materializes its templates into the
// queue, skipping templates the user already has.
func (d *stateDomain) ActivatePack(
	ctx context.Context, req *model.ActivatePackRequest,
) (*model.ActivatePackResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	pack, ok := d.catalog.Pack(req.PackID)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found pack %s", req.PackID)
	}

	existing := map[string]bool{}
	for _, q := range s.Store.State().UserQuests {
		if q.TemplateID != "" {
			existing[q.TemplateID] = true
		}
	}

	s.Store.ActivatePack(ctx, pack.ID)

	added := []entity.UserQuest{}
	for _, templateID := range pack.TemplateIDs {
		if existing[templateID] {
			continue
		}

		template, ok := d.catalog.Template(templateID)
		if !ok {
			continue
		}

		added = append(added, s.Store.AddUserQuest(ctx, d.engine.Materialize(template)))
	}

	return &model.ActivatePackResponse{Quests: added}, nil
}

func (d *stateDomain) DeactivatePack(
	ctx context.Context, req *model.DeactivatePackRequest,
) (*model.DeactivatePackResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	s.Store.DeactivatePack(ctx, req.PackID)
	return &model.DeactivatePackResponse{}, nil
}

func (d *stateDomain) UpdateSettings(
	ctx context.Context, req *model.UpdateSettingsRequest,
) (*model.UpdateSettingsResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	settings := req.Settings
	if !enum.IsValid[entity.Theme](string(settings.Theme)) {
		settings.Theme = entity.DefaultSettings().Theme
	}
	if !enum.IsValid[entity.Units](string(settings.Units)) {
		settings.Units = entity.DefaultSettings().Units
	}

	s.Store.UpdateSettings(ctx, settings)
	return &model.UpdateSettingsResponse{}, nil
}

func (d *stateDomain) SetShowTutorial(
	ctx context.Context, req *model.SetShowTutorialRequest,
) (*model.SetShowTutorialResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	s.Store.SetShowTutorial(ctx, req.Show)
	return &model.SetShowTutorialResponse{}, nil
}

// CompleteOnboarding runs the recommender over the catalog and records the
// answers plus the recommended queue in one transition. An empty
// recommendation falls back to the starter pack so no queue ever starts
// empty.
func (d *stateDomain) CompleteOnboarding(
	ctx context.Context, req *model.CompleteOnboardingRequest,
) (*model.CompleteOnboardingResponse, error) {
	s, err := requireSession(ctx, d.hub)
	if err != nil {
		return nil, err
	}

	if s.Store.State().OnboardingComplete {
		return nil, errorx.New(errorx.AlreadyExists, "Onboarding is already complete")
	}

	quests := d.engine.Recommend(d.catalog.Templates(), req.Data)
	if len(quests) == 0 {
		for _, template := range d.catalog.Starters() {
			quests = append(quests, d.engine.Materialize(template))
		}
	}

	s.Store.CompleteOnboarding(ctx, req.Data, quests)
	return &model.CompleteOnboardingResponse{Quests: quests}, nil
}
