package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/habitquest/backend/internal/domain/badge"
	"github.com/habitquest/backend/internal/domain/progression"
	"github.com/habitquest/backend/internal/domain/streak"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/pkg/idutil"
	"github.com/habitquest/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

// Listener observes every state transition with the full before and after
// snapshots. Listeners run synchronously inside the mutating call.
type Listener func(previous, next entity.AppState)

// Store is the single in-memory authority over the session's state graph.
// Every mutation is atomic: readers never observe XP updated without the
// streak, and each mutation is mirrored to the persister before listeners
// fire. Mutators are serialized by the internal lock (single logical writer).
type Store struct {
	mu        sync.Mutex
	state     entity.AppState
	listeners map[int]Listener
	nextSub   int

	persister Persister
	badges    *badge.Manager

	clock    func() time.Time
	location *time.Location
	newID    func() string
	grace    time.Duration
}

type Option func(*Store)

func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.location = loc }
}

func WithIDSource(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithGraceWindow overrides the streak grace window. Non-positive values keep
// the default.
func WithGraceWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.grace = d
		}
	}
}

func New(persister Persister, badges *badge.Manager, opts ...Option) *Store {
	s := &Store{
		listeners: map[int]Listener{},
		persister: persister,
		badges:    badges,
		clock:     time.Now,
		location:  time.Local,
		newID:     uuid.NewString,
		grace:     streak.GraceWindow,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state = s.defaultState()
	return s
}

func (s *Store) defaultState() entity.AppState {
	return entity.AppState{
		Profile:      entity.NewProfile(s.clock()),
		Settings:     entity.DefaultSettings(),
		UserQuests:   []entity.UserQuest{},
		Completions:  []entity.Completion{},
		ActivePacks:  []string{},
		ShowTutorial: true,
	}
}

// Hydrate loads the persisted blob into memory. A missing or unreadable blob
// is treated as a first run: availability over surfacing an unrecoverable
// error to a casual user.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok, err := s.persister.Load(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot load persisted state, falling back to defaults: %v", err)
		return
	}

	if ok {
		s.state = state
	}
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// State returns an independent snapshot of the current state.
func (s *Store) State() entity.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneState(s.state)
}

// mutate applies fn atomically, persists the result, and notifies listeners
// with before/after snapshots.
func (s *Store) mutate(ctx context.Context, fn func(state *entity.AppState)) {
	s.mu.Lock()

	previous := cloneState(s.state)
	fn(&s.state)
	next := cloneState(s.state)

	if err := s.persister.Save(ctx, next); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist state: %v", err)
	}

	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(previous, next)
	}
}

// Initialize marks the store initialized and seeds the starter quest set on
// the first-ever run. Calling it again is a no-op.
func (s *Store) Initialize(ctx context.Context, starters []entity.UserQuest) {
	s.mu.Lock()
	initialized := s.state.Initialized
	s.mu.Unlock()
	if initialized {
		return
	}

	s.mutate(ctx, func(state *entity.AppState) {
		if state.Initialized {
			return
		}

		state.UserQuests = append(state.UserQuests, starters...)
		state.Initialized = true
	})
}

// InitializeFromAuth seeds the nickname from the identity provider, but only
// while the nickname is still the untouched placeholder. A user-customized
// nickname is never overwritten.
func (s *Store) InitializeFromAuth(ctx context.Context, displayName, email string) {
	s.mutate(ctx, func(state *entity.AppState) {
		if state.Profile.Nickname != entity.DefaultNickname {
			return
		}

		switch {
		case displayName != "":
			state.Profile.Nickname = displayName
		case email != "":
			if at := strings.Index(email, "@"); at > 0 {
				state.Profile.Nickname = email[:at]
			}
		}
	})
}

// LoadFromRemote replaces the whole state with a remote snapshot. Used only
// during cloud hydration; it never merges field by field.
func (s *Store) LoadFromRemote(ctx context.Context, remote entity.AppState) {
	s.mutate(ctx, func(state *entity.AppState) {
		*state = cloneState(remote)
	})
}

// AddCompletion appends to the history and recomputes every profile
// aggregate in the same transition: total XP, level, streaks, completion
// count, and newly earned badges.
func (s *Store) AddCompletion(ctx context.Context, completion entity.Completion) entity.Completion {
	if completion.ID == "" {
		completion.ID = idutil.NewCompletionID(ctx)
	}
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = s.clock()
	}

	s.mutate(ctx, func(state *entity.AppState) {
		state.Completions = append(state.Completions, completion)

		state.Profile.TotalXP += completion.XP
		state.Profile.Level = progression.LevelForTotalXP(state.Profile.TotalXP)
		state.Profile.CompletedQuests = len(state.Completions)

		result := streak.ComputeWithGrace(state.Completions, s.clock(), s.location, s.grace)
		state.Profile.CurrentStreak = result.CurrentStreak
		if result.LongestStreak > state.Profile.LongestStreak {
			state.Profile.LongestStreak = result.LongestStreak
		}

		earned := s.badges.Earned(ctx, badge.State{
			TotalXP:       state.Profile.TotalXP,
			Completions:   state.Completions,
			CurrentStreak: state.Profile.CurrentStreak,
			LongestStreak: state.Profile.LongestStreak,
		})
		for _, name := range earned {
			if !state.Profile.HasBadge(name) {
				state.Profile.Badges = append(state.Profile.Badges, name)
			}
		}
	})

	return completion
}

// AddUserQuest appends a quest to the queue. No aggregate recomputation.
func (s *Store) AddUserQuest(ctx context.Context, quest entity.UserQuest) entity.UserQuest {
	if quest.ID == "" {
		quest.ID = s.newID()
	}
	if quest.CreatedAt.IsZero() {
		quest.CreatedAt = s.clock()
	}

	s.mutate(ctx, func(state *entity.AppState) {
		state.UserQuests = append(state.UserQuests, quest)
	})

	return quest
}

func (s *Store) RemoveUserQuest(ctx context.Context, id string) {
	s.mutate(ctx, func(state *entity.AppState) {
		kept := state.UserQuests[:0]
		for _, q := range state.UserQuests {
			if q.ID != id {
				kept = append(kept, q)
			}
		}
		state.UserQuests = kept
	})
}

func (s *Store) ToggleQuestActive(ctx context.Context, id string) {
	s.mutate(ctx, func(state *entity.AppState) {
		for i := range state.UserQuests {
			if state.UserQuests[i].ID == id {
				state.UserQuests[i].Active = !state.UserQuests[i].Active
			}
		}
	})
}

// ActivatePack records the pack as active. Enqueueing the pack's quests is
// the caller's responsibility, kept outside this component.
func (s *Store) ActivatePack(ctx context.Context, packID string) {
	s.mutate(ctx, func(state *entity.AppState) {
		if !slices.Contains(state.ActivePacks, packID) {
			state.ActivePacks = append(state.ActivePacks, packID)
		}
	})
}

func (s *Store) DeactivatePack(ctx context.Context, packID string) {
	s.mutate(ctx, func(state *entity.AppState) {
		kept := state.ActivePacks[:0]
		for _, id := range state.ActivePacks {
			if id != packID {
				kept = append(kept, id)
			}
		}
		state.ActivePacks = kept
	})
}

func (s *Store) UpdateSettings(ctx context.Context, settings entity.Settings) {
	s.mutate(ctx, func(state *entity.AppState) {
		state.Settings = settings
	})
}

func (s *Store) SetShowTutorial(ctx context.Context, show bool) {
	s.mutate(ctx, func(state *entity.AppState) {
		state.ShowTutorial = show
	})
}

// CompleteOnboarding records the wizard's answers and the recommended starter
// queue in one transition, then flips the onboarding flag.
func (s *Store) CompleteOnboarding(
	ctx context.Context, data entity.OnboardingData, quests []entity.UserQuest,
) {
	s.mutate(ctx, func(state *entity.AppState) {
		state.OnboardingData = &data
		state.UserQuests = append(state.UserQuests, quests...)
		state.OnboardingComplete = true
	})
}

// MergeSubscription merges payment-collaborator facts into the profile. This
// is the only partial profile write in the system: gamification fields are
// untouched so a concurrent completion cannot be clobbered.
func (s *Store) MergeSubscription(ctx context.Context, sub entity.Subscription) {
	s.mutate(ctx, func(state *entity.AppState) {
		state.Profile.Subscription = &sub
	})
}

func cloneState(state entity.AppState) entity.AppState {
	clone := state
	clone.UserQuests = slices.Clone(state.UserQuests)
	clone.Completions = slices.Clone(state.Completions)
	clone.ActivePacks = slices.Clone(state.ActivePacks)
	clone.Profile.Badges = slices.Clone(state.Profile.Badges)
	if state.Profile.Subscription != nil {
		sub := *state.Profile.Subscription
		clone.Profile.Subscription = &sub
	}
	if state.OnboardingData != nil {
		data := *state.OnboardingData
		data.Categories = slices.Clone(state.OnboardingData.Categories)
		data.Preferences = slices.Clone(state.OnboardingData.Preferences)
		clone.OnboardingData = &data
	}

	return clone
}
