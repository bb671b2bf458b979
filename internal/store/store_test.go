package store

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/habitquest/backend/internal/domain/badge"
	"github.com/habitquest/backend/internal/domain/progression"
	"github.com/habitquest/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time          { return c.now }
func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) (*Store, *fixedClock) {
	t.Helper()

	clock := &fixedClock{now: time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)}
	counter := 0
	s := New(
		NewMemPersister(),
		badge.DefaultManager([]string{"fitness", "mindfulness"}),
		WithClock(clock.Now),
		WithLocation(time.UTC),
		WithIDSource(func() string { counter++; return fmt.Sprintf("id-%d", counter) }),
	)

	return s, clock
}

func requireInvariants(t *testing.T, s *Store) {
	t.Helper()
	state := s.State()

	require.GreaterOrEqual(t, state.Profile.LongestStreak, state.Profile.CurrentStreak)
	require.Equal(t, len(state.Completions), state.Profile.CompletedQuests)
	require.Equal(t, progression.LevelForTotalXP(state.Profile.TotalXP), state.Profile.Level)
}

func TestInitializeIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	starters := []entity.UserQuest{{ID: "q1", Title: "Walk", Active: true}}
	s.Initialize(ctx, starters)
	require.Len(t, s.State().UserQuests, 1)
	require.True(t, s.State().Initialized)

	s.Initialize(ctx, starters)
	require.Len(t, s.State().UserQuests, 1)
}

func TestInitializeFromAuthNeverOverwritesCustomNickname(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.InitializeFromAuth(ctx, "Alex", "alex@example.com")
	require.Equal(t, "Alex", s.State().Profile.Nickname)

	// A second identity refresh must not clobber the established name.
	s.InitializeFromAuth(ctx, "Somebody Else", "")
	require.Equal(t, "Alex", s.State().Profile.Nickname)
}

func TestInitializeFromAuthFallsBackToEmailPrefix(t *testing.T) {
	s, _ := newTestStore(t)
	s.InitializeFromAuth(context.Background(), "", "casey@example.com")
	require.Equal(t, "casey", s.State().Profile.Nickname)
}

func TestAddCompletionRecomputesAggregatesAtomically(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var observed []entity.AppState
	s.Subscribe(func(previous, next entity.AppState) {
		observed = append(observed, next)
	})

	s.AddCompletion(ctx, entity.Completion{
		QuestID:    "q1",
		Title:      "Morning run",
		Category:   "fitness",
		Difficulty: entity.Easy,
		XP:         120,
	})

	state := s.State()
	require.Equal(t, 120, state.Profile.TotalXP)
	require.Equal(t, 1, state.Profile.CompletedQuests)
	require.Equal(t, 1, state.Profile.CurrentStreak)
	require.Contains(t, state.Profile.Badges, "first_quest")
	require.Contains(t, state.Profile.Badges, "fitness_novice")
	requireInvariants(t, s)

	// The listener must see XP and streak updated in the same transition.
	require.Len(t, observed, 1)
	require.Equal(t, 120, observed[0].Profile.TotalXP)
	require.Equal(t, 1, observed[0].Profile.CurrentStreak)
}

func TestAddCompletionAssignsIDAndTimestamp(t *testing.T) {
	s, clock := newTestStore(t)

	completion := s.AddCompletion(context.Background(), entity.Completion{QuestID: "q1", XP: 10})
	require.NotEmpty(t, completion.ID)
	require.Equal(t, clock.Now(), completion.CompletedAt)
}

func TestGraceWindowOptionExtendsStreakLifetime(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)}

	build := func(opts ...Option) *Store {
		opts = append(opts, WithClock(clock.Now), WithLocation(time.UTC))
		return New(NewMemPersister(), badge.DefaultManager(nil), opts...)
	}

	// 48 hours of silence kills the streak under the default window but not
	// under an operator-widened one.
	completedAt := clock.Now().Add(-48 * time.Hour)

	s := build()
	s.AddCompletion(ctx, entity.Completion{QuestID: "q1", XP: 10, CompletedAt: completedAt})
	require.Equal(t, 0, s.State().Profile.CurrentStreak)

	s = build(WithGraceWindow(72 * time.Hour))
	s.AddCompletion(ctx, entity.Completion{QuestID: "q1", XP: 10, CompletedAt: completedAt})
	require.Equal(t, 1, s.State().Profile.CurrentStreak)
}

func TestLongestStreakSurvivesBrokenStreak(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.AddCompletion(ctx, entity.Completion{QuestID: "q1", XP: 10})
		clock.Advance(24 * time.Hour)
	}
	require.Equal(t, 3, s.State().Profile.LongestStreak)

	// Five silent days break the current streak but not the longest.
	clock.Advance(5 * 24 * time.Hour)
	s.AddCompletion(ctx, entity.Completion{QuestID: "q1", XP: 10})

	state := s.State()
	require.Equal(t, 1, state.Profile.CurrentStreak)
	require.Equal(t, 3, state.Profile.LongestStreak)
	requireInvariants(t, s)
}

func TestInvariantsHoldOverRandomMutationSequences(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 200; i++ {
		switch rng.Intn(5) {
		case 0:
			s.AddCompletion(ctx, entity.Completion{
				QuestID:  fmt.Sprintf("q%d", rng.Intn(5)),
				Category: "fitness",
				XP:       rng.Intn(500),
			})
		case 1:
			s.AddUserQuest(ctx, entity.UserQuest{Title: "Extra", Active: true})
		case 2:
			s.ToggleQuestActive(ctx, fmt.Sprintf("id-%d", rng.Intn(10)))
		case 3:
			s.ActivatePack(ctx, fmt.Sprintf("pack-%d", rng.Intn(3)))
		case 4:
			clock.Advance(time.Duration(rng.Intn(48)) * time.Hour)
		}

		requireInvariants(t, s)
	}
}

func TestRemoveAndToggleUserQuest(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	q := s.AddUserQuest(ctx, entity.UserQuest{Title: "Meditate", Active: true})
	require.Len(t, s.State().UserQuests, 1)

	s.ToggleQuestActive(ctx, q.ID)
	require.False(t, s.State().UserQuests[0].Active)

	s.RemoveUserQuest(ctx, q.ID)
	require.Empty(t, s.State().UserQuests)
}

func TestPackActivationIsASetOperation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.ActivatePack(ctx, "pack-1")
	s.ActivatePack(ctx, "pack-1")
	require.Equal(t, []string{"pack-1"}, s.State().ActivePacks)

	s.DeactivatePack(ctx, "pack-1")
	require.Empty(t, s.State().ActivePacks)
}

func TestLoadFromRemoteReplacesWholesale(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddUserQuest(ctx, entity.UserQuest{Title: "Local quest"})

	remote := entity.AppState{
		Profile:            entity.Profile{Nickname: "Remote", TotalXP: 500, Level: 2, Badges: []string{}},
		UserQuests:         []entity.UserQuest{},
		Completions:        []entity.Completion{},
		ActivePacks:        []string{"pack-9"},
		OnboardingComplete: true,
		Initialized:        true,
	}
	s.LoadFromRemote(ctx, remote)

	state := s.State()
	require.Equal(t, "Remote", state.Profile.Nickname)
	require.Empty(t, state.UserQuests, "local quest must not survive a wholesale replace")
	require.Equal(t, []string{"pack-9"}, state.ActivePacks)
}

func TestHydrateFallsBackOnCorruptBlob(t *testing.T) {
	persister := NewMemPersister()
	persister.blob = []byte("{not json")

	s := New(persister, badge.DefaultManager(nil), WithLocation(time.UTC))
	s.Hydrate(context.Background())

	require.Equal(t, entity.DefaultNickname, s.State().Profile.Nickname)
	require.False(t, s.State().Initialized)
}

func TestHydrateRestoresPersistedState(t *testing.T) {
	persister := NewMemPersister()
	ctx := context.Background()

	first := New(persister, badge.DefaultManager(nil), WithLocation(time.UTC))
	first.AddCompletion(ctx, entity.Completion{QuestID: "q1", XP: 42})

	second := New(persister, badge.DefaultManager(nil), WithLocation(time.UTC))
	second.Hydrate(ctx)
	require.Equal(t, 42, second.State().Profile.TotalXP)
	require.Len(t, second.State().Completions, 1)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddUserQuest(ctx, entity.UserQuest{Title: "Original"})
	snapshot := s.State()
	snapshot.UserQuests[0].Title = "Tampered"

	require.Equal(t, "Original", s.State().UserQuests[0].Title)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	calls := 0
	unsubscribe := s.Subscribe(func(previous, next entity.AppState) { calls++ })

	s.ActivatePack(ctx, "pack-1")
	unsubscribe()
	s.ActivatePack(ctx, "pack-2")

	require.Equal(t, 1, calls)
}

func TestMergeSubscriptionTouchesOnlySubscription(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddCompletion(ctx, entity.Completion{QuestID: "q1", XP: 100})
	before := s.State()

	end := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	s.MergeSubscription(ctx, entity.Subscription{
		Status:           entity.SubscriptionActive,
		CurrentPeriodEnd: &end,
	})

	state := s.State()
	require.Equal(t, before.Profile.TotalXP, state.Profile.TotalXP)
	require.Equal(t, before.Profile.CurrentStreak, state.Profile.CurrentStreak)
	require.True(t, state.Profile.IsPremium())
}
