package session

import (
	"context"
	"time"

	"github.com/habitquest/backend/internal/domain/badge"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/repository"
	"github.com/habitquest/backend/internal/store"
	"github.com/habitquest/backend/internal/sync"
	"github.com/habitquest/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

// Session is one signed-in user's live engine: the observable store plus the
// protocol mirroring it to the remote document.
type Session struct {
	UserID   string
	Store    *store.Store
	Protocol *sync.Protocol
}

// Hub holds the live sessions, one per user id. Creation is idempotent: a
// second sign-in from another device reuses the running session, since the
// remote document is per user, not per device.
type Hub struct {
	sessions      *xsync.MapOf[string, *Session]
	userStateRepo repository.UserStateRepository
	badges        *badge.Manager
	debounce      time.Duration
	grace         time.Duration

	// baseCtx outlives any request; background flushes use it.
	baseCtx context.Context
}

func NewHub(
	ctx context.Context,
	userStateRepo repository.UserStateRepository,
	badges *badge.Manager,
) *Hub {
	configs := xcontext.Configs(ctx)
	return &Hub{
		sessions:      xsync.NewMapOf[*Session](),
		userStateRepo: userStateRepo,
		badges:        badges,
		debounce:      configs.Sync.DebounceInterval,
		grace:         configs.Progression.GraceWindow,
		baseCtx:       ctx,
	}
}

// SignIn returns the user's session, creating and reconciling it on first
// sight.
func (h *Hub) SignIn(ctx context.Context, identity sync.Identity) (*Session, error) {
	s, loaded := h.sessions.LoadOrCompute(identity.UserID, func() *Session {
		st := store.New(store.NewMemPersister(), h.badges, store.WithGraceWindow(h.grace))
		remote := sync.NewDocRemote(identity.UserID, h.userStateRepo)

		return &Session{
			UserID:   identity.UserID,
			Store:    st,
			Protocol: sync.NewProtocol(h.baseCtx, st, remote, h.debounce),
		}
	})

	if loaded {
		return s, nil
	}

	if err := s.Protocol.SignIn(ctx, identity); err != nil {
		h.sessions.Delete(identity.UserID)
		return nil, err
	}

	return s, nil
}

// Get returns the live session of userID, if any.
func (h *Hub) Get(userID string) (*Session, bool) {
	return h.sessions.Load(userID)
}

// SignOut closes and removes the session. Unknown users are a no-op.
func (h *Hub) SignOut(ctx context.Context, userID string) {
	if s, ok := h.sessions.LoadAndDelete(userID); ok {
		s.Protocol.Close(ctx)
	}
}

// MergeSubscription pushes a lifecycle fact into a live session. Reports
// whether such a session existed.
func (h *Hub) MergeSubscription(
	ctx context.Context, userID string, sub entity.Subscription,
) bool {
	s, ok := h.sessions.Load(userID)
	if !ok {
		return false
	}

	s.Store.MergeSubscription(ctx, sub)
	return true
}

// Close flushes and drops every session. Called on shutdown.
func (h *Hub) Close(ctx context.Context) {
	h.sessions.Range(func(userID string, s *Session) bool {
		s.Protocol.Close(ctx)
		h.sessions.Delete(userID)
		return true
	})
}
