package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/store"
	"github.com/habitquest/backend/pkg/xcontext"
)

type SessionState int

const (
	Unauthenticated SessionState = iota
	AuthPending
	Reconciling
	Synced
)

func (s SessionState) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case AuthPending:
		return "auth_pending"
	case Reconciling:
		return "reconciling"
	case Synced:
		return "synced"
	}
	return "unknown"
}

// Identity is what the auth layer knows about the signed-in user before any
// state has been fetched.
type Identity struct {
	UserID      string
	DisplayName string
	Email       string
}

// Remote is the user's cloud-side state document.
type Remote interface {
	// Fetch returns the document and whether it exists at all.
	Fetch(ctx context.Context) (Payload, bool, error)
	Push(ctx context.Context, payload Payload) error
}

const DefaultDebounceInterval = 2000 * time.Millisecond

// Protocol drives one signed-in session: reconcile local against remote at
// sign-in, then mirror every local mutation outward. Remote write failures
// are logged and retried on the next mutation, never surfaced to the caller:
// the local store stays authoritative for the running session.
type Protocol struct {
	store  *store.Store
	remote Remote

	debouncer *debouncer

	mu          stdsync.Mutex
	session     SessionState
	lastSynced  *Payload
	firstEvent  bool
	unsubscribe func()

	// background flushes carry this context, not the sign-in request's.
	ctx context.Context
}

func NewProtocol(ctx context.Context, st *store.Store, remote Remote, debounce time.Duration) *Protocol {
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}
	p := &Protocol{
		store:   st,
		remote:  remote,
		session: Unauthenticated,
		ctx:     ctx,
	}
	p.debouncer = newDebouncer(debounce, p.flush)
	return p
}

func (p *Protocol) SessionState() SessionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// Ready reports whether reconciliation has finished. Onboarding state must
// not be read before this turns true, or a returning user would be routed
// through onboarding again.
func (p *Protocol) Ready() bool {
	return p.SessionState() == Synced
}

// SignIn runs the reconciliation handshake and begins mirroring mutations.
func (p *Protocol) SignIn(ctx context.Context, identity Identity) error {
	p.mu.Lock()
	if p.session != Unauthenticated {
		p.mu.Unlock()
		return nil
	}
	p.session = AuthPending
	p.mu.Unlock()

	p.mu.Lock()
	p.session = Reconciling
	p.unsubscribe = p.store.Subscribe(p.onChange)
	p.mu.Unlock()

	if err := p.reconcile(ctx, identity); err != nil {
		p.mu.Lock()
		if p.unsubscribe != nil {
			p.unsubscribe()
			p.unsubscribe = nil
		}
		p.session = Unauthenticated
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.session = Synced
	p.mu.Unlock()
	return nil
}

func (p *Protocol) reconcile(ctx context.Context, identity Identity) error {
	remote, exists, err := p.remote.Fetch(ctx)
	if err != nil {
		return err
	}

	local := p.store.State()

	switch {
	case exists && local.OnboardingComplete && !remote.OnboardingComplete:
		// Remote was written before the onboarding flag existed in the
		// document schema. Local knows better here: rewrite the document
		// instead of loading it, or the user would be onboarded twice.
		return p.push(ctx, PayloadFromState(local))

	case exists:
		// LoadFromRemote fires a callback that only reflects what was just
		// fetched; writing it back out would be a pointless echo.
		p.suppressNext()
		p.store.LoadFromRemote(ctx, remote.State())
		p.setLastSynced(remote)
		return nil

	case local.Initialized || local.OnboardingComplete:
		// Orphaned local state from a session that never managed to sync.
		return p.push(ctx, PayloadFromState(local))

	default:
		// Brand new user. Seed from the identity; the first real mutation
		// creates the document, there is nothing worth pushing yet.
		p.suppressNext()
		p.store.InitializeFromAuth(ctx, identity.DisplayName, identity.Email)
		return nil
	}
}

func (p *Protocol) suppressNext() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.firstEvent = true
}

// onChange classifies each store transition and routes it to the immediate
// or the debounced flush path.
func (p *Protocol) onChange(previous, next entity.AppState) {
	p.mu.Lock()
	if p.firstEvent {
		p.firstEvent = false
		p.mu.Unlock()
		return
	}
	if p.session != Synced {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	if critical(previous, next) {
		p.debouncer.NoteCritical()
		return
	}
	p.debouncer.NoteNonCritical()
}

// critical marks the transitions that must reach the remote without delay:
// losing one would cost the user visible progress or re-run onboarding.
func critical(previous, next entity.AppState) bool {
	if previous.OnboardingComplete != next.OnboardingComplete {
		return true
	}
	if previous.Profile.Level != next.Profile.Level {
		return true
	}
	if previous.Profile.CompletedQuests != next.Profile.CompletedQuests {
		return true
	}
	return false
}

func (p *Protocol) flush() {
	payload := PayloadFromState(p.store.State())

	p.mu.Lock()
	if p.lastSynced != nil && payload.Equal(*p.lastSynced) {
		p.mu.Unlock()
		return
	}
	ctx := p.ctx
	p.mu.Unlock()

	if err := p.push(ctx, payload); err != nil {
		// Leave lastSynced untouched; the next mutation retries.
		xcontext.Logger(ctx).Errorf("Cannot push state to remote: %v", err)
	}
}

func (p *Protocol) push(ctx context.Context, payload Payload) error {
	if err := p.remote.Push(ctx, payload); err != nil {
		return err
	}
	p.setLastSynced(payload)
	return nil
}

func (p *Protocol) setLastSynced(payload Payload) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSynced = &payload
}

// Close ends the session. A still-dirty state gets one best-effort push;
// failure is logged and accepted, sign-in reconciliation covers the gap.
func (p *Protocol) Close(ctx context.Context) {
	p.mu.Lock()
	if p.session == Unauthenticated {
		p.mu.Unlock()
		return
	}
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.session = Unauthenticated
	last := p.lastSynced
	p.mu.Unlock()

	p.debouncer.Cancel()
	if unsubscribe != nil {
		unsubscribe()
	}

	payload := PayloadFromState(p.store.State())
	if last == nil || !payload.Equal(*last) {
		if err := p.remote.Push(ctx, payload); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot flush state on close: %v", err)
		}
	}
}
