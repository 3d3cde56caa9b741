package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/herfa/gate/internal/gate/credstore"
	"github.com/herfa/gate/internal/gate/domain"
)

// State is the resolved session state.
type State int

const (
	// StateLoading holds from construction until the first resolution
	// completes. It is entered exactly once and never again.
	StateLoading State = iota
	StateUnauthenticated
	StatePendingSecondFactor
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StatePendingSecondFactor:
		return "pending_second_factor"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionResolver derives the current session state from the credential
// store and keeps it current by re-resolving on every change notification.
type SessionResolver struct {
	Credentials *credstore.Store
	Bus         evbus.Bus

	mu      sync.RWMutex
	loading bool
	current *domain.SessionRecord

	initOnce sync.Once
}

func NewSessionResolver(creds *credstore.Store, bus evbus.Bus) *SessionResolver {
	return &SessionResolver{
		Credentials: creds,
		Bus:         bus,
		loading:     true,
	}
}

// Init performs the first resolution and subscribes to change
// notifications. Safe to call more than once; only the first call does
// anything.
func (r *SessionResolver) Init(ctx context.Context) error {
	var initErr error
	r.initOnce.Do(func() {
		if err := r.resolve(ctx); err != nil {
			initErr = err
			return
		}

		r.mu.Lock()
		r.loading = false
		r.mu.Unlock()

		if r.Bus != nil {
			initErr = r.Bus.Subscribe(credstore.TopicChanged, r.onChanged)
		}
	})
	return initErr
}

// onChanged re-resolves after a Save or Clear elsewhere in the process.
func (r *SessionResolver) onChanged() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = r.resolve(ctx)
}

// resolve loads the stored record and caches it. An expired record is
// discarded from storage so the dead state cannot resurface.
func (r *SessionResolver) resolve(ctx context.Context) error {
	rec, ok, err := r.Credentials.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	if ok && rec.Expired(time.Now()) {
		ok = false
		if err := r.Credentials.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear expired credentials: %w", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.current = &rec
	} else {
		r.current = nil
	}
	return nil
}

// State returns the current resolved state.
func (r *SessionResolver) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch {
	case r.loading:
		return StateLoading
	case r.current == nil:
		return StateUnauthenticated
	case r.current.PendingSecondFactor:
		return StatePendingSecondFactor
	default:
		return StateAuthenticated
	}
}

// CurrentUser returns the authenticated user snapshot. ok is false while
// loading, unauthenticated, or pending the second factor.
func (r *SessionResolver) CurrentUser() (domain.UserRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.loading || r.current == nil || r.current.PendingSecondFactor {
		return domain.UserRecord{}, false
	}
	return r.current.User, true
}

// Record returns the full resolved record regardless of state.
func (r *SessionResolver) Record() (domain.SessionRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return domain.SessionRecord{}, false
	}
	return *r.current, true
}

func (r *SessionResolver) IsLoading() bool {
	return r.State() == StateLoading
}

// IsPendingSecondFactor reports whether sign-in stopped at the code prompt.
func (r *SessionResolver) IsPendingSecondFactor() bool {
	return r.State() == StatePendingSecondFactor
}
