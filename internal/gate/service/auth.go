package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/herfa/gate/internal/gate/credstore"
	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/store"
	"github.com/herfa/gate/internal/gate/tokens"
	"github.com/herfa/gate/pkg/cryptox"
	"github.com/herfa/gate/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

const (
	// DefaultSessionTTL is the lifetime of a fully authenticated session.
	DefaultSessionTTL = 24 * time.Hour

	// DefaultPendingTTL is the window within which a second-factor code
	// must be submitted before the pending session dies.
	DefaultPendingTTL = 5 * time.Minute
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrAccountDisabled       = errors.New("account is disabled")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidSecondFactor   = errors.New("invalid second factor code")
	ErrNoPendingSecondFactor = errors.New("no second factor challenge pending")
	ErrSecondFactorExpired   = errors.New("second factor challenge expired")

	// ErrOperationInFlight rejects a sign-in, verification or sign-out
	// submitted while a previous one is still running.
	ErrOperationInFlight = errors.New("authentication operation already in flight")
)

// AuthService drives the authentication flow: sign-in, the optional
// second-factor step, and sign-out. It owns the single-submission guard.
type AuthService struct {
	Store       store.Store
	Credentials *credstore.Store
	Tokens      *tokens.Manager

	SessionTTL time.Duration
	PendingTTL time.Duration

	busy atomic.Bool
}

// SignIn validates the identifier and credential against the directory and
// establishes a session. When the account requires a second factor the
// returned record is pending and short-lived; otherwise it is fully
// authenticated. persistent selects the durable area ("remember me").
func (s *AuthService) SignIn(ctx context.Context, email, password string, persistent bool) (domain.SessionRecord, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return domain.SessionRecord{}, ErrOperationInFlight
	}
	defer s.busy.Store(false)

	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SessionRecord{}, ErrUserNotFound
		}
		return domain.SessionRecord{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		l.Warn("sign-in attempt on disabled account", slog.String("user_id", user.ID))
		return domain.SessionRecord{}, ErrAccountDisabled
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.SessionRecord{}, ErrInvalidCredentials
		}
		return domain.SessionRecord{}, fmt.Errorf("failed to verify password: %w", err)
	}

	now := time.Now().UTC()

	if requiresSecondFactor(user) {
		// The pending record carries no bearer tokens. Capabilities are
		// only granted once the second factor is verified.
		rec := domain.SessionRecord{
			User:                user.Snapshot(),
			ExpiresAt:           now.Add(s.pendingTTL()),
			PendingSecondFactor: true,
		}
		if err := s.Credentials.Save(ctx, rec, persistent); err != nil {
			return domain.SessionRecord{}, fmt.Errorf("failed to persist pending session: %w", err)
		}

		l.Info("second factor required", slog.String("user_id", user.ID))
		return rec, nil
	}

	rec, err := s.mintSession(user, now)
	if err != nil {
		return domain.SessionRecord{}, err
	}
	if err := s.Credentials.Save(ctx, rec, persistent); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("failed to persist session: %w", err)
	}

	l.Info("user signed in",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.Bool("persistent", persistent),
	)
	return rec, nil
}

// VerifySecondFactor upgrades a pending session to an authenticated one if
// the TOTP code checks out. A wrong code leaves the pending session exactly
// as it was so the user can retry within the window.
func (s *AuthService) VerifySecondFactor(ctx context.Context, code string) (domain.SessionRecord, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return domain.SessionRecord{}, ErrOperationInFlight
	}
	defer s.busy.Store(false)

	l := slogx.FromContext(ctx)

	rec, ok, err := s.Credentials.Load(ctx)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok || !rec.PendingSecondFactor {
		return domain.SessionRecord{}, ErrNoPendingSecondFactor
	}

	now := time.Now().UTC()
	if rec.Expired(now) {
		if err := s.Credentials.Clear(ctx); err != nil {
			return domain.SessionRecord{}, fmt.Errorf("failed to clear expired session: %w", err)
		}
		return domain.SessionRecord{}, ErrSecondFactorExpired
	}

	// The embedded snapshot is stripped of secrets; fetch the directory
	// record for the TOTP secret.
	user, err := s.Store.Users().GetUserByID(ctx, rec.User.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SessionRecord{}, ErrUserNotFound
		}
		return domain.SessionRecord{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		if err := s.Credentials.Clear(ctx); err != nil {
			return domain.SessionRecord{}, fmt.Errorf("failed to clear session: %w", err)
		}
		return domain.SessionRecord{}, ErrAccountDisabled
	}
	if user.SecondFactorSecret == nil || *user.SecondFactorSecret == "" {
		return domain.SessionRecord{}, ErrNoPendingSecondFactor
	}

	if !totp.Validate(code, *user.SecondFactorSecret) {
		l.Warn("invalid second factor code", slog.String("user_id", user.ID))
		return domain.SessionRecord{}, ErrInvalidSecondFactor
	}

	// Rewrite into whichever area holds the pending record so the
	// persistence choice made at sign-in survives the upgrade.
	persistent, ok, err := s.Credentials.Holder(ctx)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("failed to locate session: %w", err)
	}
	if !ok {
		return domain.SessionRecord{}, ErrNoPendingSecondFactor
	}

	full, err := s.mintSession(user, now)
	if err != nil {
		return domain.SessionRecord{}, err
	}
	if err := s.Credentials.Save(ctx, full, persistent); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("failed to persist session: %w", err)
	}

	l.Info("second factor verified", slog.String("user_id", user.ID))
	return full, nil
}

// SignOut clears the session from both areas. Signing out while signed out
// is a no-op, not an error.
func (s *AuthService) SignOut(ctx context.Context) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrOperationInFlight
	}
	defer s.busy.Store(false)

	if err := s.Credentials.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	slogx.FromContext(ctx).Info("user signed out")
	return nil
}

func (s *AuthService) mintSession(user domain.UserRecord, now time.Time) (domain.SessionRecord, error) {
	access, err := s.Tokens.MintAccessToken(user.ID, string(user.Role), s.sessionTTL())
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("failed to mint access token: %w", err)
	}
	refresh, err := tokens.NewRefreshToken()
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("failed to mint refresh token: %w", err)
	}

	return domain.SessionRecord{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user.Snapshot(),
		ExpiresAt:    now.Add(s.sessionTTL()),
	}, nil
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return DefaultSessionTTL
}

func (s *AuthService) pendingTTL() time.Duration {
	if s.PendingTTL > 0 {
		return s.PendingTTL
	}
	return DefaultPendingTTL
}

// requiresSecondFactor is the challenge policy: super admins with an
// enrolled TOTP secret must complete the second step.
func requiresSecondFactor(u domain.UserRecord) bool {
	return u.Role == domain.RoleSuperAdmin &&
		u.SecondFactorSecret != nil && *u.SecondFactorSecret != "" &&
		u.SecondFactorEnabled != nil
}
