package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/herfa/gate/internal/gate/credstore"
	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/store/drivers/sqlite"
	"github.com/herfa/gate/internal/gate/tokens"
	"github.com/herfa/gate/pkg/cryptox"
	"github.com/herfa/gate/pkg/idx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse battery staple"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "gate-service-test")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testEnv struct {
	store *sqlite.Store
	creds *credstore.Store
	bus   evbus.Bus
	auth  *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	bus := evbus.New()
	creds := credstore.New(
		credstore.NewDurableArea(st.Credentials()),
		credstore.NewMemoryArea(),
		bus,
	)

	return &testEnv{
		store: st,
		creds: creds,
		bus:   bus,
		auth: &AuthService{
			Store:       st,
			Credentials: creds,
			Tokens:      tokens.NewManager("test-secret", "herfa-gate"),
		},
	}
}

// createUser inserts an active user with the shared test password. When
// withTOTP is true a second factor is enrolled and the secret returned.
func (e *testEnv) createUser(t *testing.T, role domain.Role, email string, withTOTP bool) (domain.UserRecord, string) {
	t.Helper()
	ctx := context.Background()

	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)

	user := domain.UserRecord{
		ID:           idx.New().String(),
		Name:         "Test User",
		Email:        email,
		Role:         role,
		IsActive:     true,
		PasswordHash: hash,
	}
	require.NoError(t, e.store.Users().CreateUser(ctx, user))

	secret := ""
	if withTOTP {
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      "herfa-gate",
			AccountName: email,
			Period:      30,
			Digits:      otp.DigitsSix,
			Algorithm:   otp.AlgorithmSHA1,
		})
		require.NoError(t, err)
		secret = key.Secret()
		require.NoError(t, e.store.Users().EnrollSecondFactor(ctx, user.ID, secret))
	}

	stored, err := e.store.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	return stored, secret
}

func totpCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}

// wrongTOTPCode returns a six-digit code guaranteed not to be the current one.
func wrongTOTPCode(t *testing.T, secret string) string {
	t.Helper()
	current := totpCode(t, secret)
	if current == "000000" {
		return "000001"
	}
	return "000000"
}
