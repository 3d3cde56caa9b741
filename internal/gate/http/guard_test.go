package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	evbus "github.com/asaskevich/EventBus"
	"github.com/herfa/gate/internal/gate/credstore"
	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/service"
	"github.com/herfa/gate/pkg/gatesdk"
	"github.com/stretchr/testify/require"
)

func TestDecideAccess(t *testing.T) {
	t.Parallel()

	client := domain.UserRecord{ID: "01C", Role: domain.RoleClient}
	superAdmin := domain.UserRecord{ID: "01S", Role: domain.RoleSuperAdmin}

	t.Run("unauthenticated redirects to login with next", func(t *testing.T) {
		resp := decideAccess(service.StateUnauthenticated, domain.UserRecord{}, "/admin/dashboard")
		require.False(t, resp.Allowed)
		require.Equal(t, gatesdk.DecisionRedirectToLogin, resp.Decision)
		require.Equal(t, "/login?next=%2Fadmin%2Fdashboard", resp.RedirectTo)
	})

	t.Run("pending second factor is not authenticated", func(t *testing.T) {
		resp := decideAccess(service.StatePendingSecondFactor, domain.UserRecord{}, "/client/orders")
		require.False(t, resp.Allowed)
		require.Equal(t, gatesdk.DecisionRedirectToLogin, resp.Decision)
	})

	t.Run("authenticated on an allowed path", func(t *testing.T) {
		resp := decideAccess(service.StateAuthenticated, client, "/client/orders")
		require.True(t, resp.Allowed)
		require.Equal(t, gatesdk.DecisionAllow, resp.Decision)
		require.Empty(t, resp.RedirectTo)
	})

	t.Run("authenticated on a forbidden path", func(t *testing.T) {
		resp := decideAccess(service.StateAuthenticated, client, "/admin/dashboard")
		require.False(t, resp.Allowed)
		require.Equal(t, gatesdk.DecisionRedirectToUnauthorized, resp.Decision)
		require.Equal(t, unauthorizedPath, resp.RedirectTo)
	})

	t.Run("super admin reaches everything", func(t *testing.T) {
		resp := decideAccess(service.StateAuthenticated, superAdmin, "/admin/secrets")
		require.True(t, resp.Allowed)
	})
}

func TestLoadingGuardDefersUntilResolved(t *testing.T) {
	creds := credstore.New(credstore.NewMemoryArea(), credstore.NewMemoryArea(), evbus.New())
	resolver := service.NewSessionResolver(creds, nil)

	handler := LoadingGuard(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	require.NoError(t, resolver.Init(httptest.NewRequest(http.MethodGet, "/", nil).Context()))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCanAccessEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, domain.RoleClient, "client@example.com", nil, false)

	t.Run("missing path", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/authz/can-access", "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("relative path rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/authz/can-access?path=admin", "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("signed out", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/authz/can-access?path=%2Fclient%2Forders", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out gatesdk.CanAccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.False(t, out.Allowed)
		require.Equal(t, gatesdk.DecisionRedirectToLogin, out.Decision)
		require.Equal(t, "/login?next=%2Fclient%2Forders", out.RedirectTo)
	})

	env.login(t, "client@example.com")

	t.Run("signed in, allowed path", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/authz/can-access?path=%2Fclient%2Forders", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out gatesdk.CanAccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.True(t, out.Allowed)
	})

	t.Run("signed in, forbidden path", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/authz/can-access?path=%2Fadmin%2Fdashboard", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out gatesdk.CanAccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.False(t, out.Allowed)
		require.Equal(t, gatesdk.DecisionRedirectToUnauthorized, out.Decision)
	})
}

func TestAuthnMiddleware(t *testing.T) {
	env := newTestEnv(t)

	handler := AuthnMiddleware(env.router.verifyToken)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		raw, err := env.tokens.MintAccessToken("01USER", "CLIENT", testTokenTTL)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
