package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/herfa/gate/internal/gate/authz"
	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/service"
	"github.com/herfa/gate/pkg/gatesdk"
	"github.com/herfa/gate/pkg/httpx"
)

const (
	loginPath        = "/login"
	unauthorizedPath = "/unauthorized"
)

// AuthnMiddleware verifies the bearer access token and stashes the subject
// and role in the request context.
func AuthnMiddleware(verify func(raw string) (userID, role string, err error)) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				gatesdk.ErrInvalidToken.WriteError(w)
				return
			}

			userID, role, err := verify(raw)
			if err != nil {
				gatesdk.ErrInvalidToken.WriteError(w)
				return
			}

			ctx := context.WithValue(r.Context(), httpx.CtxKeyUserID, userID)
			ctx = context.WithValue(ctx, httpx.CtxKeyRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoadingGuard holds requests off until the first session resolution has
// completed. Returns 503 with Retry-After rather than guessing a state.
func LoadingGuard(resolver *service.SessionResolver) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolver.IsLoading() {
				w.Header().Set("Retry-After", "1")
				gatesdk.NewAPIError(
					http.StatusServiceUnavailable,
					gatesdk.ErrorCodeSessionLoading,
					"session state is still resolving",
				).WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests whose authenticated role is not in the set.
func RequireRole(roles ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(httpx.CtxKeyRole).(string)
			for _, allowed := range roles {
				if domain.Role(role) == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			gatesdk.ErrAccessDenied.WriteError(w)
		})
	}
}

// decideAccess is the route guard verdict for a page path given the resolved
// session. Never called while loading; LoadingGuard screens that off.
func decideAccess(state service.State, user domain.UserRecord, path string) gatesdk.CanAccessResponse {
	resp := gatesdk.CanAccessResponse{Path: path}

	switch state {
	case service.StateAuthenticated:
		if authz.CanAccess(&user, path) {
			resp.Allowed = true
			resp.Decision = gatesdk.DecisionAllow
			return resp
		}
		resp.Decision = gatesdk.DecisionRedirectToUnauthorized
		resp.RedirectTo = unauthorizedPath
		return resp

	default:
		// Unauthenticated and pending sessions both land on the login
		// page; next preserves the destination for after sign-in.
		resp.Decision = gatesdk.DecisionRedirectToLogin
		resp.RedirectTo = loginPath + "?next=" + url.QueryEscape(path)
		return resp
	}
}

// CanAccessHandler answers GET /v1/authz/can-access for front-end route
// guards.
type CanAccessHandler struct {
	Resolver *service.SessionResolver
}

// ServeHTTP returns the guard verdict for the path in the query string.
//
//	@Summary		Route guard verdict
//	@Description	Evaluates whether the current session may visit a page path, returning either an allow or the redirect the guard would perform.
//	@Tags			Authorization
//	@Produce		json
//	@Param			path	query		string	true	"Page path to evaluate"	example(/admin/dashboard)
//	@Success		200		{object}	gatesdk.CanAccessResponse
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Missing or malformed path"
//	@Failure		503		{object}	gatesdk.ErrorResponse	"Session state still resolving"
//	@Router			/v1/authz/can-access [get].
func (h *CanAccessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" || !strings.HasPrefix(path, "/") {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	state := h.Resolver.State()
	var user domain.UserRecord
	if u, ok := h.Resolver.CurrentUser(); ok {
		user = u
	}

	httpx.WriteJSON(w, http.StatusOK, decideAccess(state, user, path))
}
