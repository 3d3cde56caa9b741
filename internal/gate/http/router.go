package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/service"
	"github.com/herfa/gate/internal/gate/store"
	"github.com/herfa/gate/internal/gate/tokens"
	"github.com/herfa/gate/pkg/httpx"
	"github.com/herfa/gate/pkg/slogx"

	_ "github.com/herfa/gate/api/gate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *tokens.Manager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	Resolver         *service.SessionResolver
	AuthService      *service.AuthService
	ProfileService   *service.ProfileService
	DirectoryService *service.DirectoryService
	StatsService     *service.StatsService
}

func NewRouter(
	tk *tokens.Manager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tk,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSession()
	r.registerProfile()
	r.registerReference()
	r.registerReports()
	r.registerGuard()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Herfa Gate API
//	@version		0.1.0
//	@description	Session and authorization gate for the Herfa artisan marketplace: sign-in with an
//	@description	optional TOTP second step, a resolved session state, and role/permission checks for
//	@description	front-end route guards.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// verifyToken adapts the token manager for AuthnMiddleware.
func (r *Router) verifyToken(raw string) (string, string, error) {
	claims, err := r.tokens.Verify(raw)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Role, nil
}

func (r *Router) registerAuth() {
	h := &LoginHandler{AuthService: r.AuthService}

	// Credential-bearing endpoints get the strict limit to slow down
	// brute force; codes especially.
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			LoadingGuard(r.Resolver),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/login/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			LoadingGuard(r.Resolver),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			LoadingGuard(r.Resolver),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSession() {
	h := &MeHandler{Resolver: r.Resolver}

	r.Mux.Handle("GET /v1/me",
		httpx.Chain(h,
			LoadingGuard(r.Resolver),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{ProfileService: r.ProfileService}

	r.Mux.Handle("PUT /v1/profile",
		httpx.Chain(h,
			AuthnMiddleware(r.verifyToken),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerReference() {
	h := &GendersHandler{DirectoryService: r.DirectoryService}

	r.Mux.Handle("GET /v1/genders",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerReports() {
	h := &StatsHandler{
		StatsService:     r.StatsService,
		DirectoryService: r.DirectoryService,
	}

	// Role gate from the token cuts the obvious cases cheaply; the handler
	// still checks the view_reports grant against the directory.
	r.Mux.Handle("GET /v1/stats/overview",
		httpx.Chain(h,
			AuthnMiddleware(r.verifyToken),
			httpx.RateLimitByIP(httpx.ModerateLimit),
			RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin),
		),
	)
}

func (r *Router) registerGuard() {
	h := &CanAccessHandler{Resolver: r.Resolver}

	r.Mux.Handle("GET /v1/authz/can-access",
		httpx.Chain(h,
			LoadingGuard(r.Resolver),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Resolver),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
