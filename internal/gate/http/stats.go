package http

import (
	"net/http"

	"github.com/herfa/gate/internal/gate/authz"
	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/service"
	"github.com/herfa/gate/pkg/gatesdk"
	"github.com/herfa/gate/pkg/httpx"
	"github.com/herfa/gate/pkg/slogx"
)

type StatsHandler struct {
	StatsService     *service.StatsService
	DirectoryService *service.DirectoryService
}

// ServeHTTP returns the reporting rollup.
//
//	@Summary		Reporting overview
//	@Description	Returns user counts by role and activity. Requires the view_reports permission; SUPER_ADMIN always qualifies.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	gatesdk.OverviewResponse
//	@Failure		401	{object}	gatesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	gatesdk.ErrorResponse	"Missing view_reports permission"
//	@Failure		500	{object}	gatesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/stats/overview [get].
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		gatesdk.ErrInvalidToken.WriteError(w)
		return
	}

	// Permissions live in the directory, not the token; enumerated grants
	// are revocable without waiting for token expiry.
	user, err := h.DirectoryService.GetUser(ctx, userID)
	if err != nil {
		log.Warn("failed to load user", "user_id", userID, "err", err)
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	if !authz.HasPermission(&user, domain.PermViewReports) {
		gatesdk.ErrAccessDenied.WriteError(w)
		return
	}

	overview, err := h.StatsService.Overview(ctx)
	if err != nil {
		log.Warn("failed to build overview", "err", err)
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	byRole := make(map[string]int, len(overview.ByRole))
	for role, n := range overview.ByRole {
		byRole[string(role)] = n
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.OverviewResponse{
		TotalUsers:  overview.TotalUsers,
		ActiveUsers: overview.ActiveUsers,
		ByRole:      byRole,
		GeneratedAt: overview.GeneratedAt,
	})
}
