package http

import (
	"net/http"

	"github.com/herfa/gate/internal/gate/service"
	"github.com/herfa/gate/pkg/gatesdk"
	"github.com/herfa/gate/pkg/httpx"
	"github.com/herfa/gate/pkg/slogx"
)

type GendersHandler struct {
	DirectoryService *service.DirectoryService
}

// ServeHTTP lists registration reference data.
//
//	@Summary		List genders
//	@Description	Returns the gender reference rows with Arabic and French labels for registration forms.
//	@Tags			Reference
//	@Produce		json
//	@Success		200	{array}		gatesdk.GenderInfo
//	@Failure		500	{object}	gatesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/genders [get].
func (h *GendersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	genders, err := h.DirectoryService.ListGenders(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to list genders", "err", err)
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]gatesdk.GenderInfo, 0, len(genders))
	for _, g := range genders {
		out = append(out, gatesdk.GenderInfo{
			Code:    g.Code,
			LabelAr: g.LabelAr,
			LabelFr: g.LabelFr,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
