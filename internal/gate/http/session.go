package http

import (
	"net/http"

	"github.com/herfa/gate/internal/gate/service"
	"github.com/herfa/gate/pkg/gatesdk"
	"github.com/herfa/gate/pkg/httpx"
)

type MeHandler struct {
	Resolver *service.SessionResolver
}

// ServeHTTP reports the resolved session state.
//
//	@Summary		Current session
//	@Description	Returns the resolved session state: unauthenticated, pending a second factor, or authenticated with the user snapshot.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	gatesdk.SessionResponse
//	@Failure		503	{object}	gatesdk.ErrorResponse	"Session state still resolving"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state := h.Resolver.State()

	rec, ok := h.Resolver.Record()
	if !ok {
		httpx.WriteJSON(w, http.StatusOK, gatesdk.SessionResponse{State: state.String()})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(state, rec))
}
