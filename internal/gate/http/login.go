package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/herfa/gate/internal/gate/service"
	"github.com/herfa/gate/pkg/gatesdk"
	"github.com/herfa/gate/pkg/httpx"
	"github.com/herfa/gate/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// HandleLogin starts the authentication flow.
//
//	@Summary		Sign in
//	@Description	Validates the identifier and credential. Returns 200 with an authenticated session, or 202 when a second factor must be verified first.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	gatesdk.SessionResponse	"Authenticated session"
//	@Success		202		{object}	gatesdk.SessionResponse	"Second factor required"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"Invalid credentials"
//	@Failure		403		{object}	gatesdk.ErrorResponse	"Account disabled"
//	@Failure		404		{object}	gatesdk.ErrorResponse	"Unknown identifier"
//	@Failure		409		{object}	gatesdk.ErrorResponse	"Another operation in flight"
//	@Router			/v1/login [post].
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	rec, err := h.AuthService.SignIn(ctx, req.Email, req.Password, req.RememberMe)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	if rec.PendingSecondFactor {
		httpx.WriteJSON(w, http.StatusAccepted,
			toSessionResponse(service.StatePendingSecondFactor, rec))
		return
	}

	log.Info("login succeeded", "user_id", rec.User.ID)
	httpx.WriteJSON(w, http.StatusOK,
		toSessionResponse(service.StateAuthenticated, rec))
}

// HandleVerify completes a pending second-factor challenge.
//
//	@Summary		Verify second factor
//	@Description	Submits the one-time code for a pending challenge. A wrong code leaves the challenge in place for another attempt within the window.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.VerifyRequest	true	"One-time code"
//	@Success		200		{object}	gatesdk.SessionResponse	"Authenticated session"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"Incorrect code"
//	@Failure		409		{object}	gatesdk.ErrorResponse	"No challenge pending"
//	@Failure		410		{object}	gatesdk.ErrorResponse	"Challenge window expired"
//	@Router			/v1/login/verify [post].
func (h *LoginHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatesdk.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Code == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	rec, err := h.AuthService.VerifySecondFactor(ctx, req.Code)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK,
		toSessionResponse(service.StateAuthenticated, rec))
}

// HandleLogout ends the session.
//
//	@Summary		Sign out
//	@Description	Clears the session. Signing out while already signed out still succeeds.
//	@Tags			Authentication
//	@Success		204	"Session cleared"
//	@Failure		409	{object}	gatesdk.ErrorResponse	"Another operation in flight"
//	@Router			/v1/logout [post].
func (h *LoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.SignOut(r.Context()); err != nil {
		writeAuthError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeAuthError maps service errors onto the wire taxonomy.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		gatesdk.ErrUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrAccountDisabled):
		gatesdk.ErrAccountDisabled.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		gatesdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInvalidSecondFactor):
		gatesdk.ErrInvalidSecondFactor.WriteError(w)
	case errors.Is(err, service.ErrNoPendingSecondFactor):
		gatesdk.ErrNoPendingSecondFactor.WriteError(w)
	case errors.Is(err, service.ErrSecondFactorExpired):
		gatesdk.ErrSecondFactorExpired.WriteError(w)
	case errors.Is(err, service.ErrOperationInFlight):
		gatesdk.ErrOperationInFlight.WriteError(w)
	default:
		gatesdk.ErrServerError.WriteError(w)
	}
}
