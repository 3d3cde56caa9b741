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

type ProfileHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP replaces the caller's profile.
//
//	@Summary		Replace profile
//	@Description	Overwrites the display fields of the authenticated user's profile wholesale and refreshes the session snapshot.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.ProfileUpdateRequest	true	"Replacement profile"
//	@Success		200		{object}	gatesdk.UserInfo
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Malformed request or unsupported language"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500		{object}	gatesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/profile [put].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		gatesdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req gatesdk.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Name == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	updated, err := h.ProfileService.ReplaceProfile(ctx, userID, service.ProfileUpdate{
		Name:       req.Name,
		AvatarURL:  req.AvatarURL,
		Bio:        req.Bio,
		Language:   req.Language,
		GenderCode: req.Gender,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLanguage):
			gatesdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			gatesdk.ErrUserNotFound.WriteError(w)
		default:
			log.Warn("failed to replace profile", "user_id", userID, "err", err)
			gatesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserInfo(updated))
}
