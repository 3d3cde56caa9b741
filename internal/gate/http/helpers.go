package http

import (
	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/service"
	"github.com/herfa/gate/pkg/gatesdk"
)

func toUserInfo(u domain.UserRecord) *gatesdk.UserInfo {
	perms := make([]string, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		perms = append(perms, string(p))
	}
	if len(perms) == 0 {
		perms = nil
	}

	return &gatesdk.UserInfo{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		Permissions: perms,
		AvatarURL:   u.AvatarURL,
		Bio:         u.Bio,
		Language:    u.Language,
		Gender:      u.GenderCode,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// toSessionResponse maps a session record to the wire shape. Pending
// sessions expose the pending flag and expiry but no principal or token.
func toSessionResponse(state service.State, rec domain.SessionRecord) gatesdk.SessionResponse {
	resp := gatesdk.SessionResponse{
		State:     state.String(),
		ExpiresAt: rec.ExpiresAt,
	}

	if rec.PendingSecondFactor {
		resp.PendingSecondFactor = true
		return resp
	}

	resp.User = toUserInfo(rec.User)
	resp.AccessToken = rec.AccessToken
	return resp
}
