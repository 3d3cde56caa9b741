package gatesdk

import "time"

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error            string `json:"error" example:"invalid_credentials"`
	ErrorDescription string `json:"error_description" example:"invalid credentials"`
}

// LoginRequest starts the authentication flow.
type LoginRequest struct {
	Email      string `json:"email" example:"fatima.zahra@example.com"`
	Password   string `json:"password" example:"hunter2"`
	RememberMe bool   `json:"remember_me" example:"true"`
}

// VerifyRequest completes a pending second-factor challenge.
type VerifyRequest struct {
	Code string `json:"code" example:"123456"`
}

// UserInfo is the public view of a user record.
type UserInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role" example:"ARTISAN"`
	IsActive    bool      `json:"is_active"`
	Permissions []string  `json:"permissions,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Language    string    `json:"language,omitempty" example:"ar"`
	Gender      string    `json:"gender,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SessionResponse describes the session after login, verification, or a
// GET /v1/me call.
type SessionResponse struct {
	State               string    `json:"state" example:"authenticated"`
	User                *UserInfo `json:"user,omitempty"`
	AccessToken         string    `json:"access_token,omitempty"`
	ExpiresAt           time.Time `json:"expires_at"`
	PendingSecondFactor bool      `json:"pending_second_factor,omitempty"`
}

// ProfileUpdateRequest replaces the profile fields wholesale.
type ProfileUpdateRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Language  string `json:"language,omitempty" example:"fr"`
	Gender    string `json:"gender,omitempty"`
}

// GenderInfo is a registration reference row with bilingual labels.
type GenderInfo struct {
	Code    string `json:"code" example:"female"`
	LabelAr string `json:"label_ar" example:"أنثى"`
	LabelFr string `json:"label_fr" example:"Femme"`
}

// OverviewResponse is the reporting rollup.
type OverviewResponse struct {
	TotalUsers  int            `json:"total_users"`
	ActiveUsers int            `json:"active_users"`
	ByRole      map[string]int `json:"by_role"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database,omitempty" example:"ok"`
	Session  string `json:"session,omitempty" example:"ok"`
}

// HealthResponse is the body of the health probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// Route guard decisions.
const (
	DecisionAllow                  = "allow"
	DecisionRedirectToLogin        = "redirect_to_login"
	DecisionRedirectToUnauthorized = "redirect_to_unauthorized"
)

// CanAccessResponse is the route guard's verdict for a path.
type CanAccessResponse struct {
	Path       string `json:"path" example:"/admin/dashboard"`
	Allowed    bool   `json:"allowed"`
	Decision   string `json:"decision" example:"allow"`
	RedirectTo string `json:"redirect_to,omitempty" example:"/login?next=%2Fadmin%2Fdashboard"`
}
