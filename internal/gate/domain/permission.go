package domain

import "fmt"

// Permission is an enumerated capability token. Permissions are only
// meaningful for ADMIN users; SUPER_ADMIN implicitly holds all of them.
type Permission string

const (
	PermModerateProfiles Permission = "moderate_profiles"
	PermManageUsers      Permission = "manage_users"
	PermManageReviews    Permission = "manage_reviews"
	PermViewReports      Permission = "view_reports"
	PermDigitizeCards    Permission = "digitize_cards"
)

// Permissions lists every valid permission.
var Permissions = []Permission{
	PermModerateProfiles,
	PermManageUsers,
	PermManageReviews,
	PermViewReports,
	PermDigitizeCards,
}

// ParsePermission validates a stored or wire-level permission string.
func ParsePermission(s string) (Permission, error) {
	switch Permission(s) {
	case PermModerateProfiles, PermManageUsers, PermManageReviews, PermViewReports, PermDigitizeCards:
		return Permission(s), nil
	}
	return "", fmt.Errorf("unknown permission %q", s)
}

func (p Permission) String() string { return string(p) }
