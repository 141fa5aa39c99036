package constants

import "fmt"

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess     = "❌ Only admins may access %s."
	ErrOnlyModeratorsCanAccess = "❌ Only moderators or admins may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorModerator(feature string) string {
	return fmt.Sprintf(ErrOnlyModeratorsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleModerator,
		RoleAdmin,
	}

	ModeratorAndAbove = []string{
		RoleModerator,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// RolePriority orders roles from weakest to strongest; used when a user holds
// several role rows and one effective role must win.
func RolePriority(role string) int {
	switch role {
	case RoleAdmin:
		return 3
	case RoleModerator:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}
