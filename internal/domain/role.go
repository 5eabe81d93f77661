package domain

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// DeriveRole resolves the role for an account from its profile. Accounts
// without a profile, or with a profile that carries no recognized role,
// default to student.
func DeriveRole(profile *Profile) Role {
	if profile == nil {
		return RoleStudent
	}
	switch profile.Role {
	case RoleAdmin, RoleStudent:
		return profile.Role
	default:
		return RoleStudent
	}
}
