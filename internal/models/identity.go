package models

// Role represents the role of a caller
type Role int

const (
	RoleStudent    Role = 1
	RoleCreator    Role = 2
	RoleSuperAdmin Role = 3
)

// String returns the role name
func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleCreator:
		return "creator"
	case RoleSuperAdmin:
		return "superadmin"
	default:
		return "unknown"
	}
}

// IsValid checks that the role is one of the known roles
func (r Role) IsValid() bool {
	return r >= RoleStudent && r <= RoleSuperAdmin
}

// Identity is the resolved caller of a service operation
type Identity struct {
	ID   string
	Role Role
}

// IsSuperAdmin reports whether the caller bypasses ownership checks
func (i Identity) IsSuperAdmin() bool {
	return i.Role == RoleSuperAdmin
}

// CanAuthor reports whether the caller may create courses
func (i Identity) CanAuthor() bool {
	return i.Role == RoleCreator || i.Role == RoleSuperAdmin
}

// Owns reports whether the caller may manage content owned by creatorID
func (i Identity) Owns(creatorID string) bool {
	return i.IsSuperAdmin() || (i.ID != "" && i.ID == creatorID)
}
