// Package rbac defines the closed role set and the ownership rules
// shared by every mutating operation.
package rbac

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Normalize maps arbitrary stored strings onto the closed role set.
// Unknown or empty values degrade to MEMBER.
func Normalize(role string) Role {
	switch Role(role) {
	case RoleAdmin:
		return RoleAdmin
	case RoleMember:
		return RoleMember
	default:
		return RoleMember
	}
}

func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleMember:
		return false
	default:
		return false
	}
}

// CanManage reports whether the caller may update or delete a resource
// owned by ownerID: the owner themselves, or any admin.
func CanManage(role Role, callerID, ownerID string) bool {
	if role.IsAdmin() {
		return true
	}
	return callerID != "" && callerID == ownerID
}
