// Package models defines the records the console keeps in its durable
// namespace: the session principal and the super-admin sequence.
package models

import "strings"

// Role of the session principal.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// superAdminMarker is the substring of an email that grants RoleSuperAdmin.
const superAdminMarker = "superadmin"

// User is the authenticated session principal. At most one is stored.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// RoleForEmail derives the role from an email address: superadmin when the
// address contains "superadmin" anywhere (case-sensitive), admin otherwise.
func RoleForEmail(email string) Role {
	if strings.Contains(email, superAdminMarker) {
		return RoleSuperAdmin
	}
	return RoleAdmin
}

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
