package user

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access including role changes
	RoleHR       Role = "hr"       // Manages the employee directory
	RoleManager  Role = "manager"  // Reviews attendance and timesheets
	RoleEmployee Role = "employee" // Regular employee
)

// Roles lists every role in ascending privilege order.
var Roles = []Role{RoleEmployee, RoleManager, RoleHR, RoleAdmin}

// ParseRole returns the role named s, or false for an unknown name.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return r, true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash *string
	Role         Role
	Department   *string
	Designation  *string
	ManagerID    *int64
	Phone        *string
	SSOSubject   *string
	IsActive     bool
	JoinedOn     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsReviewer reports whether the user may decide on other people's requests.
func (u User) IsReviewer() bool {
	return HasPermission(u.Role, PermissionApprovalReview)
}

// Principal is the authenticated caller as seen by handlers and services.
type Principal struct {
	ID   int64
	Role Role
}

func (p Principal) Can(permission Permission) bool {
	return HasPermission(p.Role, permission)
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
