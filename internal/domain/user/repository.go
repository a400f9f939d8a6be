package user

import (
	"context"
)

// ListFilter narrows a directory listing. Nil fields are not applied.
type ListFilter struct {
	Search     string
	Department *string
	Role       *Role
	Active     *bool
	Limit      int
	Offset     int
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetBySSOSubject(ctx context.Context, subject string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	LinkSSOSubject(ctx context.Context, id int64, subject string) (User, error)
	SetActive(ctx context.Context, id int64, active bool) (User, error)
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	ListActive(ctx context.Context, department *string) ([]User, error)
}
