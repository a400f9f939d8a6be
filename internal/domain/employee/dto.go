package employee

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	FullName    string  `json:"full_name" validate:"required,max=200"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	Role        string  `json:"role" validate:"required,oneof=admin hr manager employee"`
	Department  *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Designation *string `json:"designation,omitempty" validate:"omitempty,max=100"`
	ManagerID   *int64  `json:"manager_id,omitempty" validate:"omitempty,gt=0"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	JoinedOn    *string `json:"joined_on,omitempty" validate:"omitempty,date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	return validator.Struct(r)
}

// ToUser builds the account without a password hash.
func (r *CreateEmployeeRequest) ToUser() user.User {
	role, _ := user.ParseRole(r.Role)
	return user.User{
		Email:       r.Email,
		FullName:    r.FullName,
		Role:        role,
		Department:  r.Department,
		Designation: r.Designation,
		ManagerID:   r.ManagerID,
		Phone:       r.Phone,
		IsActive:    true,
		JoinedOn:    ParseOptionalDate(r.JoinedOn),
	}
}

// UpdateEmployeeRequest replaces the editable profile fields.
type UpdateEmployeeRequest struct {
	ID          int64   `json:"-"`
	FullName    string  `json:"full_name" validate:"required,max=200"`
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=admin hr manager employee"`
	Department  *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Designation *string `json:"designation,omitempty" validate:"omitempty,max=100"`
	ManagerID   *int64  `json:"manager_id,omitempty" validate:"omitempty,gt=0"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	JoinedOn    *string `json:"joined_on,omitempty" validate:"omitempty,date"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.ManagerID != nil && *r.ManagerID == r.ID {
		return validator.ValidationErrors{{Field: "manager_id", Message: "an employee cannot manage themselves"}}
	}
	return nil
}

type SetActiveRequest struct {
	ID       int64 `json:"-"`
	IsActive *bool `json:"is_active" validate:"required"`
}

func (r *SetActiveRequest) Validate() error {
	return validator.Struct(r)
}

type ListQuery struct {
	Search     string  `json:"search" validate:"max=100"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Role       *string `json:"role,omitempty" validate:"omitempty,oneof=admin hr manager employee"`
	Active     *bool   `json:"active,omitempty"`
	Page       int     `json:"page" validate:"min=0"`
	Limit      int     `json:"limit" validate:"min=0,max=100"`
}

func (q *ListQuery) Validate() error {
	return validator.Struct(q)
}

func (q *ListQuery) ToFilter() user.ListFilter {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	f := user.ListFilter{
		Search:     q.Search,
		Department: q.Department,
		Active:     q.Active,
		Limit:      q.Limit,
		Offset:     (q.Page - 1) * q.Limit,
	}
	if q.Role != nil {
		if r, ok := user.ParseRole(*q.Role); ok {
			f.Role = &r
		}
	}
	return f
}

type Response struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        user.Role `json:"role"`
	Department  *string   `json:"department"`
	Designation *string   `json:"designation"`
	ManagerID   *int64    `json:"manager_id"`
	Phone       *string   `json:"phone"`
	IsActive    bool      `json:"is_active"`
	SSOLinked   bool      `json:"sso_linked"`
	JoinedOn    *string   `json:"joined_on"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewResponse(u user.User) Response {
	resp := Response{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		Department:  u.Department,
		Designation: u.Designation,
		ManagerID:   u.ManagerID,
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		SSOLinked:   u.SSOSubject != nil,
		CreatedAt:   u.CreatedAt,
	}
	if u.JoinedOn != nil {
		s := utils.FormatDate(*u.JoinedOn)
		resp.JoinedOn = &s
	}
	return resp
}

type ListResponse struct {
	Employees  []Response `json:"employees"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int64      `json:"total_pages"`
}

// ParseOptionalDate ignores unparseable input; callers validate first.
func ParseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	d, err := utils.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}
