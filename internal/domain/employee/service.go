package employee

import (
	"context"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
)

// EmployeeService manages the company directory.
type EmployeeService interface {
	ListEmployees(ctx context.Context, query ListQuery) (ListResponse, error)
	GetEmployee(ctx context.Context, id int64) (Response, error)

	// CreateEmployee sends a welcome email in the background; delivery failures never fail the call.
	CreateEmployee(ctx context.Context, actor user.Principal, req CreateEmployeeRequest) (Response, error)

	// UpdateEmployee changes roles only when actor may manage roles.
	UpdateEmployee(ctx context.Context, actor user.Principal, req UpdateEmployeeRequest) (Response, error)
	SetActive(ctx context.Context, actor user.Principal, req SetActiveRequest) (Response, error)
}

// Notifier delivers account emails.
type Notifier interface {
	SendWelcome(ctx context.Context, to, fullName, loginURL string) error
}
