package employee

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

const welcomeTimeout = 30 * time.Second

type EmployeeServiceImpl struct {
	tx       database.Transactor
	userRepo user.UserRepository
	notifier employee.Notifier
	loginURL string
}

func NewEmployeeService(
	tx database.Transactor,
	userRepo user.UserRepository,
	notifier employee.Notifier,
	loginURL string,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:       tx,
		userRepo: userRepo,
		notifier: notifier,
		loginURL: loginURL,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, query employee.ListQuery) (employee.ListResponse, error) {
	if err := query.Validate(); err != nil {
		return employee.ListResponse{}, err
	}
	filter := query.ToFilter()

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return employee.ListResponse{}, fmt.Errorf("list employees: %w", err)
	}

	resp := employee.ListResponse{
		Employees:  make([]employee.Response, 0, len(users)),
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int64(math.Ceil(float64(total) / float64(query.Limit))),
	}
	for _, u := range users {
		resp.Employees = append(resp.Employees, employee.NewResponse(u))
	}
	return resp, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.Response, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Response{}, err
	}
	return employee.NewResponse(u), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, actor user.Principal, req employee.CreateEmployeeRequest) (employee.Response, error) {
	if err := req.Validate(); err != nil {
		return employee.Response{}, err
	}
	newUser := req.ToUser()
	if newUser.Role == user.RoleAdmin && !actor.Can(user.PermissionRoleManage) {
		return employee.Response{}, employee.ErrRoleChangeForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.Response{}, fmt.Errorf("hash password: %w", err)
	}
	hashed := string(hash)
	newUser.PasswordHash = &hashed
	newUser.Email = strings.ToLower(strings.TrimSpace(newUser.Email))

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return employee.Response{}, err
	}
	slog.Info("employee created", "actor_id", actor.ID, "user_id", created.ID, "role", created.Role)

	s.sendWelcome(ctx, created)
	return employee.NewResponse(created), nil
}

// sendWelcome mails the new account without holding up the request.
func (s *EmployeeServiceImpl) sendWelcome(ctx context.Context, u user.User) {
	if s.notifier == nil {
		return
	}
	go func() {
		mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), welcomeTimeout)
		defer cancel()
		if err := s.notifier.SendWelcome(mailCtx, u.Email, u.FullName, s.loginURL); err != nil {
			slog.Error("failed to send welcome email", "user_id", u.ID, "error", err)
		}
	}()
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, actor user.Principal, req employee.UpdateEmployeeRequest) (employee.Response, error) {
	if err := req.Validate(); err != nil {
		return employee.Response{}, err
	}

	var updated user.User
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.userRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.Role != nil {
			role, _ := user.ParseRole(*req.Role)
			if role != current.Role {
				if !actor.Can(user.PermissionRoleManage) {
					return employee.ErrRoleChangeForbidden
				}
				current.Role = role
			}
		}
		current.FullName = req.FullName
		current.Department = req.Department
		current.Designation = req.Designation
		current.ManagerID = req.ManagerID
		current.Phone = req.Phone
		if req.JoinedOn != nil {
			current.JoinedOn = employee.ParseOptionalDate(req.JoinedOn)
		}

		updated, err = s.userRepo.Update(txCtx, current)
		return err
	})
	if err != nil {
		return employee.Response{}, err
	}
	return employee.NewResponse(updated), nil
}

// SetActive implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetActive(ctx context.Context, actor user.Principal, req employee.SetActiveRequest) (employee.Response, error) {
	if err := req.Validate(); err != nil {
		return employee.Response{}, err
	}
	if req.ID == actor.ID && !*req.IsActive {
		return employee.Response{}, employee.ErrSelfDeactivation
	}
	updated, err := s.userRepo.SetActive(ctx, req.ID, *req.IsActive)
	if err != nil {
		return employee.Response{}, err
	}
	slog.Info("employee activation changed", "actor_id", actor.ID, "user_id", updated.ID, "is_active", updated.IsActive)
	return employee.NewResponse(updated), nil
}
