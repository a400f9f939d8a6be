package regularization

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/regularization"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
)

type RegularizationServiceImpl struct {
	tx database.Transactor
	regularization.RegularizationRepository
	attendance.AttendanceRepository

	loc *time.Location
	now func() time.Time
}

func NewRegularizationService(
	tx database.Transactor,
	regularizationRepo regularization.RegularizationRepository,
	attendanceRepo attendance.AttendanceRepository,
	loc *time.Location,
) regularization.RegularizationService {
	return &RegularizationServiceImpl{
		tx:                       tx,
		RegularizationRepository: regularizationRepo,
		AttendanceRepository:     attendanceRepo,
		loc:                      loc,
		now:                      time.Now,
	}
}

// Create implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) Create(ctx context.Context, userID int64, req regularization.CreateRequest) (regularization.Response, error) {
	if err := req.Validate(); err != nil {
		return regularization.Response{}, err
	}

	now := s.now()
	day, _ := utils.ParseDate(req.WorkDate)
	if day.After(utils.DateOf(now, s.loc)) {
		return regularization.Response{}, regularization.ErrFutureDate
	}
	proposed, err := validator.CombineDateClock(day, req.ProposedTime, s.loc)
	if err != nil {
		return regularization.Response{}, err
	}
	if proposed.After(now) {
		return regularization.Response{}, regularization.ErrFutureDate
	}

	newRequest := regularization.Request{
		UserID:       userID,
		WorkDate:     day,
		Type:         regularization.Type(req.Type),
		ProposedTime: proposed,
		Reason:       req.Reason,
		Status:       regularization.StatusPending,
	}

	var created regularization.Request
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.RegularizationRepository.LockSlot(txCtx, userID, day, newRequest.Type); err != nil {
			return fmt.Errorf("lock regularization slot: %w", err)
		}
		pending, err := s.RegularizationRepository.HasPending(txCtx, userID, day, newRequest.Type)
		if err != nil {
			return fmt.Errorf("check pending regularization: %w", err)
		}
		if pending {
			return regularization.ErrDuplicatePending
		}
		created, err = s.RegularizationRepository.Create(txCtx, newRequest)
		return err
	})
	if err != nil {
		return regularization.Response{}, err
	}
	return regularization.NewResponse(created), nil
}

// ListMine implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) ListMine(ctx context.Context, userID int64, query regularization.ListQuery) ([]regularization.Response, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	var status *regularization.Status
	if st, ok := regularization.ParseStatus(query.Status); ok {
		status = &st
	}
	requests, err := s.RegularizationRepository.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list own regularizations: %w", err)
	}
	return regularization.NewResponses(requests), nil
}

// List implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) List(ctx context.Context, query regularization.ListQuery) ([]regularization.Response, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	status := regularization.StatusPending
	if st, ok := regularization.ParseStatus(query.Status); ok {
		status = st
	}
	requests, err := s.RegularizationRepository.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list regularizations: %w", err)
	}
	return regularization.NewResponses(requests), nil
}

// Decide implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) Decide(ctx context.Context, reviewer user.Principal, req regularization.DecisionRequest) (regularization.Response, error) {
	if err := req.Validate(); err != nil {
		return regularization.Response{}, err
	}
	action, ok := approval.ParseAction(req.Action)
	if !ok {
		return regularization.Response{}, approval.ErrInvalidAction
	}

	var decided regularization.Request
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.RegularizationRepository.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}
		if err := approval.CheckReviewer(reviewer, current.UserID); err != nil {
			return err
		}
		if err := approval.CheckReview(current.Status.State()); err != nil {
			return regularization.ErrAlreadyDecided
		}

		decided, err = s.RegularizationRepository.Decide(txCtx, current.ID, regularization.Decision{
			Status:     regularization.Status(action.Outcome()),
			ReviewerID: reviewer.ID,
			ReviewedAt: s.now(),
			Comment:    req.Comment,
		})
		if err != nil {
			return err
		}
		if action != approval.ActionApprove {
			return nil
		}

		switch current.Type {
		case regularization.TypeCheckIn:
			_, err = s.AttendanceRepository.ApplyCheckIn(txCtx, current.UserID, current.WorkDate, current.ProposedTime)
		case regularization.TypeCheckOut:
			_, err = s.AttendanceRepository.ApplyCheckOut(txCtx, current.UserID, current.WorkDate, current.ProposedTime)
		}
		return err
	})
	if err != nil {
		return regularization.Response{}, err
	}

	metrics.ApprovalDecisions.WithLabelValues(metrics.SubjectRegularization, string(action)).Inc()
	slog.Info("regularization decided", "id", decided.ID, "reviewer_id", reviewer.ID, "status", decided.Status)
	return regularization.NewResponse(decided), nil
}
