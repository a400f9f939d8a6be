package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/metrics"
)

type TimesheetServiceImpl struct {
	tx database.Transactor
	timesheet.TimesheetRepository
	timesheet.ReferenceRepository

	now func() time.Time
}

func NewTimesheetService(
	tx database.Transactor,
	timesheetRepo timesheet.TimesheetRepository,
	referenceRepo timesheet.ReferenceRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		tx:                  tx,
		TimesheetRepository: timesheetRepo,
		ReferenceRepository: referenceRepo,
		now:                 time.Now,
	}
}

// GetWeek implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetWeek(ctx context.Context, userID int64, query timesheet.WeekQuery) (timesheet.Response, error) {
	if err := query.Validate(); err != nil {
		return timesheet.Response{}, err
	}
	weekStart := query.WeekStart()

	sheet, err := s.TimesheetRepository.GetByUserAndWeek(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return timesheet.NewResponse(timesheet.Shell(userID, weekStart)), nil
		}
		return timesheet.Response{}, fmt.Errorf("get timesheet week: %w", err)
	}
	sheet.Entries, err = s.TimesheetRepository.ListEntries(ctx, sheet.ID)
	if err != nil {
		return timesheet.Response{}, fmt.Errorf("list timesheet entries: %w", err)
	}
	return timesheet.NewResponse(sheet), nil
}

// SaveWeek implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) SaveWeek(ctx context.Context, userID int64, req timesheet.SaveWeekRequest) (timesheet.Response, error) {
	if err := req.Validate(); err != nil {
		return timesheet.Response{}, err
	}
	entries := req.ToEntries()

	var saved timesheet.Timesheet
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		sheet, err := s.TimesheetRepository.LocateForUpdate(txCtx, userID, req.WeekStart())
		if err != nil {
			return fmt.Errorf("locate timesheet: %w", err)
		}

		sheet, err = s.reopen(txCtx, sheet)
		if err != nil {
			return err
		}

		if err := s.checkRefs(txCtx, entries); err != nil {
			return err
		}

		sheet.Entries, err = s.TimesheetRepository.ReplaceEntries(txCtx, sheet.ID, entries)
		if err != nil {
			return fmt.Errorf("replace timesheet entries: %w", err)
		}
		saved = sheet
		return nil
	})
	if err != nil {
		return timesheet.Response{}, err
	}

	metrics.TimesheetSaves.Inc()
	return timesheet.NewResponse(saved), nil
}

// reopen enforces the edit guard on a locked timesheet and moves a rejected
// week back to draft.
func (s *TimesheetServiceImpl) reopen(ctx context.Context, sheet timesheet.Timesheet) (timesheet.Timesheet, error) {
	if err := approval.CheckMutate(sheet.Status.State()); err != nil {
		return timesheet.Timesheet{}, err
	}
	if sheet.Status != timesheet.StatusRejected {
		return sheet, nil
	}
	reopened, err := s.TimesheetRepository.UpdateStatus(ctx, sheet.ID, timesheet.Transition{
		Status:        timesheet.StatusDraft,
		ReviewComment: sheet.ReviewComment,
	})
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("reopen timesheet: %w", err)
	}
	return reopened, nil
}

func (s *TimesheetServiceImpl) checkRefs(ctx context.Context, entries []timesheet.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	projectIDs, taskIDs := timesheet.RefIDs(entries)
	refs, err := s.ReferenceRepository.ResolveRefs(ctx, projectIDs, taskIDs)
	if err != nil {
		return fmt.Errorf("resolve entry references: %w", err)
	}
	return timesheet.CheckRefs(entries, refs)
}

// SubmitWeek implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) SubmitWeek(ctx context.Context, userID int64, req timesheet.SubmitWeekRequest) (timesheet.Response, error) {
	if err := req.Validate(); err != nil {
		return timesheet.Response{}, err
	}

	var submitted timesheet.Timesheet
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		found, err := s.TimesheetRepository.GetByUserAndWeek(txCtx, userID, req.WeekStart())
		if err != nil {
			if errors.Is(err, timesheet.ErrTimesheetNotFound) {
				return timesheet.ErrNothingToSubmit
			}
			return err
		}
		sheet, err := s.TimesheetRepository.GetByIDForUpdate(txCtx, found.ID)
		if err != nil {
			return err
		}
		if err := approval.CheckSubmit(sheet.Status.State()); err != nil {
			return err
		}

		entries, err := s.TimesheetRepository.ListEntries(txCtx, sheet.ID)
		if err != nil {
			return fmt.Errorf("list timesheet entries: %w", err)
		}
		if len(entries) == 0 {
			return timesheet.ErrNothingToSubmit
		}

		now := s.now()
		submitted, err = s.TimesheetRepository.UpdateStatus(txCtx, sheet.ID, timesheet.Transition{
			Status:        timesheet.StatusSubmitted,
			SubmittedAt:   &now,
			ReviewComment: sheet.ReviewComment,
		})
		if err != nil {
			return fmt.Errorf("submit timesheet: %w", err)
		}
		submitted.Entries = entries
		return nil
	})
	if err != nil {
		return timesheet.Response{}, err
	}
	return timesheet.NewResponse(submitted), nil
}

// ReviewWeek implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ReviewWeek(ctx context.Context, reviewer user.Principal, req timesheet.ReviewRequest) (timesheet.Response, error) {
	if err := req.Validate(); err != nil {
		return timesheet.Response{}, err
	}
	action, ok := approval.ParseAction(req.Action)
	if !ok {
		return timesheet.Response{}, approval.ErrInvalidAction
	}

	var reviewed timesheet.Timesheet
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		sheet, err := s.TimesheetRepository.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}
		if err := approval.CheckReviewer(reviewer, sheet.UserID); err != nil {
			return err
		}
		if err := approval.CheckReview(sheet.Status.State()); err != nil {
			return err
		}

		transition := timesheet.Transition{
			Status:        timesheet.Status(action.Outcome()),
			SubmittedAt:   sheet.SubmittedAt,
			ReviewComment: req.Comment,
		}
		if action == approval.ActionApprove {
			now := s.now()
			transition.ApprovedAt = &now
			transition.ApprovedBy = &reviewer.ID
		}

		reviewed, err = s.TimesheetRepository.UpdateStatus(txCtx, sheet.ID, transition)
		if err != nil {
			return fmt.Errorf("review timesheet: %w", err)
		}
		reviewed.Entries, err = s.TimesheetRepository.ListEntries(txCtx, sheet.ID)
		return err
	})
	if err != nil {
		return timesheet.Response{}, err
	}

	metrics.ApprovalDecisions.WithLabelValues(metrics.SubjectTimesheet, string(action)).Inc()
	slog.Info("timesheet reviewed", "id", reviewed.ID, "reviewer_id", reviewer.ID, "status", reviewed.Status)
	return timesheet.NewResponse(reviewed), nil
}

// DeleteEntry implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) DeleteEntry(ctx context.Context, userID int64, entryID int64) error {
	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, sheet, err := s.TimesheetRepository.GetEntryOwnerForUpdate(txCtx, entryID)
		if err != nil {
			return err
		}
		// other users' entries look missing rather than forbidden
		if sheet.UserID != userID {
			return timesheet.ErrEntryNotFound
		}
		if _, err := s.reopen(txCtx, sheet); err != nil {
			return err
		}
		return s.TimesheetRepository.DeleteEntry(txCtx, entryID)
	})
}

// ListForReview implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListForReview(ctx context.Context, query timesheet.ListQuery) ([]timesheet.SummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	status := timesheet.StatusSubmitted
	if query.Status != "" {
		status = timesheet.Status(query.Status)
	}
	sheets, err := s.TimesheetRepository.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list timesheets for review: %w", err)
	}
	resp := make([]timesheet.SummaryResponse, 0, len(sheets))
	for _, sheet := range sheets {
		resp = append(resp, timesheet.NewSummaryResponse(sheet))
	}
	return resp, nil
}
