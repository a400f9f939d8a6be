package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
)

const defaultHistoryDays = 30

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	user.UserRepository

	loc *time.Location
	now func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		loc:                  loc,
		now:                  time.Now,
	}
}

func (s *AttendanceServiceImpl) today() (time.Time, time.Time) {
	now := s.now()
	return now, utils.DateOf(now, s.loc)
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, userID int64) (attendance.RecordResponse, error) {
	_, day := s.today()
	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.NewRecordResponse(attendance.Placeholder(userID, day)), nil
		}
		return attendance.RecordResponse{}, fmt.Errorf("get today's attendance: %w", err)
	}
	return attendance.NewRecordResponse(record), nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, userID int64) (attendance.RecordResponse, error) {
	now, day := s.today()
	record, err := s.AttendanceRepository.UpsertClockIn(ctx, userID, day, now)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("clock in: %w", err)
	}
	metrics.ClockEvents.WithLabelValues(metrics.EventClockIn).Inc()
	return attendance.NewRecordResponse(record), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, userID int64) (attendance.RecordResponse, error) {
	now, day := s.today()
	record, err := s.AttendanceRepository.ClockOut(ctx, userID, day, now)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	metrics.ClockEvents.WithLabelValues(metrics.EventClockOut).Inc()
	return attendance.NewRecordResponse(record), nil
}

// ManagerUpsert implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ManagerUpsert(ctx context.Context, actor user.Principal, req attendance.ManagerUpsertRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	day, _ := utils.ParseDate(req.WorkDate)
	status, ok := attendance.ParseStatus(req.Status)
	if !ok || status == attendance.StatusNotCheckedIn {
		return attendance.RecordResponse{}, attendance.ErrInvalidStatus
	}

	override := attendance.Override{Status: status}
	if req.CheckIn != nil {
		at, err := validator.CombineDateClock(day, *req.CheckIn, s.loc)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		override.CheckInAt = &at
	}
	if req.CheckOut != nil {
		at, err := validator.CombineDateClock(day, *req.CheckOut, s.loc)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		override.CheckOutAt = &at
	}
	override, err := override.Normalize()
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	var record attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.UserRepository.GetByID(txCtx, req.UserID); err != nil {
			return err
		}
		var err error
		record, err = s.AttendanceRepository.Overwrite(txCtx, req.UserID, day, override)
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("attendance overwritten", "actor_id", actor.ID, "user_id", req.UserID, "work_date", req.WorkDate, "status", status)
	return attendance.NewRecordResponse(record), nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, userID int64, query attendance.HistoryQuery) ([]attendance.RecordResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	_, to := s.today()
	if query.To != "" {
		to, _ = utils.ParseDate(query.To)
	}
	from := to.AddDate(0, 0, -defaultHistoryDays)
	if query.From != "" {
		from, _ = utils.ParseDate(query.From)
	}
	if from.After(to) {
		return nil, attendance.ErrInvalidRange
	}

	records, err := s.AttendanceRepository.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance history: %w", err)
	}
	resp := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, attendance.NewRecordResponse(r))
	}
	return resp, nil
}

// TeamForDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TeamForDate(ctx context.Context, query attendance.TeamQuery) (attendance.TeamResponse, error) {
	if err := query.Validate(); err != nil {
		return attendance.TeamResponse{}, err
	}

	_, today := s.today()
	day := today
	if query.Date != "" {
		day, _ = utils.ParseDate(query.Date)
	}

	users, err := s.UserRepository.ListActive(ctx, query.Department)
	if err != nil {
		return attendance.TeamResponse{}, fmt.Errorf("list active users: %w", err)
	}
	records, err := s.AttendanceRepository.ListByDate(ctx, day)
	if err != nil {
		return attendance.TeamResponse{}, fmt.Errorf("list attendance for date: %w", err)
	}

	byUser := make(map[int64]attendance.Record, len(records))
	for _, r := range records {
		byUser[r.UserID] = r
	}

	fallback := attendance.DefaultStatus(day, today)
	members := make([]attendance.TeamMemberResponse, 0, len(users))
	for _, u := range users {
		record, ok := byUser[u.ID]
		if !ok {
			record = attendance.Placeholder(u.ID, day)
			record.Status = fallback
		}
		members = append(members, attendance.TeamMemberResponse{
			UserID:     u.ID,
			FullName:   u.FullName,
			Email:      u.Email,
			Department: u.Department,
			Attendance: attendance.NewRecordResponse(record),
		})
	}

	return attendance.TeamResponse{Date: utils.FormatDate(day), Members: members}, nil
}
