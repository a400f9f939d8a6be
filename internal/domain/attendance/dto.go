package attendance

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
)

type RecordResponse struct {
	ID            *int64     `json:"id"`
	UserID        int64      `json:"user_id"`
	WorkDate      string     `json:"work_date"`
	Status        Status     `json:"status"`
	CheckInAt     *time.Time `json:"check_in_at"`
	CheckOutAt    *time.Time `json:"check_out_at"`
	WorkedMinutes *int       `json:"worked_minutes,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func NewRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		UserID:     r.UserID,
		WorkDate:   utils.FormatDate(r.WorkDate),
		Status:     r.Status,
		CheckInAt:  r.CheckInAt,
		CheckOutAt: r.CheckOutAt,
	}
	if r.Persisted() {
		id, updated := r.ID, r.UpdatedAt
		resp.ID = &id
		resp.UpdatedAt = &updated
	}
	if r.CheckOutAt != nil {
		minutes := int(r.Worked().Minutes())
		resp.WorkedMinutes = &minutes
	}
	return resp
}

// ManagerUpsertRequest rewrites one employee's day. Times are HH:MM on WorkDate
// in the company timezone.
type ManagerUpsertRequest struct {
	UserID   int64   `json:"-"`
	WorkDate string  `json:"work_date" validate:"required,date"`
	Status   string  `json:"status" validate:"required,oneof=present absent"`
	CheckIn  *string `json:"check_in,omitempty" validate:"omitempty,hhmm"`
	CheckOut *string `json:"check_out,omitempty" validate:"omitempty,hhmm"`
}

func (r *ManagerUpsertRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	var errs validator.ValidationErrors
	if r.UserID <= 0 {
		errs.Add("user_id", "must be a positive id")
	}
	if r.CheckIn != nil && r.CheckOut != nil && r.Status == string(StatusPresent) && *r.CheckOut < *r.CheckIn {
		errs.Add("check_out", "must not be earlier than check_in")
	}
	return errs.Err()
}

type HistoryQuery struct {
	From string `json:"from" validate:"omitempty,date"`
	To   string `json:"to" validate:"omitempty,date"`
}

func (q *HistoryQuery) Validate() error {
	return validator.Struct(q)
}

type TeamQuery struct {
	Date       string  `json:"date" validate:"omitempty,date"`
	Department *string `json:"department,omitempty"`
}

func (q *TeamQuery) Validate() error {
	return validator.Struct(q)
}

type TeamMemberResponse struct {
	UserID     int64          `json:"user_id"`
	FullName   string         `json:"full_name"`
	Email      string         `json:"email"`
	Department *string        `json:"department"`
	Attendance RecordResponse `json:"attendance"`
}

type TeamResponse struct {
	Date    string               `json:"date"`
	Members []TeamMemberResponse `json:"members"`
}
