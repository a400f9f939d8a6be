package timesheet

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var maxHours = decimal.NewFromInt(24)

type WeekQuery struct {
	WeekStartDate string `json:"weekStartDate" validate:"required,date"`
}

func (q *WeekQuery) Validate() error {
	_, err := parseWeekStart(q.WeekStartDate)
	return err
}

func (q *WeekQuery) WeekStart() time.Time {
	t, _ := utils.ParseDate(q.WeekStartDate)
	return t
}

type EntryRequest struct {
	ProjectID int64           `json:"project_id" validate:"required,gt=0"`
	TaskID    *int64          `json:"task_id,omitempty" validate:"omitempty,gt=0"`
	WorkDate  string          `json:"work_date" validate:"required,date"`
	Hours     decimal.Decimal `json:"hours"`
	Note      *string         `json:"note,omitempty" validate:"omitempty,max=2000"`
}

type SaveWeekRequest struct {
	WeekStartDate string         `json:"week_start_date" validate:"required,date"`
	Entries       []EntryRequest `json:"entries" validate:"max=200,dive"`
}

// Validate checks every entry in one pass and reports all failures together.
func (r *SaveWeekRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	weekStart, err := parseWeekStart(r.WeekStartDate)
	if err != nil {
		return err
	}
	weekEnd := utils.WeekEnd(weekStart)

	var errs entryErrors
	for i, e := range r.Entries {
		day, _ := utils.ParseDate(e.WorkDate)
		if !utils.InRange(day, weekStart, weekEnd) {
			errs.add(i, "work_date", "must fall within the week")
		}
		if !e.Hours.IsPositive() || e.Hours.GreaterThan(maxHours) {
			errs.add(i, "hours", "must be greater than 0 and at most 24")
		} else if !e.Hours.Equal(e.Hours.Round(2)) {
			errs.add(i, "hours", "must have at most two decimal places")
		}
	}
	return errs.err()
}

func (r *SaveWeekRequest) WeekStart() time.Time {
	t, _ := utils.ParseDate(r.WeekStartDate)
	return t
}

// ToEntries converts validated input into entries in request order.
func (r *SaveWeekRequest) ToEntries() []Entry {
	out := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		day, _ := utils.ParseDate(e.WorkDate)
		out = append(out, Entry{
			ProjectID: e.ProjectID,
			TaskID:    e.TaskID,
			WorkDate:  day,
			Hours:     e.Hours,
			Note:      e.Note,
		})
	}
	return out
}

type SubmitWeekRequest struct {
	WeekStartDate string `json:"week_start_date" validate:"required,date"`
}

func (r *SubmitWeekRequest) Validate() error {
	_, err := parseWeekStart(r.WeekStartDate)
	return err
}

func (r *SubmitWeekRequest) WeekStart() time.Time {
	t, _ := utils.ParseDate(r.WeekStartDate)
	return t
}

type ReviewRequest struct {
	ID      int64   `json:"-"`
	Action  string  `json:"action" validate:"required,oneof=approve reject"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

func (r *ReviewRequest) Validate() error {
	return validator.Struct(r)
}

type ListQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=draft submitted approved rejected"`
}

func (q *ListQuery) Validate() error {
	return validator.Struct(q)
}

func parseWeekStart(s string) (time.Time, error) {
	day, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{{Field: "week_start_date", Message: "must be a date in YYYY-MM-DD format"}}
	}
	if !utils.IsMonday(day) {
		return time.Time{}, ErrNotWeekStart
	}
	return day, nil
}

type EntryResponse struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"project_id"`
	TaskID    *int64  `json:"task_id"`
	WorkDate  string  `json:"work_date"`
	Hours     float64 `json:"hours"`
	Note      *string `json:"note"`
}

type Response struct {
	ID            *int64          `json:"id"`
	UserID        int64           `json:"user_id"`
	WeekStartDate string          `json:"week_start_date"`
	Status        Status          `json:"status"`
	SubmittedAt   *time.Time      `json:"submitted_at"`
	ApprovedAt    *time.Time      `json:"approved_at"`
	ApprovedBy    *int64          `json:"approved_by"`
	ReviewComment *string         `json:"review_comment"`
	TotalHours    float64         `json:"total_hours"`
	Entries       []EntryResponse `json:"entries"`
}

func NewResponse(t Timesheet) Response {
	resp := Response{
		UserID:        t.UserID,
		WeekStartDate: utils.FormatDate(t.WeekStartDate),
		Status:        t.Status,
		SubmittedAt:   t.SubmittedAt,
		ApprovedAt:    t.ApprovedAt,
		ApprovedBy:    t.ApprovedBy,
		ReviewComment: t.ReviewComment,
		TotalHours:    t.SumHours().InexactFloat64(),
		Entries:       make([]EntryResponse, 0, len(t.Entries)),
	}
	if t.Persisted() {
		id := t.ID
		resp.ID = &id
	}
	for _, e := range t.Entries {
		resp.Entries = append(resp.Entries, EntryResponse{
			ID:        e.ID,
			ProjectID: e.ProjectID,
			TaskID:    e.TaskID,
			WorkDate:  utils.FormatDate(e.WorkDate),
			Hours:     e.Hours.InexactFloat64(),
			Note:      e.Note,
		})
	}
	return resp
}

// SummaryResponse is a review queue row without entries.
type SummaryResponse struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	OwnerName     string     `json:"owner_name"`
	WeekStartDate string     `json:"week_start_date"`
	Status        Status     `json:"status"`
	SubmittedAt   *time.Time `json:"submitted_at"`
	TotalHours    float64    `json:"total_hours"`
}

func NewSummaryResponse(t Timesheet) SummaryResponse {
	return SummaryResponse{
		ID:            t.ID,
		UserID:        t.UserID,
		OwnerName:     t.OwnerName,
		WeekStartDate: utils.FormatDate(t.WeekStartDate),
		Status:        t.Status,
		SubmittedAt:   t.SubmittedAt,
		TotalHours:    t.TotalHours.InexactFloat64(),
	}
}
