package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response is the home screen summary for the signed-in user.
type Response struct {
	Date   string        `json:"date"`
	Today  TodayResponse `json:"today"`
	Week   WeekResponse  `json:"week"`
	Tasks  TaskCounts    `json:"tasks"`
	Review *ReviewQueue  `json:"review,omitempty"`
	Team   *TeamStats    `json:"team,omitempty"`
}

type TodayResponse struct {
	Status     string     `json:"status"`
	CheckInAt  *time.Time `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`
}

type WeekResponse struct {
	WeekStartDate string          `json:"week_start_date"`
	Status        string          `json:"status"`
	TotalHours    decimal.Decimal `json:"total_hours"`
}

// TaskCounts covers open tasks assigned to the user.
type TaskCounts struct {
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Blocked    int64 `json:"blocked"`
}

// ReviewQueue counts items waiting on a reviewer, excluding their own.
type ReviewQueue struct {
	PendingRegularizations int64 `json:"pending_regularizations"`
	SubmittedTimesheets    int64 `json:"submitted_timesheets"`
}

// TeamStats is today's attendance split across active users.
type TeamStats struct {
	Present        int64   `json:"present"`
	Absent         int64   `json:"absent"`
	NotCheckedIn   int64   `json:"not_checked_in"`
	Total          int64   `json:"total"`
	PresentPercent float64 `json:"present_percent"`
}
