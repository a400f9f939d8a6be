package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, loc *time.Location) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		loc:                 loc,
		now:                 time.Now,
	}
}

// Summary implements dashboard.DashboardService.
// Sections load in parallel, one query each.
func (s *DashboardServiceImpl) Summary(ctx context.Context, principal user.Principal) (dashboard.Response, error) {
	today := utils.DateOf(s.now(), s.loc)
	weekStart := utils.MondayOf(today)

	var (
		snapshot dashboard.AttendanceSnapshot
		week     dashboard.WeekSnapshot
		tasks    dashboard.TaskCounts
		queue    dashboard.ReviewQueue
		team     dashboard.TeamCounts
	)
	reviewer := principal.Can(user.PermissionApprovalReview)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snapshot, err = s.GetAttendance(gCtx, principal.ID, today)
		return err
	})

	g.Go(func() error {
		var err error
		week, err = s.GetWeek(gCtx, principal.ID, weekStart)
		return err
	})

	g.Go(func() error {
		var err error
		tasks, err = s.CountOpenTasks(gCtx, principal.ID)
		return err
	})

	if reviewer {
		g.Go(func() error {
			var err error
			queue, err = s.CountReviewQueue(gCtx, principal.ID)
			return err
		})

		g.Go(func() error {
			var err error
			team, err = s.CountTeam(gCtx, today)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return dashboard.Response{}, fmt.Errorf("load dashboard: %w", err)
	}

	resp := dashboard.Response{
		Date:  utils.FormatDate(today),
		Today: todayResponse(snapshot),
		Week:  weekResponse(weekStart, week),
		Tasks: tasks,
	}
	if reviewer {
		resp.Review = &queue
		stats := teamStats(team)
		resp.Team = &stats
	}
	return resp, nil
}

func todayResponse(s dashboard.AttendanceSnapshot) dashboard.TodayResponse {
	if !s.Found {
		return dashboard.TodayResponse{Status: string(attendance.StatusNotCheckedIn)}
	}
	return dashboard.TodayResponse{
		Status:     s.Status,
		CheckInAt:  s.CheckInAt,
		CheckOutAt: s.CheckOutAt,
	}
}

func weekResponse(weekStart time.Time, w dashboard.WeekSnapshot) dashboard.WeekResponse {
	resp := dashboard.WeekResponse{
		WeekStartDate: utils.FormatDate(weekStart),
		Status:        string(timesheet.StatusDraft),
		TotalHours:    decimal.Zero,
	}
	if w.Found {
		resp.Status = w.Status
		resp.TotalHours = w.TotalHours
	}
	return resp
}

// teamStats treats users without a row as not yet checked in; the summary is always for today.
func teamStats(c dashboard.TeamCounts) dashboard.TeamStats {
	stats := dashboard.TeamStats{
		Present:      c.Present,
		Absent:       c.Absent,
		NotCheckedIn: max(c.Total-c.Present-c.Absent, 0),
		Total:        c.Total,
	}
	if c.Total > 0 {
		stats.PresentPercent = math.Round(float64(c.Present)/float64(c.Total)*10000) / 100
	}
	return stats
}
