package servicetest

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
)

type dayKey struct {
	userID int64
	day    time.Time
}

// Attendance is an in-memory attendance.AttendanceRepository mirroring the
// guarded SQL writes of the PostgreSQL repository.
type Attendance struct {
	mu      sync.Mutex
	nextID  int64
	records map[dayKey]attendance.Record
}

func NewAttendance() *Attendance {
	return &Attendance{records: map[dayKey]attendance.Record{}}
}

func (m *Attendance) GetByUserAndDate(ctx context.Context, userID int64, day time.Time) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[dayKey{userID, day}]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (m *Attendance) UpsertClockIn(ctx context.Context, userID int64, day time.Time, at time.Time) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := dayKey{userID, day}
	r, ok := m.records[key]
	if !ok {
		m.nextID++
		r = attendance.Record{ID: m.nextID, UserID: userID, WorkDate: day, CreatedAt: at}
	}
	r = r.ClockIn(at)
	m.records[key] = r
	return r, nil
}

func (m *Attendance) ClockOut(ctx context.Context, userID int64, day time.Time, at time.Time) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := dayKey{userID, day}
	r, ok := m.records[key]
	if !ok {
		return attendance.Record{}, attendance.ErrNotCheckedIn
	}
	if err := r.CheckClockOut(); err != nil {
		return attendance.Record{}, err
	}
	if at.Before(*r.CheckInAt) {
		at = *r.CheckInAt
	}
	r.CheckOutAt = &at
	r.UpdatedAt = at
	m.records[key] = r
	return r, nil
}

func (m *Attendance) Overwrite(ctx context.Context, userID int64, day time.Time, o attendance.Override) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := dayKey{userID, day}
	r, ok := m.records[key]
	if !ok {
		m.nextID++
		r = attendance.Record{ID: m.nextID, UserID: userID, WorkDate: day}
	}
	r.Status, r.CheckInAt, r.CheckOutAt = o.Status, o.CheckInAt, o.CheckOutAt
	m.records[key] = r
	return r, nil
}

func (m *Attendance) ApplyCheckIn(ctx context.Context, userID int64, day time.Time, at time.Time) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := dayKey{userID, day}
	r, ok := m.records[key]
	if !ok {
		m.nextID++
		r = attendance.Record{ID: m.nextID, UserID: userID, WorkDate: day}
	}
	if r.CheckOutAt != nil && r.CheckOutAt.Before(at) {
		return attendance.Record{}, attendance.ErrCheckInAfterCheckOut
	}
	r.CheckInAt = &at
	r.Status = attendance.StatusPresent
	m.records[key] = r
	return r, nil
}

func (m *Attendance) ApplyCheckOut(ctx context.Context, userID int64, day time.Time, at time.Time) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := dayKey{userID, day}
	r, ok := m.records[key]
	if !ok || r.CheckInAt == nil || r.CheckInAt.After(at) {
		return attendance.Record{}, attendance.ErrNoCheckInToClose
	}
	r.CheckOutAt = &at
	m.records[key] = r
	return r, nil
}

func (m *Attendance) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Record
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if r, ok := m.records[dayKey{userID, d}]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Attendance) ListByDate(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Record
	for k, r := range m.records {
		if k.day.Equal(day) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Put stores r as-is.
func (m *Attendance) Put(r attendance.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[dayKey{r.UserID, r.WorkDate}] = r
}

func (m *Attendance) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
