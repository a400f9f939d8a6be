package attendance

import (
	"time"
)

type Status string

const (
	StatusNotCheckedIn Status = "not_checked_in"
	StatusPresent      Status = "present"
	StatusAbsent       Status = "absent"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusNotCheckedIn, StatusPresent, StatusAbsent:
		return st, true
	}
	return "", false
}

// Record is one user's attendance for one calendar day. A zero ID marks a
// synthetic record that has not been persisted.
type Record struct {
	ID         int64
	UserID     int64
	WorkDate   time.Time
	Status     Status
	CheckInAt  *time.Time
	CheckOutAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Placeholder is the not-yet-persisted record returned before the first clock-in.
func Placeholder(userID int64, day time.Time) Record {
	return Record{UserID: userID, WorkDate: day, Status: StatusNotCheckedIn}
}

func (r Record) Persisted() bool {
	return r.ID != 0
}

// Worked is the span between check-in and check-out, zero while open.
func (r Record) Worked() time.Duration {
	if r.CheckInAt == nil || r.CheckOutAt == nil {
		return 0
	}
	return r.CheckOutAt.Sub(*r.CheckInAt)
}

// CheckClockOut reports whether r can accept a check-out.
func (r Record) CheckClockOut() error {
	if r.CheckInAt == nil {
		return ErrNotCheckedIn
	}
	if r.CheckOutAt != nil {
		return ErrAlreadyCheckedOut
	}
	return nil
}

// ClockIn applies a clock-in at t. An existing check-in is kept.
func (r Record) ClockIn(t time.Time) Record {
	if r.CheckInAt == nil {
		r.CheckInAt = &t
	}
	r.Status = StatusPresent
	r.UpdatedAt = t
	return r
}

// Override is a privileged rewrite of a day's record.
type Override struct {
	Status     Status
	CheckInAt  *time.Time
	CheckOutAt *time.Time
}

// Normalize clears timestamps for any status other than present and checks ordering.
func (o Override) Normalize() (Override, error) {
	if o.Status != StatusPresent {
		o.CheckInAt = nil
		o.CheckOutAt = nil
		return o, nil
	}
	if o.CheckOutAt != nil && o.CheckInAt == nil {
		return o, ErrCheckOutWithoutCheckIn
	}
	if o.CheckInAt != nil && o.CheckOutAt != nil && o.CheckOutAt.Before(*o.CheckInAt) {
		return o, ErrCheckOutBeforeCheckIn
	}
	return o, nil
}

// DefaultStatus is the status shown for a user without a row on day.
// Past days count as absent; today and later are still open.
func DefaultStatus(day, today time.Time) Status {
	if day.Before(today) {
		return StatusAbsent
	}
	return StatusNotCheckedIn
}

// TeamMember pairs a directory entry with that user's record for a day.
type TeamMember struct {
	UserID     int64
	FullName   string
	Email      string
	Department *string
	Record     Record
}
