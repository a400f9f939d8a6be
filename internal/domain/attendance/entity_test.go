package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hh, mm int) time.Time {
	return time.Date(2024, 11, 6, hh, mm, 0, 0, time.UTC)
}

func TestRecord_ClockInKeepsFirstCheckIn(t *testing.T) {
	day := time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)
	r := Placeholder(7, day)
	assert.False(t, r.Persisted())
	assert.Equal(t, StatusNotCheckedIn, r.Status)

	r = r.ClockIn(at(9, 5))
	r = r.ClockIn(at(9, 10))

	require.NotNil(t, r.CheckInAt)
	assert.Equal(t, at(9, 5), *r.CheckInAt)
	assert.Equal(t, StatusPresent, r.Status)
}

func TestRecord_CheckClockOut(t *testing.T) {
	day := time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)
	r := Placeholder(7, day)
	assert.ErrorIs(t, r.CheckClockOut(), ErrNotCheckedIn)

	r = r.ClockIn(at(9, 5))
	assert.NoError(t, r.CheckClockOut())

	out := at(18, 15)
	r.CheckOutAt = &out
	assert.ErrorIs(t, r.CheckClockOut(), ErrAlreadyCheckedOut)
	assert.Equal(t, 9*time.Hour+10*time.Minute, r.Worked())
}

func TestOverride_Normalize(t *testing.T) {
	in, out := at(9, 0), at(17, 0)

	o, err := Override{Status: StatusAbsent, CheckInAt: &in, CheckOutAt: &out}.Normalize()
	require.NoError(t, err)
	assert.Nil(t, o.CheckInAt)
	assert.Nil(t, o.CheckOutAt)

	o, err = Override{Status: StatusPresent, CheckInAt: &in, CheckOutAt: &out}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, in, *o.CheckInAt)

	_, err = Override{Status: StatusPresent, CheckInAt: &out, CheckOutAt: &in}.Normalize()
	assert.ErrorIs(t, err, ErrCheckOutBeforeCheckIn)

	_, err = Override{Status: StatusPresent, CheckOutAt: &out}.Normalize()
	assert.ErrorIs(t, err, ErrCheckOutWithoutCheckIn)
}

func TestDefaultStatus(t *testing.T) {
	today := time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusAbsent, DefaultStatus(today.AddDate(0, 0, -1), today))
	assert.Equal(t, StatusNotCheckedIn, DefaultStatus(today, today))
	assert.Equal(t, StatusNotCheckedIn, DefaultStatus(today.AddDate(0, 0, 1), today))
}

func TestManagerUpsertRequest_Validate(t *testing.T) {
	in, out := "18:00", "09:00"
	req := ManagerUpsertRequest{UserID: 3, WorkDate: "2024-11-06", Status: "present", CheckIn: &in, CheckOut: &out}
	assert.Error(t, req.Validate())

	req = ManagerUpsertRequest{UserID: 3, WorkDate: "2024-11-06", Status: "absent", CheckIn: &in, CheckOut: &out}
	assert.NoError(t, req.Validate())

	req = ManagerUpsertRequest{UserID: 3, WorkDate: "06-11-2024", Status: "late"}
	assert.Error(t, req.Validate())
}
