package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsEmpty(c.input), "IsEmpty(%q)", c.input)
	}
}

func TestIsValidEmail(t *testing.T) {
	for _, email := range []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"} {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range []string{"test@", "@example.com", "test@.com", "test@domain", ""} {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidClock(t *testing.T) {
	for _, s := range []string{"00:00", "09:05", "23:59"} {
		assert.True(t, IsValidClock(s), s)
	}
	for _, s := range []string{"24:00", "9:05", "09:60", "0905", ""} {
		assert.False(t, IsValidClock(s), s)
	}
}

func TestCombineDateClock(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	day := time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)

	got, err := CombineDateClock(day, "18:15", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 11, 6, 18, 15, 0, 0, loc), got)

	_, err = CombineDateClock(day, "25:00", loc)
	assert.Error(t, err)
}

type sampleEntry struct {
	WorkDate string  `json:"workDate" validate:"required,date"`
	Hours    float64 `json:"hours" validate:"gt=0,lte=24"`
}

type sampleRequest struct {
	Email   string        `json:"email" validate:"required,email"`
	At      string        `json:"at" validate:"omitempty,hhmm"`
	Kind    string        `json:"kind" validate:"required,oneof=check_in check_out"`
	Entries []sampleEntry `json:"entries" validate:"dive"`
}

func TestStruct(t *testing.T) {
	ok := sampleRequest{
		Email:   "a@b.cd",
		At:      "09:00",
		Kind:    "check_in",
		Entries: []sampleEntry{{WorkDate: "2024-11-04", Hours: 8}},
	}
	require.NoError(t, Struct(ok))

	bad := sampleRequest{
		Email:   "nope",
		At:      "9am",
		Kind:    "lunch",
		Entries: []sampleEntry{{WorkDate: "04/11/2024", Hours: 25}},
	}
	err := Struct(bad)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be a time in HH:MM format", fields["at"])
	assert.Contains(t, fields["kind"], "check_in check_out")
	assert.Equal(t, "must be a date in YYYY-MM-DD format", fields["entries[0].workDate"])
	assert.Equal(t, "must be at most 24", fields["entries[0].hours"])
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("weekStartDate", "must be a Monday")
	assert.EqualError(t, errs.Err(), "weekStartDate: must be a Monday")
}
