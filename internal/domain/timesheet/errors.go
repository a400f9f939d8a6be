package timesheet

import (
	"fmt"

	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
)

var (
	ErrTimesheetNotFound = apperror.New(apperror.KindNotFound, "timesheet not found")
	ErrEntryNotFound     = apperror.New(apperror.KindNotFound, "timesheet entry not found")
	ErrNotWeekStart      = apperror.New(apperror.KindValidation, "week start date must be a Monday")
	ErrNothingToSubmit   = apperror.New(apperror.KindInvalidTransition, "nothing to submit for this week")
)

type entryErrors struct {
	validator.ValidationErrors
}

func (e *entryErrors) add(i int, field, message string) {
	e.Add(fmt.Sprintf("entries[%d].%s", i, field), message)
}

func (e *entryErrors) err() error {
	return e.Err()
}
