package attendance

import "github.com/cmlabs-hris/ops-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	ErrNotCheckedIn           = apperror.New(apperror.KindInvalidTransition, "you have not checked in yet")
	ErrAlreadyCheckedOut      = apperror.New(apperror.KindInvalidTransition, "you have already checked out")
	ErrCheckOutBeforeCheckIn  = apperror.New(apperror.KindValidation, "check-out cannot be earlier than check-in")
	ErrCheckOutWithoutCheckIn = apperror.New(apperror.KindValidation, "check-out requires a check-in")
	ErrInvalidStatus          = apperror.New(apperror.KindValidation, "status must be present or absent")
	ErrInvalidRange           = apperror.New(apperror.KindValidation, "from must not be after to")

	// Corrections applied from approved regularizations
	ErrNoCheckInToClose     = apperror.New(apperror.KindInvalidTransition, "check-out correction needs an existing check-in at or before the proposed time")
	ErrCheckInAfterCheckOut = apperror.New(apperror.KindInvalidTransition, "check-in correction would fall after the recorded check-out")

	ErrAttendanceNotFound = apperror.New(apperror.KindNotFound, "attendance record not found")
)
