package approval

import "github.com/cmlabs-hris/ops-backend-go/internal/pkg/apperror"

var (
	ErrImmutable        = apperror.New(apperror.KindInvalidTransition, "approved items cannot be modified")
	ErrLocked           = apperror.New(apperror.KindInvalidTransition, "submitted items cannot be modified until reviewed")
	ErrAlreadySubmitted = apperror.New(apperror.KindInvalidTransition, "only draft or rejected items can be submitted")
	ErrNotReviewable    = apperror.New(apperror.KindInvalidTransition, "item is not awaiting review")
	ErrInvalidAction    = apperror.New(apperror.KindValidation, "action must be approve or reject")
)
