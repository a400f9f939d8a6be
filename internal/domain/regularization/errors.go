package regularization

import "github.com/cmlabs-hris/ops-backend-go/internal/pkg/apperror"

var (
	ErrDuplicatePending = apperror.New(apperror.KindConflict, "a pending request already exists for this date and type")
	ErrFutureDate       = apperror.New(apperror.KindValidation, "work date cannot be in the future")
	ErrRequestNotFound  = apperror.New(apperror.KindNotFound, "regularization request not found")
	ErrAlreadyDecided   = apperror.New(apperror.KindInvalidTransition, "regularization request has already been decided")
)
