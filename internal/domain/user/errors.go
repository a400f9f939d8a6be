package user

import "github.com/cmlabs-hris/ops-backend-go/internal/pkg/apperror"

var (
	ErrUserNotFound            = apperror.New(apperror.KindNotFound, "user not found")
	ErrUserEmailExists         = apperror.New(apperror.KindConflict, "email already registered")
	ErrSSOSubjectLinked        = apperror.New(apperror.KindConflict, "sso subject already linked to another user")
	ErrUnknownManager          = apperror.New(apperror.KindValidation, "manager does not exist")
	ErrInsufficientPermissions = apperror.New(apperror.KindForbidden, "insufficient permissions")
	ErrSelfReview              = apperror.New(apperror.KindForbidden, "reviewers cannot decide their own requests")
)
