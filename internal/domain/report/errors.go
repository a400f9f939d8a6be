package report

import "github.com/cmlabs-hris/ops-backend-go/internal/pkg/apperror"

var (
	ErrInvalidRange = apperror.New(apperror.KindValidation, "from must not be after to")
	ErrRangeTooWide = apperror.New(apperror.KindValidation, "report range cannot exceed 366 days")
	ErrUnknownKind  = apperror.New(apperror.KindNotFound, "unknown report")
)
