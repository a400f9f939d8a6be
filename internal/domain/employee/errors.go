package employee

import "github.com/cmlabs-hris/ops-backend-go/internal/pkg/apperror"

var (
	ErrRoleChangeForbidden = apperror.New(apperror.KindForbidden, "only admins can change roles")
	ErrSelfDeactivation    = apperror.New(apperror.KindValidation, "you cannot deactivate your own account")
)
