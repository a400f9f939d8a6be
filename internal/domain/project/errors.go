package project

import "github.com/cmlabs-hris/ops-backend-go/internal/pkg/apperror"

var (
	ErrProjectNotFound  = apperror.New(apperror.KindNotFound, "project not found")
	ErrTaskNotFound     = apperror.New(apperror.KindNotFound, "task not found")
	ErrInvalidDateRange = apperror.New(apperror.KindValidation, "end date cannot be before start date")
	ErrUnknownUser      = apperror.New(apperror.KindValidation, "referenced user does not exist")
	ErrNotAssignee      = apperror.New(apperror.KindForbidden, "only the assignee or a manager can move this task")
)
