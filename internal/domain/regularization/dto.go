package regularization

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	WorkDate     string `json:"work_date" validate:"required,date"`
	Type         string `json:"type" validate:"required,oneof=check_in check_out"`
	ProposedTime string `json:"proposed_time" validate:"required,hhmm"`
	Reason       string `json:"reason" validate:"required,max=1000"`
}

func (r *CreateRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{Field: "reason", Message: "is required"}}
	}
	return nil
}

type DecisionRequest struct {
	ID      int64   `json:"-"`
	Action  string  `json:"action" validate:"required,oneof=approve reject"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

func (r *DecisionRequest) Validate() error {
	return validator.Struct(r)
}

type ListQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

func (q *ListQuery) Validate() error {
	return validator.Struct(q)
}

type Response struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	OwnerName     string     `json:"owner_name,omitempty"`
	WorkDate      string     `json:"work_date"`
	Type          Type       `json:"type"`
	ProposedTime  time.Time  `json:"proposed_time"`
	Reason        string     `json:"reason"`
	Status        Status     `json:"status"`
	ReviewedBy    *int64     `json:"reviewed_by"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	ReviewComment *string    `json:"review_comment"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewResponse(r Request) Response {
	return Response{
		ID:            r.ID,
		UserID:        r.UserID,
		OwnerName:     r.OwnerName,
		WorkDate:      utils.FormatDate(r.WorkDate),
		Type:          r.Type,
		ProposedTime:  r.ProposedTime,
		Reason:        r.Reason,
		Status:        r.Status,
		ReviewedBy:    r.ReviewedBy,
		ReviewedAt:    r.ReviewedAt,
		ReviewComment: r.ReviewComment,
		CreatedAt:     r.CreatedAt,
	}
}

func NewResponses(rs []Request) []Response {
	out := make([]Response, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewResponse(r))
	}
	return out
}
