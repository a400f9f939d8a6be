package regularization

import (
	"context"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
)

type RegularizationService interface {
	// Create fails with ErrDuplicatePending while an identical request awaits review.
	Create(ctx context.Context, userID int64, req CreateRequest) (Response, error)
	ListMine(ctx context.Context, userID int64, query ListQuery) ([]Response, error)
	// List returns requests in one status for reviewers; pending by default.
	List(ctx context.Context, query ListQuery) ([]Response, error)
	// Decide approves or rejects a pending request. Approval corrects the attendance row.
	Decide(ctx context.Context, reviewer user.Principal, req DecisionRequest) (Response, error)
}
