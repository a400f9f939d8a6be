package regularization

import (
	"context"
	"time"
)

type RegularizationRepository interface {
	// LockSlot serializes creators of the same (user, day, type) until the
	// surrounding transaction ends.
	LockSlot(ctx context.Context, userID int64, day time.Time, typ Type) error
	HasPending(ctx context.Context, userID int64, day time.Time, typ Type) (bool, error)
	Create(ctx context.Context, req Request) (Request, error)

	GetByID(ctx context.Context, id int64) (Request, error)
	// GetByIDForUpdate row-locks the request for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (Request, error)
	Decide(ctx context.Context, id int64, d Decision) (Request, error)

	ListByUser(ctx context.Context, userID int64, status *Status) ([]Request, error)
	ListByStatus(ctx context.Context, status Status) ([]Request, error)
}
