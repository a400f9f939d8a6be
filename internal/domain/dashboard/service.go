package dashboard

import (
	"context"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
)

type DashboardService interface {
	// Summary returns the caller's dashboard. Review and team sections are
	// filled only for principals allowed to review.
	Summary(ctx context.Context, principal user.Principal) (Response, error)
}
