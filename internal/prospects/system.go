package prospects

import (
	"context"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/pkg/pagination"
)

// System defines the public contract for prospect domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prospect], error)

	Find(ctx context.Context, id uuid.UUID) (*Prospect, error)
	FindByProfileURL(ctx context.Context, profileURL string) (*Prospect, error)
	Upsert(ctx context.Context, cmd UpsertCommand) (*Prospect, error)
}
