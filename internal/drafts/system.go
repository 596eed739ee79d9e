package drafts

import (
	"context"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/pkg/pagination"
)

// System defines the public contract for draft domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Draft], error)

	Find(ctx context.Context, id uuid.UUID) (*Draft, error)
	Create(ctx context.Context, cmd CreateCommand) (*Draft, error)
	Approve(ctx context.Context, id uuid.UUID, cmd ApproveCommand) (*Draft, error)
	Reject(ctx context.Context, id uuid.UUID) (*Draft, error)
	MarkSent(ctx context.Context, id uuid.UUID) (*Draft, error)
}
