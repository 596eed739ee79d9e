package conversations

import (
	"context"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/pkg/pagination"
)

// System defines the public contract for conversation domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Conversation], error)

	Find(ctx context.Context, id uuid.UUID) (*Conversation, error)
	Messages(ctx context.Context, id uuid.UUID) ([]Message, error)
	Ingest(ctx context.Context, cmd IngestCommand) (*Conversation, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Conversation, error)
}
