package analyses

import (
	"context"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/pkg/pagination"
)

// System defines the public contract for analysis domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, id uuid.UUID) (*Analysis, error)
	FindByConversation(ctx context.Context, conversationID uuid.UUID) (*Analysis, error)

	// Analyze runs the AI workflow for one conversation, upserting the
	// stored analysis. A fresh stored result is returned as-is unless
	// force is set.
	Analyze(ctx context.Context, conversationID uuid.UUID, force bool) (*Analysis, error)

	// AnalyzeBatch refreshes analyses for active conversations whose
	// stored result is stale or missing, up to limit conversations.
	AnalyzeBatch(ctx context.Context, limit int) (*BatchSummary, error)
}
