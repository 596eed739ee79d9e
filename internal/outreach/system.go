package outreach

import (
	"context"
	"time"
)

// System defines the public contract for the outreach engine.
type System interface {
	Handler() *Handler

	// Catalog returns the immutable sequence definitions.
	Catalog() *Catalog

	// Report runs a full evaluation pass over all active conversations
	// as of now and returns the ranked contact list.
	Report(ctx context.Context, now time.Time) (*Report, error)

	// Export runs a pass and uploads the report as a timestamped JSON
	// blob, returning the blob key.
	Export(ctx context.Context, now time.Time) (string, error)
}
