package outreach

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/internal/analyses"
	"github.com/cadencehq/cadence/internal/conversations"
	"github.com/cadencehq/cadence/pkg/repository"
	"github.com/cadencehq/cadence/pkg/storage"
)

type repo struct {
	db          *sql.DB
	analyses    analyses.System
	storage     storage.System
	catalog     *Catalog
	logger      *slog.Logger
	concurrency int
}

// New creates the outreach engine implementing the System interface.
// storage may be nil, which disables report export.
func New(
	db *sql.DB,
	analyses analyses.System,
	storage storage.System,
	catalog *Catalog,
	logger *slog.Logger,
	concurrency int,
) System {
	return &repo{
		db:          db,
		analyses:    analyses,
		storage:     storage,
		catalog:     catalog,
		logger:      logger.With("system", "outreach"),
		concurrency: concurrency,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Catalog() *Catalog {
	return r.catalog
}

func (r *repo) Report(ctx context.Context, now time.Time) (*Report, error) {
	return BuildContactList(ctx, r, r.catalog, r.logger, r.concurrency, now)
}

func (r *repo) Export(ctx context.Context, now time.Time) (string, error) {
	if r.storage == nil {
		return "", ErrExportNotConfigured
	}

	report, err := r.Report(ctx, now)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	key := fmt.Sprintf("reports/contact-list-%s.json", now.UTC().Format("2006-01-02"))
	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}

	r.logger.Info("report exported", "key", key, "bytes", len(data))
	return key, nil
}

// ActiveBundles implements Source: every active conversation joined
// with its prospect, its ordered transcript, and its current analysis
// (nil when the conversation was never classified).
func (r *repo) ActiveBundles(ctx context.Context) ([]Bundle, error) {
	q := `
		SELECT c.id, c.prospect_id, c.external_id, c.status,
			c.last_message_at, c.last_message_by, c.created_at, c.updated_at,
			p.id, p.name, p.job_title, p.company, p.sector, p.location,
			p.profile_url, p.created_at, p.updated_at
		FROM conversations c
		JOIN prospects p ON p.id = c.prospect_id
		WHERE c.status = $1
		ORDER BY c.last_message_at DESC`

	rows, err := r.db.QueryContext(ctx, q, conversations.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("query active conversations: %w", err)
	}
	defer rows.Close()

	var bundles []Bundle
	for rows.Next() {
		var b Bundle
		if err := rows.Scan(
			&b.Conversation.ID,
			&b.Conversation.ProspectID,
			&b.Conversation.ExternalID,
			&b.Conversation.Status,
			&b.Conversation.LastMessageAt,
			&b.Conversation.LastMessageBy,
			&b.Conversation.CreatedAt,
			&b.Conversation.UpdatedAt,
			&b.Prospect.ID,
			&b.Prospect.Name,
			&b.Prospect.JobTitle,
			&b.Prospect.Company,
			&b.Prospect.Sector,
			&b.Prospect.Location,
			&b.Prospect.ProfileURL,
			&b.Prospect.CreatedAt,
			&b.Prospect.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan conversation bundle: %w", err)
		}
		bundles = append(bundles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active conversations: %w", err)
	}

	for i := range bundles {
		msgs, err := r.transcript(ctx, bundles[i].Conversation.ID)
		if err != nil {
			return nil, err
		}
		bundles[i].Messages = msgs

		analysis, err := r.analyses.FindByConversation(ctx, bundles[i].Conversation.ID)
		switch {
		case err == nil:
			bundles[i].Analysis = analysis
		case errors.Is(err, analyses.ErrNotFound):
			// Unclassified conversations proceed with a nil analysis.
		default:
			return nil, fmt.Errorf("find analysis: %w", err)
		}
	}

	return bundles, nil
}

func (r *repo) transcript(ctx context.Context, conversationID uuid.UUID) ([]conversations.Message, error) {
	q := `
		SELECT id, conversation_id, sender, content, sent_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sent_at ASC, id ASC`

	msgs, err := repository.QueryMany(ctx, r.db, q, []any{conversationID},
		func(s repository.Scanner) (conversations.Message, error) {
			var m conversations.Message
			err := s.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Content, &m.SentAt)
			return m, err
		})
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}
	return msgs, nil
}
