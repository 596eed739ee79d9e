package conversations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/internal/prospects"
	"github.com/cadencehq/cadence/pkg/pagination"
	"github.com/cadencehq/cadence/pkg/query"
	"github.com/cadencehq/cadence/pkg/repository"
)

type repo struct {
	db            *sql.DB
	prospects     prospects.System
	logger        *slog.Logger
	pagination    pagination.Config
	maxIngestSize int64
}

// New creates a conversation repository implementing the System interface.
func New(
	db *sql.DB,
	prospects prospects.System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxIngestSize int64,
) System {
	return &repo{
		db:            db,
		prospects:     prospects,
		logger:        logger.With("system", "conversations"),
		pagination:    pagination,
		maxIngestSize: maxIngestSize,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination, r.maxIngestSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Conversation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ExternalID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count conversations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	convs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanConversation)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}

	result := pagination.NewPageResult(convs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanConversation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Messages(ctx context.Context, id uuid.UUID) ([]Message, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	q := `
		SELECT id, conversation_id, sender, content, sent_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sent_at ASC, id ASC`

	msgs, err := repository.QueryMany(ctx, r.db, q, []any{id}, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	return msgs, nil
}

// Ingest stores one scraped conversation. The prospect is upserted first,
// then the transcript is replaced wholesale inside a transaction so a
// re-scrape of the same thread converges on the latest observed state.
func (r *repo) Ingest(ctx context.Context, cmd IngestCommand) (*Conversation, error) {
	if strings.TrimSpace(cmd.ExternalID) == "" ||
		strings.TrimSpace(cmd.Prospect.ProfileURL) == "" {
		return nil, ErrEmptyIngest
	}

	prospect, err := r.prospects.Upsert(ctx, prospects.UpsertCommand{
		Name:       cmd.Prospect.Name,
		JobTitle:   cmd.Prospect.JobTitle,
		Company:    cmd.Prospect.Company,
		Sector:     cmd.Prospect.Sector,
		Location:   cmd.Prospect.Location,
		ProfileURL: cmd.Prospect.ProfileURL,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert prospect: %w", err)
	}

	type parsed struct {
		sender  Sender
		content string
		sentAt  time.Time
	}

	msgs := make([]parsed, 0, len(cmd.Messages))
	lastAt := time.Unix(0, 0).UTC()
	lastBy := SenderSelf

	for i, m := range cmd.Messages {
		sender, err := ParseSender(m.Sender)
		if err != nil {
			return nil, err
		}

		sentAt, ok := ParseSentAt(m.SentAt)
		if !ok {
			r.logger.Warn("unparsable message timestamp",
				"external_id", cmd.ExternalID,
				"index", i,
				"raw", m.SentAt,
			)
		}

		if !sentAt.Before(lastAt) {
			lastAt = sentAt
			lastBy = sender
		}

		msgs = append(msgs, parsed{sender: sender, content: m.Content, sentAt: sentAt})
	}

	conv, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Conversation, error) {
		upsertQ := `
			INSERT INTO conversations(prospect_id, external_id, last_message_at, last_message_by)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (external_id) DO UPDATE SET
				prospect_id = EXCLUDED.prospect_id,
				last_message_at = EXCLUDED.last_message_at,
				last_message_by = EXCLUDED.last_message_by,
				updated_at = now()
			RETURNING id, prospect_id, external_id, status, last_message_at,
				last_message_by, created_at, updated_at`

		args := []any{prospect.ID, cmd.ExternalID, lastAt, lastBy}
		c, err := repository.QueryOne(ctx, tx, upsertQ, args, scanConversation)
		if err != nil {
			return Conversation{}, err
		}

		if _, err := tx.ExecContext(
			ctx,
			"DELETE FROM messages WHERE conversation_id = $1",
			c.ID,
		); err != nil {
			return Conversation{}, fmt.Errorf("clear transcript: %w", err)
		}

		for _, m := range msgs {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO messages(conversation_id, sender, content, sent_at)
				VALUES ($1, $2, $3, $4)`,
				c.ID, m.sender, m.content, m.sentAt,
			); err != nil {
				return Conversation{}, fmt.Errorf("insert message: %w", err)
			}
		}

		return c, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("conversation ingested",
		"id", conv.ID,
		"external_id", conv.ExternalID,
		"prospect_id", conv.ProspectID,
		"messages", len(msgs),
	)
	return &conv, nil
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Conversation, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	q := `
		UPDATE conversations
		SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, prospect_id, external_id, status, last_message_at,
			last_message_by, created_at, updated_at`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Conversation, error) {
		return repository.QueryOne(ctx, tx, q, []any{status, id}, scanConversation)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("conversation status changed", "id", c.ID, "status", c.Status)
	return &c, nil
}
