package drafts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/pkg/pagination"
	"github.com/cadencehq/cadence/pkg/query"
	"github.com/cadencehq/cadence/pkg/repository"
)

const draftColumns = `id, conversation_id, analysis_id, body, status, created_at, updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a draft repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "drafts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Draft], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Body")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count drafts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDraft)
	if err != nil {
		return nil, fmt.Errorf("query drafts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Draft, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDraft)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Draft, error) {
	if strings.TrimSpace(cmd.Body) == "" {
		return nil, ErrEmptyBody
	}

	q := fmt.Sprintf(`
		INSERT INTO drafts(conversation_id, analysis_id, body)
		VALUES ($1, $2, $3)
		RETURNING %s`, draftColumns)

	args := []any{cmd.ConversationID, cmd.AnalysisID, cmd.Body}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Draft, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDraft)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("draft created", "id", d.ID, "conversation_id", d.ConversationID)
	return &d, nil
}

// Approve transitions a pending draft to approved, optionally replacing
// the body with the operator's edited version.
func (r *repo) Approve(ctx context.Context, id uuid.UUID, cmd ApproveCommand) (*Draft, error) {
	if cmd.Body != nil && strings.TrimSpace(*cmd.Body) == "" {
		return nil, ErrEmptyBody
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Draft, error) {
		current, err := r.lockDraft(ctx, tx, id)
		if err != nil {
			return Draft{}, err
		}
		if current.Status != StatusPending {
			return Draft{}, ErrNotPending
		}

		body := current.Body
		if cmd.Body != nil {
			body = *cmd.Body
		}

		q := fmt.Sprintf(`
			UPDATE drafts
			SET status = $1, body = $2, updated_at = now()
			WHERE id = $3
			RETURNING %s`, draftColumns)

		return repository.QueryOne(ctx, tx, q, []any{StatusApproved, body, id}, scanDraft)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("draft approved", "id", d.ID, "edited", cmd.Body != nil)
	return &d, nil
}

func (r *repo) Reject(ctx context.Context, id uuid.UUID) (*Draft, error) {
	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Draft, error) {
		current, err := r.lockDraft(ctx, tx, id)
		if err != nil {
			return Draft{}, err
		}
		if current.Status != StatusPending {
			return Draft{}, ErrNotPending
		}

		q := fmt.Sprintf(`
			UPDATE drafts
			SET status = $1, updated_at = now()
			WHERE id = $2
			RETURNING %s`, draftColumns)

		return repository.QueryOne(ctx, tx, q, []any{StatusRejected, id}, scanDraft)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("draft rejected", "id", d.ID)
	return &d, nil
}

func (r *repo) MarkSent(ctx context.Context, id uuid.UUID) (*Draft, error) {
	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Draft, error) {
		current, err := r.lockDraft(ctx, tx, id)
		if err != nil {
			return Draft{}, err
		}
		if current.Status != StatusApproved {
			return Draft{}, ErrNotApproved
		}

		q := fmt.Sprintf(`
			UPDATE drafts
			SET status = $1, updated_at = now()
			WHERE id = $2
			RETURNING %s`, draftColumns)

		return repository.QueryOne(ctx, tx, q, []any{StatusSent, id}, scanDraft)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("draft marked sent", "id", d.ID)
	return &d, nil
}

func (r *repo) lockDraft(ctx context.Context, tx *sql.Tx, id uuid.UUID) (Draft, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM drafts WHERE id = $1 FOR UPDATE",
		draftColumns,
	)
	return repository.QueryOne(ctx, tx, q, []any{id}, scanDraft)
}
