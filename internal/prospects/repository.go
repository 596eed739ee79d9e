package prospects

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

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a prospect repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prospects"),
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
) (*pagination.PageResult[Prospect], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Company", "JobTitle")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count prospects: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	prospects, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProspect)
	if err != nil {
		return nil, fmt.Errorf("query prospects: %w", err)
	}

	result := pagination.NewPageResult(prospects, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prospect, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProspect)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) FindByProfileURL(ctx context.Context, profileURL string) (*Prospect, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ProfileURL", profileURL)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProspect)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

// Upsert creates a prospect on first sighting and enriches it on subsequent
// sightings. NULLIF/COALESCE keeps previously captured values when the new
// observation is blank.
func (r *repo) Upsert(ctx context.Context, cmd UpsertCommand) (*Prospect, error) {
	if strings.TrimSpace(cmd.ProfileURL) == "" {
		return nil, ErrProfileURL
	}

	q := `
		INSERT INTO prospects(name, job_title, company, sector, location, profile_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (profile_url) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), prospects.name),
			job_title = COALESCE(NULLIF(EXCLUDED.job_title, ''), prospects.job_title),
			company = COALESCE(NULLIF(EXCLUDED.company, ''), prospects.company),
			sector = COALESCE(NULLIF(EXCLUDED.sector, ''), prospects.sector),
			location = COALESCE(NULLIF(EXCLUDED.location, ''), prospects.location),
			updated_at = now()
		RETURNING id, name, job_title, company, sector, location, profile_url,
			created_at, updated_at`

	args := []any{cmd.Name, cmd.JobTitle, cmd.Company, cmd.Sector, cmd.Location, cmd.ProfileURL}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prospect, error) {
		return repository.QueryOne(ctx, tx, q, args, scanProspect)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prospect upserted", "id", p.ID, "name", p.Name, "company", p.Company)
	return &p, nil
}
