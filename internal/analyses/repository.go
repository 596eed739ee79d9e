package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/cadencehq/cadence/internal/conversations"
	"github.com/cadencehq/cadence/internal/drafts"
	"github.com/cadencehq/cadence/internal/prompts"
	"github.com/cadencehq/cadence/internal/prospects"
	"github.com/cadencehq/cadence/internal/workflow"
	"github.com/cadencehq/cadence/pkg/pagination"
	"github.com/cadencehq/cadence/pkg/query"
	"github.com/cadencehq/cadence/pkg/repository"
)

const analysisColumns = `id, conversation_id, is_relevant, lead_score, lead_status,
	sentiment, interest_level, has_tested, key_points, recommended_action,
	follow_up_timing, personalization_hints, reasoning, model_name,
	provider_name, analyzed_at`

type repo struct {
	db          *sql.DB
	rt          *workflow.Runtime
	drafts      drafts.System
	logger      *slog.Logger
	pagination  pagination.Config
	concurrency int
}

// New creates an analysis repository implementing the System interface.
// It internally constructs the workflow runtime from the provided dependencies.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	logger *slog.Logger,
	pagination pagination.Config,
	convs conversations.System,
	prospects prospects.System,
	prompts prompts.System,
	drafts drafts.System,
	concurrency int,
) System {
	rt := &workflow.Runtime{
		Agent:         agent,
		Conversations: convs,
		Prospects:     prospects,
		Prompts:       prompts,
		Logger:        logger.With("workflow", "analyze"),
	}
	return &repo{
		db:          db,
		rt:          rt,
		drafts:      drafts,
		logger:      logger.With("system", "analyses"),
		pagination:  pagination,
		concurrency: concurrency,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Reasoning", "PersonalizationHints")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) FindByConversation(ctx context.Context, conversationID uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ConversationID", conversationID)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Analyze(ctx context.Context, conversationID uuid.UUID, force bool) (*Analysis, error) {
	now := time.Now().UTC()

	if !force {
		existing, err := r.FindByConversation(ctx, conversationID)
		if err == nil && existing.Fresh(now) {
			r.logger.Info("analysis still fresh, skipping",
				"conversation_id", conversationID,
				"analyzed_at", existing.AnalyzedAt,
			)
			return existing, nil
		}
	}

	result, err := workflow.Execute(ctx, r.rt, conversationID)
	if err != nil {
		return nil, fmt.Errorf("analyze conversation %s: %w", conversationID, err)
	}

	analysis, err := r.store(ctx, conversationID, result)
	if err != nil {
		return nil, err
	}

	if result.Draft != nil {
		if _, err := r.drafts.Create(ctx, drafts.CreateCommand{
			ConversationID: conversationID,
			AnalysisID:     &analysis.ID,
			Body:           *result.Draft,
		}); err != nil {
			// The analysis itself succeeded; a failed draft insert is
			// recoverable on the next pass.
			r.logger.Error("store draft failed",
				"conversation_id", conversationID,
				"error", err,
			)
		}
	}

	return analysis, nil
}

func (r *repo) store(
	ctx context.Context,
	conversationID uuid.UUID,
	result *workflow.Result,
) (*Analysis, error) {
	keyPoints, err := json.Marshal(result.Analysis.KeyPoints)
	if err != nil {
		return nil, fmt.Errorf("marshal key points: %w", err)
	}

	upsertQ := fmt.Sprintf(`
		INSERT INTO analyses(
			conversation_id, is_relevant, lead_score, lead_status,
			sentiment, interest_level, has_tested, key_points,
			recommended_action, follow_up_timing, personalization_hints,
			reasoning, model_name, provider_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (conversation_id) DO UPDATE SET
			is_relevant = EXCLUDED.is_relevant,
			lead_score = EXCLUDED.lead_score,
			lead_status = EXCLUDED.lead_status,
			sentiment = EXCLUDED.sentiment,
			interest_level = EXCLUDED.interest_level,
			has_tested = EXCLUDED.has_tested,
			key_points = EXCLUDED.key_points,
			recommended_action = EXCLUDED.recommended_action,
			follow_up_timing = EXCLUDED.follow_up_timing,
			personalization_hints = EXCLUDED.personalization_hints,
			reasoning = EXCLUDED.reasoning,
			model_name = EXCLUDED.model_name,
			provider_name = EXCLUDED.provider_name,
			analyzed_at = NOW()
		RETURNING %s`, analysisColumns)

	upsertArgs := []any{
		conversationID,
		result.Analysis.IsRelevant,
		result.Analysis.LeadScore,
		result.Analysis.LeadStatus,
		result.Analysis.Sentiment,
		result.Analysis.InterestLevel,
		result.Analysis.HasTested,
		keyPoints,
		result.Analysis.RecommendedAction,
		result.Analysis.FollowUpTiming,
		result.Analysis.PersonalizationHints,
		result.Analysis.Reasoning,
		r.rt.Agent.Model.Name,
		r.rt.Agent.Provider.Name,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		return repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanAnalysis)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("conversation analyzed",
		"id", a.ID,
		"conversation_id", conversationID,
		"lead_status", a.LeadStatus,
		"lead_score", a.LeadScore,
		"recommended_action", a.RecommendedAction,
	)
	return &a, nil
}

// AnalyzeBatch refreshes analyses for active conversations whose stored
// result is stale or missing. Per-item failures are collected rather
// than aborting the pass.
func (r *repo) AnalyzeBatch(ctx context.Context, limit int) (*BatchSummary, error) {
	ids, err := r.staleConversations(ctx, limit)
	if err != nil {
		return nil, err
	}

	summary := &BatchSummary{Examined: len(ids)}
	failures := make([]*BatchError, len(ids))
	results := make([]*Analysis, len(ids))

	eg, egCtx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		eg.SetLimit(r.concurrency)
	}

	for i, id := range ids {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			a, err := r.Analyze(egCtx, id, false)
			if err != nil {
				failures[i] = &BatchError{ConversationID: id, Error: err.Error()}
				return nil
			}
			results[i] = a
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("batch analyze: %w", err)
	}

	for i, f := range failures {
		if f != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, *f)
			continue
		}

		a := results[i]
		switch a.LeadStatus {
		case LeadHot:
			summary.Hot++
		case LeadWarm:
			summary.Warm++
		case LeadCold:
			summary.Cold++
		}
		if a.RecommendedAction == ActionFollowUp {
			summary.Drafts++
		}
	}
	summary.Analyzed = summary.Examined - summary.Failed

	r.logger.Info("batch analyze complete",
		"examined", summary.Examined,
		"analyzed", summary.Analyzed,
		"hot", summary.Hot,
		"warm", summary.Warm,
		"cold", summary.Cold,
		"drafts", summary.Drafts,
		"failed", summary.Failed,
	)
	return summary, nil
}

// staleConversations returns active conversations with no analysis or
// an analysis older than the freshness window, oldest first.
func (r *repo) staleConversations(ctx context.Context, limit int) ([]uuid.UUID, error) {
	q := `
		SELECT c.id
		FROM conversations c
		LEFT JOIN analyses a ON a.conversation_id = c.id
		WHERE c.status = $1
			AND (a.id IS NULL OR a.analyzed_at < $2)
		ORDER BY a.analyzed_at ASC NULLS FIRST
		LIMIT $3`

	cutoff := time.Now().UTC().Add(-FreshnessWindow)

	ids, err := repository.QueryMany(ctx, r.db, q,
		[]any{conversations.StatusActive, cutoff, limit},
		func(s repository.Scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := s.Scan(&id)
			return id, err
		})
	if err != nil {
		return nil, fmt.Errorf("query stale conversations: %w", err)
	}
	return ids, nil
}
