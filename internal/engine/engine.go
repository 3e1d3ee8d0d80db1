// Package engine drives heat-score recomputation for stored opportunities
// and bulk reclassification of stored solicitations.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/govradar/govradar/internal/database"
	"github.com/govradar/govradar/internal/scoring"
)

// Store is the slice of the persistence layer the engine needs. It is
// implemented by *database.DB.
type Store interface {
	GetOpportunity(ctx context.Context, id string) (*database.Opportunity, error)
	ListOpportunities(ctx context.Context, f database.OpportunityFilter) ([]database.Opportunity, error)
	GetOpportunityArticles(ctx context.Context, opportunityID string) ([]database.Article, error)
	GetEntity(ctx context.Context, id string) (*database.Entity, error)
	SetOpportunityScore(ctx context.Context, id string, heat float64, priority scoring.Priority) error
	AddActivity(ctx context.Context, opportunityID, activityType, description string) error

	ListRFPs(ctx context.Context, f database.RFPFilter) ([]database.RFP, error)
	SetRFPScore(ctx context.Context, id string, score float64, relevant bool, category *string) error
}

// Engine recomputes opportunity heat scores and RFP relevance against the
// store. All computation is synchronous; the engine performs no I/O beyond
// the store calls.
type Engine struct {
	store   Store
	blender *scoring.BlendedScorer
	log     *slog.Logger
	now     func() time.Time
}

// New creates an Engine. The blended scorer is used for RFP rescoring and
// may carry zero supplementary methods.
func New(store Store, blender *scoring.BlendedScorer, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{store: store, blender: blender, log: log, now: time.Now}
}

// UpdateOpportunityScore recomputes the heat score and priority for one
// opportunity, persisting and audit-logging only when either value actually
// changed. Calling it again with no underlying data change is a no-op.
func (e *Engine) UpdateOpportunityScore(ctx context.Context, id string) (*database.Opportunity, error) {
	opp, err := e.store.GetOpportunity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get opportunity %s: %w", id, err)
	}
	if opp == nil {
		return nil, fmt.Errorf("opportunity %s: %w", id, scoring.ErrNotFound)
	}

	articles, err := e.store.GetOpportunityArticles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get articles for %s: %w", id, err)
	}

	entity, err := e.store.GetEntity(ctx, opp.EntityID)
	if err != nil {
		return nil, fmt.Errorf("get entity %s: %w", opp.EntityID, err)
	}
	if entity == nil {
		// A dangling entity reference is a data error, unlike an
		// aggregation call made without an entity at all.
		return nil, fmt.Errorf("entity %s: %w", opp.EntityID, scoring.ErrNotFound)
	}

	in := scoring.HeatInput{
		KeywordScore:  opp.KeywordScore,
		FirstDetected: opp.FirstDetected,
		ArticleCount:  len(articles),
		Entity:        entitySize(entity),
	}
	if opp.IssueType != nil {
		in.IssueType = *opp.IssueType
	}

	heat := scoring.CalculateHeat(in, e.now())
	priority := scoring.PriorityFor(heat)

	if heat != opp.HeatScore || priority != opp.Priority {
		if err := e.store.SetOpportunityScore(ctx, id, heat, priority); err != nil {
			return nil, fmt.Errorf("persist score for %s: %w", id, err)
		}
		if err := e.store.AddActivity(ctx, id, "score_updated",
			fmt.Sprintf("Heat score updated from %.1f to %.1f", opp.HeatScore, heat)); err != nil {
			return nil, fmt.Errorf("log score update for %s: %w", id, err)
		}
	}

	opp.HeatScore = heat
	opp.Priority = priority
	return opp, nil
}

// ScoreBreakdown returns the per-factor detail behind an opportunity's heat
// score, for display.
func (e *Engine) ScoreBreakdown(ctx context.Context, id string) ([]scoring.HeatFactor, error) {
	opp, err := e.store.GetOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, fmt.Errorf("opportunity %s: %w", id, scoring.ErrNotFound)
	}

	articles, err := e.store.GetOpportunityArticles(ctx, id)
	if err != nil {
		return nil, err
	}
	entity, err := e.store.GetEntity(ctx, opp.EntityID)
	if err != nil {
		return nil, err
	}

	in := scoring.HeatInput{
		KeywordScore:  opp.KeywordScore,
		FirstDetected: opp.FirstDetected,
		ArticleCount:  len(articles),
		Entity:        entitySize(entity),
	}
	if opp.IssueType != nil {
		in.IssueType = *opp.IssueType
	}
	return scoring.HeatFactors(in, e.now()), nil
}

// OpportunityDetail bundles an opportunity with everything shown on its
// detail view.
type OpportunityDetail struct {
	Opportunity *database.Opportunity `json:"opportunity"`
	Entity      *database.Entity      `json:"entity,omitempty"`
	Articles    []database.Article    `json:"articles,omitempty"`
	Factors     []scoring.HeatFactor  `json:"factors"`
}

// OpportunityDetail loads the full detail view for one opportunity.
func (e *Engine) OpportunityDetail(ctx context.Context, id string) (*OpportunityDetail, error) {
	opp, err := e.store.GetOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, fmt.Errorf("opportunity %s: %w", id, scoring.ErrNotFound)
	}

	articles, err := e.store.GetOpportunityArticles(ctx, id)
	if err != nil {
		return nil, err
	}
	entity, err := e.store.GetEntity(ctx, opp.EntityID)
	if err != nil {
		return nil, err
	}

	in := scoring.HeatInput{
		KeywordScore:  opp.KeywordScore,
		FirstDetected: opp.FirstDetected,
		ArticleCount:  len(articles),
		Entity:        entitySize(entity),
	}
	if opp.IssueType != nil {
		in.IssueType = *opp.IssueType
	}

	return &OpportunityDetail{
		Opportunity: opp,
		Entity:      entity,
		Articles:    articles,
		Factors:     scoring.HeatFactors(in, e.now()),
	}, nil
}

// RecalcResult reports a bulk recomputation pass.
type RecalcResult struct {
	Visited int
	Updated int
	Errors  []error
}

// RecalculateAll recomputes every opportunity. A failure on one record is
// recorded and skipped; it never aborts the batch.
func (e *Engine) RecalculateAll(ctx context.Context) (*RecalcResult, error) {
	opps, err := e.store.ListOpportunities(ctx, database.OpportunityFilter{})
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}

	result := &RecalcResult{}
	for _, opp := range opps {
		result.Visited++
		oldScore := opp.HeatScore

		updated, err := e.UpdateOpportunityScore(ctx, opp.ID)
		if err != nil {
			e.log.Warn("recalculate failed", "opportunity", opp.ID, "error", err)
			result.Errors = append(result.Errors, fmt.Errorf("opportunity %s: %w", opp.ID, err))
			continue
		}
		if updated.HeatScore != oldScore {
			result.Updated++
		}
	}

	e.log.Info("recalculated scores",
		"visited", result.Visited, "updated", result.Updated, "errors", len(result.Errors))
	return result, nil
}

// RescoreResult reports a bulk RFP reclassification pass.
type RescoreResult struct {
	Total           int
	Rescored        int
	HighRelevance   int
	MediumRelevance int
	LowRelevance    int
	Errors          []error
}

// RescoreRFPs reclassifies every stored solicitation with the blended
// scorer, skip-and-continue on per-record failure.
func (e *Engine) RescoreRFPs(ctx context.Context) (*RescoreResult, error) {
	rfps, err := e.store.ListRFPs(ctx, database.RFPFilter{})
	if err != nil {
		return nil, fmt.Errorf("list rfps: %w", err)
	}

	result := &RescoreResult{Total: len(rfps)}
	for _, rfp := range rfps {
		description := ""
		if rfp.Description != nil {
			description = *rfp.Description
		}

		blended := e.blender.Score(ctx, rfp.Title, description)

		var category *string
		if blended.Category != "" {
			category = &blended.Category
		}
		if err := e.store.SetRFPScore(ctx, rfp.ID, blended.FinalScore, blended.Relevant, category); err != nil {
			e.log.Warn("rescore failed", "rfp", rfp.ID, "error", err)
			result.Errors = append(result.Errors, fmt.Errorf("rfp %s: %w", rfp.ID, err))
			continue
		}

		result.Rescored++
		switch {
		case blended.FinalScore >= 70:
			result.HighRelevance++
		case blended.FinalScore >= scoring.BlendedRelevanceCutoff:
			result.MediumRelevance++
		default:
			result.LowRelevance++
		}
	}

	e.log.Info("rescored rfps", "total", result.Total, "rescored", result.Rescored,
		"high", result.HighRelevance, "errors", len(result.Errors))
	return result, nil
}

func entitySize(e *database.Entity) *scoring.EntitySize {
	if e == nil {
		return nil
	}
	size := e.Size()
	return &size
}
