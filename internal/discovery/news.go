package discovery

import (
	"context"
	"log/slog"
	"time"

	"github.com/govradar/govradar/internal/config"
	"github.com/govradar/govradar/internal/database"
	"github.com/govradar/govradar/internal/scoring"
)

// ScoreUpdater recomputes an opportunity's heat score after its inputs
// change. *engine.Engine satisfies it.
type ScoreUpdater interface {
	UpdateOpportunityScore(ctx context.Context, id string) (*database.Opportunity, error)
}

// Discovered is one opportunity produced or refreshed by a discovery run.
type Discovered struct {
	OpportunityID string
	EntityName    string
	EntityType    string
	HeatScore     float64
	IssueType     string
	Title         string
	Created       bool
}

// Scanner finds procurement controversies in news coverage and turns them
// into scored opportunities.
type Scanner struct {
	db      *database.DB
	scorer  *scoring.TextScorer
	updater ScoreUpdater
	fetcher *Fetcher
	cfg     config.DiscoveryConfig
	log     *slog.Logger

	// pause between article fetches
	delay time.Duration
}

// NewScanner wires a news scanner. The scorer drives both the relevance
// gate and the initial heat score.
func NewScanner(db *database.DB, scorer *scoring.TextScorer, updater ScoreUpdater, cfg config.DiscoveryConfig, log *slog.Logger) *Scanner {
	return &Scanner{
		db:      db,
		scorer:  scorer,
		updater: updater,
		fetcher: NewFetcher(cfg.Timeout()),
		cfg:     cfg,
		log:     log,
		delay:   time.Second,
	}
}

// ProcessArticle fetches one article URL and creates or refreshes
// opportunities for every government entity it names. Articles that score
// under the configured floor, or that name no entity, produce nothing.
func (s *Scanner) ProcessArticle(ctx context.Context, url, sourceName string) ([]Discovered, error) {
	s.log.Info("processing article", "url", url)

	html, err := s.fetcher.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	art, err := ExtractArticle(html)
	if err != nil || art == nil {
		return nil, err
	}

	fullText := art.Title + " " + art.Content
	bd := s.scorer.Score(fullText)
	if bd.Total < s.cfg.MinRawScore {
		s.log.Debug("article below threshold", "url", url, "score", bd.Total)
		return nil, nil
	}

	entities := ExtractEntities(art.Title, art.Content)
	if len(entities) == 0 {
		s.log.Debug("no government entities found", "url", url)
		return nil, nil
	}

	article, err := s.saveArticle(ctx, url, sourceName, art)
	if err != nil {
		return nil, err
	}

	var results []Discovered
	for _, ext := range entities {
		d, err := s.attachEntity(ctx, ext, article, art, bd)
		if err != nil {
			s.log.Warn("attaching entity failed", "entity", ext.Name, "error", err)
			continue
		}
		results = append(results, *d)
	}
	return results, nil
}

func (s *Scanner) saveArticle(ctx context.Context, url, sourceName string, art *ArticleContent) (*database.Article, error) {
	if existing, err := s.db.GetArticleByURL(ctx, url); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	article := &database.Article{
		URL:           url,
		Title:         art.Title,
		PublishedDate: art.PublishedAt,
	}
	if art.Content != "" {
		content := truncate(art.Content, 10000)
		summary := truncate(art.Content, 500)
		article.Content = &content
		article.Summary = &summary
	}
	if sourceName != "" {
		article.Source = &sourceName
	}
	if err := s.db.CreateArticle(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *Scanner) attachEntity(ctx context.Context, ext ExtractedEntity, article *database.Article, art *ArticleContent, bd scoring.Breakdown) (*Discovered, error) {
	entity, err := s.getOrCreateEntity(ctx, ext)
	if err != nil {
		return nil, err
	}

	var issueType *string
	if bd.Category != "" {
		issueType = &bd.Category
	}

	keywordScore := s.scorer.Normalized(bd.Total)

	// New coverage of an issue we already track folds into the open
	// opportunity instead of opening a duplicate.
	open, err := s.db.FindOpenOpportunity(ctx, entity.ID, issueType)
	if err != nil {
		return nil, err
	}
	if open != nil {
		if err := s.db.LinkArticle(ctx, open.ID, article.ID, keywordScore); err != nil {
			return nil, err
		}
		if err := s.db.TouchOpportunity(ctx, open.ID); err != nil {
			return nil, err
		}
		if err := s.db.AddActivity(ctx, open.ID, "article_linked", "New coverage linked: "+article.URL); err != nil {
			return nil, err
		}
		refreshed, err := s.updater.UpdateOpportunityScore(ctx, open.ID)
		if err != nil {
			return nil, err
		}
		return &Discovered{
			OpportunityID: open.ID,
			EntityName:    entity.Name,
			EntityType:    entity.EntityType,
			HeatScore:     refreshed.HeatScore,
			IssueType:     bd.Category,
			Title:         open.Title,
		}, nil
	}

	size := entity.Size()
	heat := scoring.CalculateHeat(scoring.HeatInput{
		KeywordScore:  keywordScore,
		FirstDetected: s.firstDetected(art),
		ArticleCount:  1,
		IssueType:     bd.Category,
		Entity:        &size,
	}, time.Now())

	summary := truncate(art.Content, 500)
	brief := AttackBrief(art.Title, summary, bd.Matches, entity.Name, bd.Category)

	opp := &database.Opportunity{
		EntityID:     entity.ID,
		Title:        truncate(art.Title, 100),
		Summary:      &summary,
		HeatScore:    heat,
		KeywordScore: keywordScore,
		Priority:     scoring.PriorityFor(heat),
		IssueType:    issueType,
		AttackBrief:  &brief,
	}
	if err := s.db.CreateOpportunity(ctx, opp); err != nil {
		return nil, err
	}
	if err := s.db.LinkArticle(ctx, opp.ID, article.ID, keywordScore); err != nil {
		return nil, err
	}
	if err := s.db.AddActivity(ctx, opp.ID, "opportunity_created", "Opportunity created from article: "+article.URL); err != nil {
		return nil, err
	}

	return &Discovered{
		OpportunityID: opp.ID,
		EntityName:    entity.Name,
		EntityType:    entity.EntityType,
		HeatScore:     heat,
		IssueType:     bd.Category,
		Title:         opp.Title,
		Created:       true,
	}, nil
}

func (s *Scanner) getOrCreateEntity(ctx context.Context, ext ExtractedEntity) (*database.Entity, error) {
	entity, err := s.db.GetEntityByName(ctx, ext.Name, ext.EntityType, ext.State)
	if err != nil {
		return nil, err
	}
	if entity != nil {
		return entity, nil
	}

	entity = &database.Entity{
		Name:       ext.Name,
		EntityType: ext.EntityType,
		State:      ext.State,
	}
	if ext.EntityType == "county" || ext.EntityType == "school_board" {
		county := ext.Name
		entity.County = &county
	}
	if err := s.db.CreateEntity(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Scanner) firstDetected(art *ArticleContent) time.Time {
	if art.PublishedAt != nil {
		return *art.PublishedAt
	}
	return time.Now()
}

// Run executes a full discovery cycle: search feeds for each query, then
// process every distinct article URL found.
func (s *Scanner) Run(ctx context.Context, queries []string) ([]Discovered, error) {
	if len(queries) == 0 {
		queries = DefaultQueries()
	}

	var all []Discovered
	processed := map[string]bool{}

	for _, query := range queries {
		s.log.Info("searching", "query", query)
		urls, err := s.SearchNews(ctx, query, 5)
		if err != nil {
			s.log.Warn("search failed", "query", query, "error", err)
			continue
		}

		for _, url := range urls {
			if processed[url] {
				continue
			}
			processed[url] = true

			results, err := s.ProcessArticle(ctx, url, "")
			if err != nil {
				s.log.Warn("processing failed", "url", url, "error", err)
			}
			all = append(all, results...)

			select {
			case <-ctx.Done():
				return all, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	s.log.Info("discovery complete", "opportunities", len(all))
	return all, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
