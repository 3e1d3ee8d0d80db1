package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/govradar/govradar/internal/scoring"
)

// CreateEntity inserts a new government entity.
func (db *DB) CreateEntity(ctx context.Context, e *Entity) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt

	_, err := db.ExecContext(ctx, `
		INSERT INTO entities (
			id, name, entity_type, state, county, population, annual_budget,
			website, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID, e.Name, e.EntityType, e.State, NullString(e.County),
		NullInt64(e.Population), NullFloat64(e.AnnualBudget),
		NullString(e.Website), e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetEntity retrieves an entity by ID. Returns nil, nil when absent.
func (db *DB) GetEntity(ctx context.Context, id string) (*Entity, error) {
	return db.scanEntity(db.QueryRowContext(ctx, `
		SELECT id, name, entity_type, state, county, population, annual_budget,
		       website, created_at, updated_at
		FROM entities WHERE id = ?
	`, id))
}

// GetEntityByName retrieves an entity by its natural key.
func (db *DB) GetEntityByName(ctx context.Context, name, entityType, state string) (*Entity, error) {
	return db.scanEntity(db.QueryRowContext(ctx, `
		SELECT id, name, entity_type, state, county, population, annual_budget,
		       website, created_at, updated_at
		FROM entities WHERE LOWER(name) = LOWER(?) AND entity_type = ? AND state = ?
	`, name, entityType, state))
}

func (db *DB) scanEntity(row *sql.Row) (*Entity, error) {
	e := &Entity{}
	var county, website sql.NullString
	var population sql.NullInt64
	var budget sql.NullFloat64

	err := row.Scan(
		&e.ID, &e.Name, &e.EntityType, &e.State, &county, &population,
		&budget, &website, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.County = StringPtr(county)
	e.Population = Int64Ptr(population)
	e.AnnualBudget = Float64Ptr(budget)
	e.Website = StringPtr(website)
	return e, nil
}

// ListEntities retrieves all entities ordered by name.
func (db *DB) ListEntities(ctx context.Context) ([]Entity, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, entity_type, state, county, population, annual_budget,
		       website, created_at, updated_at
		FROM entities ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []Entity
	for rows.Next() {
		e := Entity{}
		var county, website sql.NullString
		var population sql.NullInt64
		var budget sql.NullFloat64

		if err := rows.Scan(
			&e.ID, &e.Name, &e.EntityType, &e.State, &county, &population,
			&budget, &website, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}

		e.County = StringPtr(county)
		e.Population = Int64Ptr(population)
		e.AnnualBudget = Float64Ptr(budget)
		e.Website = StringPtr(website)
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// UpdateEntity writes incremental enrichment (population, budget, website).
func (db *DB) UpdateEntity(ctx context.Context, e *Entity) error {
	e.UpdatedAt = time.Now()

	result, err := db.ExecContext(ctx, `
		UPDATE entities SET
			county = ?, population = ?, annual_budget = ?, website = ?, updated_at = ?
		WHERE id = ?
	`,
		NullString(e.County), NullInt64(e.Population), NullFloat64(e.AnnualBudget),
		NullString(e.Website), e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entity %s: %w", e.ID, scoring.ErrNotFound)
	}
	return nil
}

// CreateArticle inserts a scraped article.
func (db *DB) CreateArticle(ctx context.Context, a *Article) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.ScrapedAt.IsZero() {
		a.ScrapedAt = time.Now()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO articles (
			id, source, url, title, content, summary, published_date, scraped_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, NullString(a.Source), a.URL, a.Title, NullString(a.Content),
		NullString(a.Summary), NullTime(a.PublishedDate), a.ScrapedAt,
	)
	return err
}

// GetArticleByURL retrieves an article by URL. Returns nil, nil when absent.
func (db *DB) GetArticleByURL(ctx context.Context, url string) (*Article, error) {
	a := &Article{}
	var source, content, summary sql.NullString
	var published sql.NullTime

	err := db.QueryRowContext(ctx, `
		SELECT id, source, url, title, content, summary, published_date, scraped_at
		FROM articles WHERE url = ?
	`, url).Scan(&a.ID, &source, &a.URL, &a.Title, &content, &summary, &published, &a.ScrapedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.Source = StringPtr(source)
	a.Content = StringPtr(content)
	a.Summary = StringPtr(summary)
	a.PublishedDate = TimePtr(published)
	return a, nil
}

// CreateOpportunity inserts a new opportunity.
func (db *DB) CreateOpportunity(ctx context.Context, o *Opportunity) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now()
	if o.FirstDetected.IsZero() {
		o.FirstDetected = now
	}
	if o.LastActivity.IsZero() {
		o.LastActivity = now
	}
	if o.Status == "" {
		o.Status = StatusNew
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO opportunities (
			id, entity_id, title, summary, heat_score, keyword_score, status,
			priority, issue_type, first_detected, last_activity, notes, attack_brief
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		o.ID, o.EntityID, o.Title, NullString(o.Summary), o.HeatScore,
		o.KeywordScore, o.Status, o.Priority, NullString(o.IssueType),
		o.FirstDetected, o.LastActivity, NullString(o.Notes), NullString(o.AttackBrief),
	)
	return err
}

const opportunityColumns = `
	id, entity_id, title, summary, heat_score, keyword_score, status,
	priority, issue_type, first_detected, last_activity, notes, attack_brief`

func scanOpportunity(row interface{ Scan(...any) error }) (*Opportunity, error) {
	o := &Opportunity{}
	var summary, issueType, notes, brief sql.NullString

	err := row.Scan(
		&o.ID, &o.EntityID, &o.Title, &summary, &o.HeatScore, &o.KeywordScore,
		&o.Status, &o.Priority, &issueType, &o.FirstDetected, &o.LastActivity,
		&notes, &brief,
	)
	if err != nil {
		return nil, err
	}

	o.Summary = StringPtr(summary)
	o.IssueType = StringPtr(issueType)
	o.Notes = StringPtr(notes)
	o.AttackBrief = StringPtr(brief)
	return o, nil
}

// GetOpportunity retrieves an opportunity by ID. Returns nil, nil when absent.
func (db *DB) GetOpportunity(ctx context.Context, id string) (*Opportunity, error) {
	o, err := scanOpportunity(db.QueryRowContext(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return o, err
}

// FindOpenOpportunity finds a non-closed opportunity for the entity and
// issue type, so new coverage extends an existing lead instead of forking it.
func (db *DB) FindOpenOpportunity(ctx context.Context, entityID string, issueType *string) (*Opportunity, error) {
	o, err := scanOpportunity(db.QueryRowContext(ctx, `
		SELECT `+opportunityColumns+` FROM opportunities
		WHERE entity_id = ?
		  AND status NOT IN (?, ?)
		  AND (issue_type = ? OR (issue_type IS NULL AND ? IS NULL))
		ORDER BY last_activity DESC LIMIT 1
	`, entityID, StatusClosedWon, StatusClosedLost, NullString(issueType), NullString(issueType)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return o, err
}

// ListOpportunities retrieves opportunities with optional filters, hottest
// first.
func (db *DB) ListOpportunities(ctx context.Context, f OpportunityFilter) ([]Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE 1=1`
	args := []any{}

	if f.Status != nil {
		query += " AND status = ?"
		args = append(args, *f.Status)
	}
	if f.Priority != nil {
		query += " AND priority = ?"
		args = append(args, *f.Priority)
	}
	if f.EntityID != nil {
		query += " AND entity_id = ?"
		args = append(args, *f.EntityID)
	}
	if f.MinHeatScore != nil {
		query += " AND heat_score >= ?"
		args = append(args, *f.MinHeatScore)
	}

	query += " ORDER BY heat_score DESC"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
		if f.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", f.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opps []Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opps = append(opps, *o)
	}
	return opps, rows.Err()
}

// SetOpportunityScore persists a recomputed heat score and its priority
// classification in one statement so the pair stays consistent.
func (db *DB) SetOpportunityScore(ctx context.Context, id string, heat float64, priority scoring.Priority) error {
	result, err := db.ExecContext(ctx, `
		UPDATE opportunities SET heat_score = ?, priority = ? WHERE id = ?
	`, heat, priority, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("opportunity %s: %w", id, scoring.ErrNotFound)
	}
	return nil
}

// SetOpportunityStatus moves an opportunity through the workflow.
func (db *DB) SetOpportunityStatus(ctx context.Context, id string, status OpportunityStatus) error {
	result, err := db.ExecContext(ctx, `
		UPDATE opportunities SET status = ?, last_activity = ? WHERE id = ?
	`, status, time.Now(), id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("opportunity %s: %w", id, scoring.ErrNotFound)
	}
	return nil
}

// TouchOpportunity bumps last_activity after new linked coverage.
func (db *DB) TouchOpportunity(ctx context.Context, id string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE opportunities SET last_activity = ? WHERE id = ?
	`, time.Now(), id)
	return err
}

// LinkArticle attaches an article to an opportunity. Linking the same pair
// twice is a no-op.
func (db *DB) LinkArticle(ctx context.Context, opportunityID, articleID string, relevance float64) error {
	_, err := db.ExecContext(ctx, `
		INSERT OR IGNORE INTO opportunity_articles (opportunity_id, article_id, relevance_score)
		VALUES (?, ?, ?)
	`, opportunityID, articleID, relevance)
	return err
}

// GetOpportunityArticles retrieves the articles linked to an opportunity,
// newest first.
func (db *DB) GetOpportunityArticles(ctx context.Context, opportunityID string) ([]Article, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT a.id, a.source, a.url, a.title, a.content, a.summary,
		       a.published_date, a.scraped_at
		FROM articles a
		JOIN opportunity_articles oa ON oa.article_id = a.id
		WHERE oa.opportunity_id = ?
		ORDER BY a.scraped_at DESC
	`, opportunityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a := Article{}
		var source, content, summary sql.NullString
		var published sql.NullTime

		if err := rows.Scan(&a.ID, &source, &a.URL, &a.Title, &content, &summary,
			&published, &a.ScrapedAt); err != nil {
			return nil, err
		}

		a.Source = StringPtr(source)
		a.Content = StringPtr(content)
		a.Summary = StringPtr(summary)
		a.PublishedDate = TimePtr(published)
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// AddActivity appends an audit-trail entry for an opportunity.
func (db *DB) AddActivity(ctx context.Context, opportunityID, activityType, description string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO activity_log (id, opportunity_id, activity_type, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), opportunityID, activityType, description, time.Now())
	return err
}

// ListActivities retrieves the audit trail for an opportunity, newest first.
func (db *DB) ListActivities(ctx context.Context, opportunityID string) ([]Activity, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, opportunity_id, activity_type, description, created_at
		FROM activity_log WHERE opportunity_id = ?
		ORDER BY created_at DESC
	`, opportunityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a := Activity{}
		var description sql.NullString
		if err := rows.Scan(&a.ID, &a.OpportunityID, &a.ActivityType, &description, &a.CreatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			a.Description = description.String
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

const rfpColumns = `
	id, entity_id, title, description, solicitation_number, rfp_type, category,
	status, posted_date, due_date, estimated_value, source_url, source_portal,
	is_relevant, relevance_score, created_at, updated_at`

func scanRFP(row interface{ Scan(...any) error }) (*RFP, error) {
	r := &RFP{}
	var entityID, description, solNum, rfpType, category, sourceURL, portal sql.NullString
	var posted, due sql.NullTime
	var estimated sql.NullFloat64
	var relevant int

	err := row.Scan(
		&r.ID, &entityID, &r.Title, &description, &solNum, &rfpType, &category,
		&r.Status, &posted, &due, &estimated, &sourceURL, &portal,
		&relevant, &r.RelevanceScore, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.EntityID = StringPtr(entityID)
	r.Description = StringPtr(description)
	r.SolicitationNumber = StringPtr(solNum)
	r.RFPType = StringPtr(rfpType)
	r.Category = StringPtr(category)
	r.PostedDate = TimePtr(posted)
	r.DueDate = TimePtr(due)
	r.EstimatedValue = Float64Ptr(estimated)
	r.SourceURL = StringPtr(sourceURL)
	r.SourcePortal = StringPtr(portal)
	r.IsRelevant = relevant == 1
	return r, nil
}

// GetRFP retrieves a solicitation by ID. Returns nil, nil when absent.
func (db *DB) GetRFP(ctx context.Context, id string) (*RFP, error) {
	r, err := scanRFP(db.QueryRowContext(ctx,
		`SELECT `+rfpColumns+` FROM rfps WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// UpsertRFP inserts a solicitation unless one already exists for the same
// solicitation number and portal. Returns true when a new row was created.
func (db *DB) UpsertRFP(ctx context.Context, r *RFP) (bool, error) {
	if r.SolicitationNumber != nil && r.SourcePortal != nil {
		existing, err := scanRFP(db.QueryRowContext(ctx, `
			SELECT `+rfpColumns+` FROM rfps
			WHERE solicitation_number = ? AND source_portal = ?
		`, *r.SolicitationNumber, *r.SourcePortal))
		if err != nil && err != sql.ErrNoRows {
			return false, err
		}
		if existing != nil {
			*r = *existing
			return false, nil
		}
	}

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Status == "" {
		r.Status = RFPOpen
	}

	relevant := 0
	if r.IsRelevant {
		relevant = 1
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO rfps (
			id, entity_id, title, description, solicitation_number, rfp_type,
			category, status, posted_date, due_date, estimated_value, source_url,
			source_portal, is_relevant, relevance_score, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, NullString(r.EntityID), r.Title, NullString(r.Description),
		NullString(r.SolicitationNumber), NullString(r.RFPType),
		NullString(r.Category), r.Status, NullTime(r.PostedDate),
		NullTime(r.DueDate), NullFloat64(r.EstimatedValue),
		NullString(r.SourceURL), NullString(r.SourcePortal),
		relevant, r.RelevanceScore, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListRFPs retrieves solicitations with optional filters, most relevant
// first.
func (db *DB) ListRFPs(ctx context.Context, f RFPFilter) ([]RFP, error) {
	query := `SELECT ` + rfpColumns + ` FROM rfps WHERE 1=1`
	args := []any{}

	if f.Status != nil {
		query += " AND status = ?"
		args = append(args, *f.Status)
	}
	if f.Category != nil {
		query += " AND category = ?"
		args = append(args, *f.Category)
	}
	if f.RelevantOnly {
		query += " AND is_relevant = 1"
	}

	query += " ORDER BY relevance_score DESC"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rfps []RFP
	for rows.Next() {
		r, err := scanRFP(rows)
		if err != nil {
			return nil, err
		}
		rfps = append(rfps, *r)
	}
	return rfps, rows.Err()
}

// SetRFPScore persists a reclassification result.
func (db *DB) SetRFPScore(ctx context.Context, id string, score float64, relevant bool, category *string) error {
	relevantInt := 0
	if relevant {
		relevantInt = 1
	}

	result, err := db.ExecContext(ctx, `
		UPDATE rfps SET relevance_score = ?, is_relevant = ?, category = ?, updated_at = ?
		WHERE id = ?
	`, score, relevantInt, NullString(category), time.Now(), id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("rfp %s: %w", id, scoring.ErrNotFound)
	}
	return nil
}

// SeedNewsKeywords loads the news-controversy vocabulary. Existing phrases
// are left untouched, so re-seeding is idempotent.
func (db *DB) SeedNewsKeywords(ctx context.Context, entries []scoring.KeywordEntry) error {
	return db.seedKeywords(ctx, "keywords", entries)
}

// SeedRFPKeywords loads the solicitation-relevance vocabulary.
func (db *DB) SeedRFPKeywords(ctx context.Context, entries []scoring.KeywordEntry) error {
	return db.seedKeywords(ctx, "rfp_keywords", entries)
}

func (db *DB) seedKeywords(ctx context.Context, table string, entries []scoring.KeywordEntry) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO `+table+` (keyword, category, weight) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Phrase, e.Category, e.Weight); err != nil {
			return fmt.Errorf("seed keyword %q: %w", e.Phrase, err)
		}
	}
	return tx.Commit()
}

// LoadNewsKeywords reads the active news vocabulary.
func (db *DB) LoadNewsKeywords(ctx context.Context) ([]scoring.KeywordEntry, error) {
	return db.loadKeywords(ctx, "keywords")
}

// LoadRFPKeywords reads the active solicitation vocabulary.
func (db *DB) LoadRFPKeywords(ctx context.Context) ([]scoring.KeywordEntry, error) {
	return db.loadKeywords(ctx, "rfp_keywords")
}

func (db *DB) loadKeywords(ctx context.Context, table string) ([]scoring.KeywordEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT keyword, category, weight FROM `+table+` WHERE is_active = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []scoring.KeywordEntry
	for rows.Next() {
		var e scoring.KeywordEntry
		if err := rows.Scan(&e.Phrase, &e.Category, &e.Weight); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetStats computes the aggregate dashboard counters.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByPriority: map[scoring.Priority]int{},
		ByStatus:   map[OpportunityStatus]int{},
	}

	rows, err := db.QueryContext(ctx, `
		SELECT priority, status, COUNT(*) FROM opportunities GROUP BY priority, status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var priority scoring.Priority
		var status OpportunityStatus
		var count int
		if err := rows.Scan(&priority, &status, &count); err != nil {
			return nil, err
		}
		stats.ByPriority[priority] += count
		stats.ByStatus[status] += count
		stats.TotalOpportunities += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var avg sql.NullFloat64
	if err := db.QueryRowContext(ctx,
		`SELECT AVG(heat_score) FROM opportunities`).Scan(&avg); err != nil {
		return nil, err
	}
	if avg.Valid {
		stats.AverageHeat = avg.Float64
	}

	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entities`).Scan(&stats.TotalEntities); err != nil {
		return nil, err
	}
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(is_relevant), 0) FROM rfps
	`).Scan(&stats.TotalRFPs, &stats.RelevantRFPs); err != nil {
		return nil, err
	}

	return stats, nil
}
