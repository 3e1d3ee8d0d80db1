package database

import (
	"database/sql"
	"time"

	"github.com/govradar/govradar/internal/scoring"
)

// OpportunityStatus represents where a lead sits in the sales workflow.
type OpportunityStatus string

const (
	StatusNew          OpportunityStatus = "new"
	StatusResearching  OpportunityStatus = "researching"
	StatusContacted    OpportunityStatus = "contacted"
	StatusInDiscussion OpportunityStatus = "in_discussion"
	StatusClosedWon    OpportunityStatus = "closed_won"
	StatusClosedLost   OpportunityStatus = "closed_lost"
)

// Closed reports whether the status is terminal. Opportunities are never
// hard-deleted; they transition to a closed status instead.
func (s OpportunityStatus) Closed() bool {
	return s == StatusClosedWon || s == StatusClosedLost
}

// RFPStatus represents the lifecycle of a solicitation.
type RFPStatus string

const (
	RFPOpen      RFPStatus = "open"
	RFPClosed    RFPStatus = "closed"
	RFPAwarded   RFPStatus = "awarded"
	RFPCancelled RFPStatus = "cancelled"
)

// Entity is a government body: county, city, school board, or utility.
type Entity struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	EntityType   string    `json:"entity_type"`
	State        string    `json:"state"`
	County       *string   `json:"county,omitempty"`
	Population   *int64    `json:"population,omitempty"`
	AnnualBudget *float64  `json:"annual_budget,omitempty"`
	Website      *string   `json:"website,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Size converts the entity's enrichment fields into scoring inputs.
func (e *Entity) Size() scoring.EntitySize {
	var s scoring.EntitySize
	if e.Population != nil {
		s.Population = *e.Population
	}
	if e.AnnualBudget != nil {
		s.AnnualBudget = *e.AnnualBudget
	}
	return s
}

// Article is a scraped news article or report.
type Article struct {
	ID            string     `json:"id"`
	Source        *string    `json:"source,omitempty"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Content       *string    `json:"content,omitempty"`
	Summary       *string    `json:"summary,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	ScrapedAt     time.Time  `json:"scraped_at"`
}

// Opportunity is a detected controversy tied to one government entity.
// Priority is always the threshold classification of HeatScore as of the
// last recomputation; the two are written together.
type Opportunity struct {
	ID            string            `json:"id"`
	EntityID      string            `json:"entity_id"`
	Title         string            `json:"title"`
	Summary       *string           `json:"summary,omitempty"`
	HeatScore     float64           `json:"heat_score"`
	KeywordScore  float64           `json:"keyword_score"`
	Status        OpportunityStatus `json:"status"`
	Priority      scoring.Priority  `json:"priority"`
	IssueType     *string           `json:"issue_type,omitempty"`
	FirstDetected time.Time         `json:"first_detected"`
	LastActivity  time.Time         `json:"last_activity"`
	Notes         *string           `json:"notes,omitempty"`
	AttackBrief   *string           `json:"attack_brief,omitempty"`
}

// DaysSinceActivity returns the number of days since the last activity.
func (o *Opportunity) DaysSinceActivity() int {
	return int(time.Since(o.LastActivity).Hours() / 24)
}

// Activity is one audit-trail entry for an opportunity.
type Activity struct {
	ID            string    `json:"id"`
	OpportunityID string    `json:"opportunity_id"`
	ActivityType  string    `json:"activity_type"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// RFP is a discovered solicitation. It is classified once at creation and
// can be re-classified by bulk rescoring.
type RFP struct {
	ID                 string     `json:"id"`
	EntityID           *string    `json:"entity_id,omitempty"`
	Title              string     `json:"title"`
	Description        *string    `json:"description,omitempty"`
	SolicitationNumber *string    `json:"solicitation_number,omitempty"`
	RFPType            *string    `json:"rfp_type,omitempty"`
	Category           *string    `json:"category,omitempty"`
	Status             RFPStatus  `json:"status"`
	PostedDate         *time.Time `json:"posted_date,omitempty"`
	DueDate            *time.Time `json:"due_date,omitempty"`
	EstimatedValue     *float64   `json:"estimated_value,omitempty"`
	SourceURL          *string    `json:"source_url,omitempty"`
	SourcePortal       *string    `json:"source_portal,omitempty"`
	IsRelevant         bool       `json:"is_relevant"`
	RelevanceScore     float64    `json:"relevance_score"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Stats holds the aggregate dashboard counters.
type Stats struct {
	TotalOpportunities int                       `json:"total_opportunities"`
	ByPriority         map[scoring.Priority]int  `json:"by_priority"`
	ByStatus           map[OpportunityStatus]int `json:"by_status"`
	AverageHeat        float64                   `json:"average_heat"`
	TotalEntities      int                       `json:"total_entities"`
	TotalRFPs          int                       `json:"total_rfps"`
	RelevantRFPs       int                       `json:"relevant_rfps"`
}

// OpportunityFilter narrows ListOpportunities.
type OpportunityFilter struct {
	Status       *OpportunityStatus
	Priority     *scoring.Priority
	EntityID     *string
	MinHeatScore *float64
	Limit        int
	Offset       int
}

// RFPFilter narrows ListRFPs.
type RFPFilter struct {
	Status       *RFPStatus
	Category     *string
	RelevantOnly bool
	Limit        int
}

// NullString converts *string to sql.NullString.
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullInt64 converts *int64 to sql.NullInt64.
func NullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// NullFloat64 converts *float64 to sql.NullFloat64.
func NullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// NullTime converts *time.Time to sql.NullTime.
func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// StringPtr converts sql.NullString to *string.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// Int64Ptr converts sql.NullInt64 to *int64.
func Int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

// Float64Ptr converts sql.NullFloat64 to *float64.
func Float64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

// TimePtr converts sql.NullTime to *time.Time.
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}
