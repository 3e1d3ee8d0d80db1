package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/govradar/govradar/internal/scoring"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "govradar-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	db, err := Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}
	return db, cleanup
}

func TestOpen(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='opportunities'
	`).Scan(&count)
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	if count != 1 {
		t.Error("opportunities table was not created")
	}
}

func TestEntityCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	county := "Broward"
	e := &Entity{
		Name:       "Broward County",
		EntityType: "county",
		State:      "FL",
		County:     &county,
	}
	if err := db.CreateEntity(ctx, e); err != nil {
		t.Fatalf("CreateEntity: %v", err)
	}
	if e.ID == "" {
		t.Fatal("CreateEntity did not assign an ID")
	}

	got, err := db.GetEntity(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEntity: %v", err)
	}
	if got == nil || got.Name != "Broward County" {
		t.Fatalf("GetEntity = %+v", got)
	}
	if got.Population != nil {
		t.Errorf("Population = %v, want nil", *got.Population)
	}

	// natural-key lookup is case-insensitive
	byName, err := db.GetEntityByName(ctx, "broward county", "county", "FL")
	if err != nil {
		t.Fatalf("GetEntityByName: %v", err)
	}
	if byName == nil || byName.ID != e.ID {
		t.Errorf("GetEntityByName = %+v", byName)
	}

	pop := int64(1950000)
	budget := 6800000000.0
	got.Population = &pop
	got.AnnualBudget = &budget
	if err := db.UpdateEntity(ctx, got); err != nil {
		t.Fatalf("UpdateEntity: %v", err)
	}

	updated, err := db.GetEntity(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEntity after update: %v", err)
	}
	if updated.Population == nil || *updated.Population != 1950000 {
		t.Errorf("Population = %v, want 1950000", updated.Population)
	}
	if updated.AnnualBudget == nil || *updated.AnnualBudget != 6800000000.0 {
		t.Errorf("AnnualBudget = %v", updated.AnnualBudget)
	}
}

func TestGetEntityMissing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	got, err := db.GetEntity(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("GetEntity: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for missing entity", got)
	}
}

func TestUpdateEntityMissing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.UpdateEntity(context.Background(), &Entity{ID: "no-such-id"})
	if !errors.Is(err, scoring.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func createTestEntity(t *testing.T, db *DB) *Entity {
	t.Helper()
	e := &Entity{Name: "Test County", EntityType: "county", State: "FL"}
	if err := db.CreateEntity(context.Background(), e); err != nil {
		t.Fatalf("CreateEntity: %v", err)
	}
	return e
}

func TestOpportunityLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	entity := createTestEntity(t, db)
	issue := "legal"
	o := &Opportunity{
		EntityID:     entity.ID,
		Title:        "Grand jury probes contracts",
		KeywordScore: 64,
		HeatScore:    80,
		Priority:     scoring.PriorityHigh,
		IssueType:    &issue,
	}
	if err := db.CreateOpportunity(ctx, o); err != nil {
		t.Fatalf("CreateOpportunity: %v", err)
	}
	if o.Status != StatusNew {
		t.Errorf("Status = %v, want new", o.Status)
	}
	if o.FirstDetected.IsZero() || o.LastActivity.IsZero() {
		t.Error("timestamps were not defaulted")
	}

	got, err := db.GetOpportunity(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetOpportunity: %v", err)
	}
	if got == nil || got.Title != o.Title || *got.IssueType != "legal" {
		t.Fatalf("GetOpportunity = %+v", got)
	}

	if err := db.SetOpportunityStatus(ctx, o.ID, StatusContacted); err != nil {
		t.Fatalf("SetOpportunityStatus: %v", err)
	}
	got, _ = db.GetOpportunity(ctx, o.ID)
	if got.Status != StatusContacted {
		t.Errorf("Status = %v, want contacted", got.Status)
	}

	if err := db.SetOpportunityScore(ctx, o.ID, 91.5, scoring.PriorityUrgent); err != nil {
		t.Fatalf("SetOpportunityScore: %v", err)
	}
	got, _ = db.GetOpportunity(ctx, o.ID)
	if got.HeatScore != 91.5 || got.Priority != scoring.PriorityUrgent {
		t.Errorf("after rescore: heat=%v priority=%v", got.HeatScore, got.Priority)
	}

	if err := db.AddActivity(ctx, o.ID, "status_changed", "moved to contacted"); err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	activities, err := db.ListActivities(ctx, o.ID)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(activities) != 1 || activities[0].ActivityType != "status_changed" {
		t.Errorf("activities = %+v", activities)
	}
}

func TestSetOpportunityScoreMissing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.SetOpportunityScore(context.Background(), "no-such-id", 50, scoring.PriorityMedium)
	if !errors.Is(err, scoring.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFindOpenOpportunity(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	entity := createTestEntity(t, db)
	issue := "procurement"
	o := &Opportunity{EntityID: entity.ID, Title: "Bid protest filed", IssueType: &issue}
	if err := db.CreateOpportunity(ctx, o); err != nil {
		t.Fatalf("CreateOpportunity: %v", err)
	}

	found, err := db.FindOpenOpportunity(ctx, entity.ID, &issue)
	if err != nil {
		t.Fatalf("FindOpenOpportunity: %v", err)
	}
	if found == nil || found.ID != o.ID {
		t.Fatalf("found = %+v, want the open opportunity", found)
	}

	other := "legal"
	found, err = db.FindOpenOpportunity(ctx, entity.ID, &other)
	if err != nil {
		t.Fatalf("FindOpenOpportunity: %v", err)
	}
	if found != nil {
		t.Errorf("found %+v for a different issue type", found)
	}

	// closed leads never absorb new coverage
	if err := db.SetOpportunityStatus(ctx, o.ID, StatusClosedLost); err != nil {
		t.Fatalf("SetOpportunityStatus: %v", err)
	}
	found, err = db.FindOpenOpportunity(ctx, entity.ID, &issue)
	if err != nil {
		t.Fatalf("FindOpenOpportunity: %v", err)
	}
	if found != nil {
		t.Errorf("found %+v, want nil after close", found)
	}
}

func TestListOpportunitiesFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	entity := createTestEntity(t, db)
	heats := []float64{30, 60, 95}
	priorities := []scoring.Priority{scoring.PriorityLow, scoring.PriorityMedium, scoring.PriorityUrgent}
	for i := range heats {
		o := &Opportunity{
			EntityID:  entity.ID,
			Title:     "Opportunity",
			HeatScore: heats[i],
			Priority:  priorities[i],
		}
		if err := db.CreateOpportunity(ctx, o); err != nil {
			t.Fatalf("CreateOpportunity: %v", err)
		}
	}

	all, err := db.ListOpportunities(ctx, OpportunityFilter{})
	if err != nil {
		t.Fatalf("ListOpportunities: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].HeatScore != 95 || all[2].HeatScore != 30 {
		t.Errorf("not ordered hottest first: %v, %v", all[0].HeatScore, all[2].HeatScore)
	}

	minHeat := 50.0
	hot, err := db.ListOpportunities(ctx, OpportunityFilter{MinHeatScore: &minHeat})
	if err != nil {
		t.Fatalf("ListOpportunities: %v", err)
	}
	if len(hot) != 2 {
		t.Errorf("min-heat filter returned %d, want 2", len(hot))
	}

	urgent := scoring.PriorityUrgent
	top, err := db.ListOpportunities(ctx, OpportunityFilter{Priority: &urgent, Limit: 10})
	if err != nil {
		t.Fatalf("ListOpportunities: %v", err)
	}
	if len(top) != 1 || top[0].HeatScore != 95 {
		t.Errorf("priority filter = %+v", top)
	}
}

func TestArticleLinking(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	entity := createTestEntity(t, db)
	o := &Opportunity{EntityID: entity.ID, Title: "Audit findings"}
	if err := db.CreateOpportunity(ctx, o); err != nil {
		t.Fatalf("CreateOpportunity: %v", err)
	}

	a := &Article{
		URL:   "https://example.com/story",
		Title: "Audit finds missing funds",
	}
	if err := db.CreateArticle(ctx, a); err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	byURL, err := db.GetArticleByURL(ctx, a.URL)
	if err != nil {
		t.Fatalf("GetArticleByURL: %v", err)
	}
	if byURL == nil || byURL.ID != a.ID {
		t.Fatalf("GetArticleByURL = %+v", byURL)
	}

	if err := db.LinkArticle(ctx, o.ID, a.ID, 12.5); err != nil {
		t.Fatalf("LinkArticle: %v", err)
	}
	// second link of the same pair is a no-op, not an error
	if err := db.LinkArticle(ctx, o.ID, a.ID, 12.5); err != nil {
		t.Fatalf("LinkArticle repeat: %v", err)
	}

	linked, err := db.GetOpportunityArticles(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetOpportunityArticles: %v", err)
	}
	if len(linked) != 1 {
		t.Errorf("linked articles = %d, want 1", len(linked))
	}
}

func TestGetRFP(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	r := &RFP{Title: "Network security audit", RelevanceScore: 4.0, IsRelevant: true}
	if _, err := db.UpsertRFP(ctx, r); err != nil {
		t.Fatalf("UpsertRFP: %v", err)
	}

	got, err := db.GetRFP(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRFP: %v", err)
	}
	if got == nil || got.Title != r.Title {
		t.Fatalf("GetRFP = %+v, want title %q", got, r.Title)
	}

	missing, err := db.GetRFP(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("GetRFP missing: %v", err)
	}
	if missing != nil {
		t.Errorf("GetRFP missing = %+v, want nil", missing)
	}
}

func TestUpsertRFP(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	solNum := "RFP-2026-017"
	portal := "Broward County Procurement"
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	r := &RFP{
		Title:              "IT infrastructure assessment",
		SolicitationNumber: &solNum,
		SourcePortal:       &portal,
		DueDate:            &due,
		RelevanceScore:     3.5,
		IsRelevant:         true,
	}

	created, err := db.UpsertRFP(ctx, r)
	if err != nil {
		t.Fatalf("UpsertRFP: %v", err)
	}
	if !created {
		t.Fatal("first upsert reported existing row")
	}
	if r.Status != RFPOpen {
		t.Errorf("Status = %v, want open", r.Status)
	}

	dup := &RFP{
		Title:              "IT infrastructure assessment (reposted)",
		SolicitationNumber: &solNum,
		SourcePortal:       &portal,
	}
	created, err = db.UpsertRFP(ctx, dup)
	if err != nil {
		t.Fatalf("UpsertRFP duplicate: %v", err)
	}
	if created {
		t.Error("duplicate solicitation created a second row")
	}
	if dup.ID != r.ID {
		t.Errorf("duplicate did not adopt the existing row: %s vs %s", dup.ID, r.ID)
	}

	rfps, err := db.ListRFPs(ctx, RFPFilter{})
	if err != nil {
		t.Fatalf("ListRFPs: %v", err)
	}
	if len(rfps) != 1 {
		t.Errorf("len = %d, want 1", len(rfps))
	}
	if !rfps[0].IsRelevant || rfps[0].RelevanceScore != 3.5 {
		t.Errorf("stored rfp = %+v", rfps[0])
	}
}

func TestListRFPsRelevantOnly(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for i, rfp := range []*RFP{
		{Title: "Network security audit", RelevanceScore: 4.0, IsRelevant: true},
		{Title: "Mowing services", RelevanceScore: -2.0},
	} {
		if _, err := db.UpsertRFP(ctx, rfp); err != nil {
			t.Fatalf("UpsertRFP %d: %v", i, err)
		}
	}

	relevant, err := db.ListRFPs(ctx, RFPFilter{RelevantOnly: true})
	if err != nil {
		t.Fatalf("ListRFPs: %v", err)
	}
	if len(relevant) != 1 || relevant[0].Title != "Network security audit" {
		t.Errorf("relevant = %+v", relevant)
	}
}

func TestSeedKeywordsIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	entries := scoring.NewsKeywords().Entries()
	if err := db.SeedNewsKeywords(ctx, entries); err != nil {
		t.Fatalf("SeedNewsKeywords: %v", err)
	}

	loaded, err := db.LoadNewsKeywords(ctx)
	if err != nil {
		t.Fatalf("LoadNewsKeywords: %v", err)
	}
	if len(loaded) != len(entries) {
		t.Fatalf("loaded %d keywords, want %d", len(loaded), len(entries))
	}

	// re-seeding must not duplicate or overwrite rows
	if err := db.SeedNewsKeywords(ctx, entries); err != nil {
		t.Fatalf("SeedNewsKeywords repeat: %v", err)
	}
	loaded, err = db.LoadNewsKeywords(ctx)
	if err != nil {
		t.Fatalf("LoadNewsKeywords: %v", err)
	}
	if len(loaded) != len(entries) {
		t.Errorf("loaded %d keywords after reseed, want %d", len(loaded), len(entries))
	}

	if _, err := scoring.NewKeywordTable(loaded); err != nil {
		t.Errorf("loaded vocabulary does not build a table: %v", err)
	}
}

func TestGetStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	entity := createTestEntity(t, db)
	for _, heat := range []float64{40, 80} {
		o := &Opportunity{
			EntityID:  entity.ID,
			Title:     "Opportunity",
			HeatScore: heat,
			Priority:  scoring.PriorityFor(heat),
		}
		if err := db.CreateOpportunity(ctx, o); err != nil {
			t.Fatalf("CreateOpportunity: %v", err)
		}
	}
	if _, err := db.UpsertRFP(ctx, &RFP{Title: "Security assessment", IsRelevant: true}); err != nil {
		t.Fatalf("UpsertRFP: %v", err)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalOpportunities != 2 {
		t.Errorf("TotalOpportunities = %d, want 2", stats.TotalOpportunities)
	}
	if stats.AverageHeat != 60 {
		t.Errorf("AverageHeat = %v, want 60", stats.AverageHeat)
	}
	if stats.TotalEntities != 1 {
		t.Errorf("TotalEntities = %d, want 1", stats.TotalEntities)
	}
	if stats.TotalRFPs != 1 || stats.RelevantRFPs != 1 {
		t.Errorf("rfps = %d/%d, want 1/1", stats.RelevantRFPs, stats.TotalRFPs)
	}
	if stats.ByPriority[scoring.PriorityMedium] != 1 || stats.ByPriority[scoring.PriorityHigh] != 1 {
		t.Errorf("ByPriority = %v", stats.ByPriority)
	}
}
