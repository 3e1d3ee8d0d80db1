package discovery

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/govradar/govradar/internal/config"
	"github.com/govradar/govradar/internal/database"
	"github.com/govradar/govradar/internal/scoring"
)

// PortalScanner pulls solicitations off procurement portal pages and
// classifies them for relevance.
type PortalScanner struct {
	db         *database.DB
	classifier *scoring.RFPClassifier
	fetcher    *Fetcher
	portals    []config.Portal
	log        *slog.Logger
}

// PortalStats summarizes one portal scan.
type PortalStats struct {
	TotalFound    int
	RelevantFound int
	Saved         int
	ByPortal      map[string]int
}

// NewPortalScanner wires a portal scanner over the configured portals.
func NewPortalScanner(db *database.DB, classifier *scoring.RFPClassifier, cfg config.RFPConfig, timeout time.Duration, log *slog.Logger) *PortalScanner {
	return &PortalScanner{
		db:         db,
		classifier: classifier,
		fetcher:    NewFetcher(timeout),
		portals:    cfg.Portals,
		log:        log,
	}
}

// portalItem is one solicitation pulled off a portal page before
// classification.
type portalItem struct {
	Title              string
	URL                string
	SolicitationNumber string
	Agency             string
	DueDate            string
}

// anchor text that is navigation, not a solicitation
var navLinkWords = []string{"click here", "read more", "learn more", "view all", "back to", "home", "menu", "contact"}

var procurementLinkWords = []string{"rfp", "rfq", "itb", "itn", "solicitation", "bid", "procurement", "proposal", "quote"}

// Scan fetches every configured portal, classifies what it finds, and
// saves new solicitations. Portals that fail to fetch or parse are logged
// and skipped.
func (p *PortalScanner) Scan(ctx context.Context) (*PortalStats, error) {
	stats := &PortalStats{ByPortal: map[string]int{}}

	for _, portal := range p.portals {
		p.log.Info("scanning portal", "portal", portal.Name, "url", portal.URL)

		items, err := p.scrapePortal(ctx, portal)
		if err != nil {
			p.log.Warn("portal scan failed", "portal", portal.Name, "error", err)
			stats.ByPortal[portal.Name] = 0
			continue
		}
		stats.ByPortal[portal.Name] = len(items)
		stats.TotalFound += len(items)

		for _, item := range items {
			relevant, created, err := p.saveItem(ctx, portal, item)
			if err != nil {
				p.log.Warn("saving solicitation failed", "title", item.Title, "error", err)
				continue
			}
			if relevant {
				stats.RelevantFound++
			}
			if created {
				stats.Saved++
			}
		}

		if err := ctx.Err(); err != nil {
			return stats, err
		}
	}

	p.log.Info("portal scan complete",
		"found", stats.TotalFound, "relevant", stats.RelevantFound, "saved", stats.Saved)
	return stats, nil
}

func (p *PortalScanner) scrapePortal(ctx context.Context, portal config.Portal) ([]portalItem, error) {
	html, err := p.fetcher.FetchPage(ctx, portal.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	items := parseTables(doc, portal.URL)
	items = append(items, parseLinks(doc, portal.URL)...)
	return items, nil
}

// parseTables reads solicitation tables: title in the first column, then
// solicitation number, due date, and agency where present.
func parseTables(doc *goquery.Document, baseURL string) []portalItem {
	var items []portalItem

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return // header
			}
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}

			titleCell := cells.Eq(0)
			link := titleCell.Find("a").First()
			title := strings.TrimSpace(titleCell.Text())
			if link.Length() > 0 {
				title = strings.TrimSpace(link.Text())
			}
			if len(title) < 10 {
				return
			}

			item := portalItem{
				Title: title,
				URL:   resolveLink(baseURL, link),
			}
			if cells.Length() > 1 {
				item.SolicitationNumber = strings.TrimSpace(cells.Eq(1).Text())
			}
			if cells.Length() > 2 {
				item.DueDate = strings.TrimSpace(cells.Eq(2).Text())
			}
			if cells.Length() > 3 {
				item.Agency = strings.TrimSpace(cells.Eq(3).Text())
			}
			items = append(items, item)
		})
	})

	return items
}

// parseLinks picks up solicitations posted as bare links rather than
// table rows.
func parseLinks(doc *goquery.Document, baseURL string) []portalItem {
	var items []portalItem

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		text := strings.TrimSpace(a.Text())
		lowered := strings.ToLower(text)

		if !matchesAny(strings.ToLower(href), procurementLinkWords) && !matchesAny(lowered, procurementLinkWords) {
			return
		}
		if len(text) < 15 || len(text) > 300 {
			return
		}
		if matchesAny(lowered, navLinkWords) {
			return
		}

		items = append(items, portalItem{
			Title: text,
			URL:   resolveLink(baseURL, a),
		})
	})

	return items
}

func (p *PortalScanner) saveItem(ctx context.Context, portal config.Portal, item portalItem) (relevant, created bool, err error) {
	relevant, score, category := p.classifier.Classify(item.Title, "")

	rfp := &database.RFP{
		Title:          item.Title,
		IsRelevant:     relevant,
		RelevanceScore: score,
	}
	if category != "" {
		rfp.Category = &category
	}
	rfpType := "RFP"
	rfp.RFPType = &rfpType
	if item.SolicitationNumber != "" {
		rfp.SolicitationNumber = &item.SolicitationNumber
	}
	if item.URL != "" {
		rfp.SourceURL = &item.URL
	}
	sourcePortal := portal.Name
	rfp.SourcePortal = &sourcePortal
	now := time.Now()
	rfp.PostedDate = &now
	if due := parseDue(item.DueDate); due != nil {
		rfp.DueDate = due
	}

	agency := item.Agency
	if agency == "" {
		agency = portal.Name
	}
	if entityID, err := p.matchEntity(ctx, agency); err == nil && entityID != "" {
		rfp.EntityID = &entityID
	}

	created, err = p.db.UpsertRFP(ctx, rfp)
	if err != nil {
		return false, false, err
	}
	if created && relevant {
		p.log.Info("relevant solicitation", "title", truncate(item.Title, 60), "score", score)
	}
	return relevant, created, nil
}

var countyNameRe = regexp.MustCompile(`(\w+)\s+county`)

// matchEntity resolves an agency name against the entity table. Exact
// match wins, then substring, then the county name embedded in the agency
// name.
func (p *PortalScanner) matchEntity(ctx context.Context, agencyName string) (string, error) {
	if agencyName == "" {
		return "", nil
	}

	entities, err := p.db.ListEntities(ctx)
	if err != nil {
		return "", err
	}

	agency := strings.ToLower(agencyName)
	for _, e := range entities {
		if strings.ToLower(e.Name) == agency {
			return e.ID, nil
		}
	}

	var countyName string
	if m := countyNameRe.FindStringSubmatch(agency); m != nil {
		countyName = m[1]
	}
	for _, e := range entities {
		name := strings.ToLower(e.Name)
		if strings.Contains(agency, name) || strings.Contains(name, agency) {
			return e.ID, nil
		}
		if countyName != "" && strings.Contains(name, countyName) {
			return e.ID, nil
		}
	}
	return "", nil
}

var dueFormats = []string{
	"01/02/2006", "1/2/2006", "2006-01-02", "January 2, 2006", "Jan 2, 2006",
}

func parseDue(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dueFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func resolveLink(baseURL string, link *goquery.Selection) string {
	if link == nil || link.Length() == 0 {
		return baseURL
	}
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return baseURL
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	ref, err := url.Parse(href)
	if err != nil {
		return baseURL
	}
	return base.ResolveReference(ref).String()
}

func matchesAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
