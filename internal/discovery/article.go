package discovery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ArticleContent is the text pulled out of a fetched news page.
type ArticleContent struct {
	Title       string
	Content     string
	PublishedAt *time.Time
}

var publishedFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ExtractArticle pulls the title, body text, and publication date out of an
// article page. Returns nil when the page has no usable body.
func ExtractArticle(html string) (*ArticleContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	art := &ArticleContent{
		Title:       extractTitle(doc),
		Content:     extractBody(doc),
		PublishedAt: extractPublished(doc),
	}
	if art.Content == "" {
		return nil, nil
	}
	return art, nil
}

func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractBody(doc *goquery.Document) string {
	for _, sel := range []string{"article", "main", ".article-body", ".story-body", ".entry-content", "#content"} {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		var parts []string
		node.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := strings.TrimSpace(p.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		if body := strings.Join(parts, "\n"); len(body) > 100 {
			return body
		}
	}

	// Fall back to every paragraph on the page.
	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); len(text) > 40 {
			parts = append(parts, text)
		}
	})
	body := strings.Join(parts, "\n")
	if len(body) <= 100 {
		return ""
	}
	return body
}

func extractPublished(doc *goquery.Document) *time.Time {
	candidates := []string{}
	if v, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		candidates = append(candidates, v)
	}
	if v, ok := doc.Find(`meta[name="date"]`).Attr("content"); ok {
		candidates = append(candidates, v)
	}
	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		candidates = append(candidates, v)
	}
	candidates = append(candidates, strings.TrimSpace(doc.Find("time").First().Text()))

	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		for _, layout := range publishedFormats {
			if t, err := time.Parse(layout, c); err == nil {
				return &t
			}
		}
	}
	return nil
}
