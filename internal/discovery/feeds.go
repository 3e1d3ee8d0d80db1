package discovery

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
)

// DefaultQueries returns the stock news searches for a discovery cycle.
func DefaultQueries() []string {
	return []string{
		"Florida county procurement violation",
		"Florida school board bid rigging",
		"Florida county audit findings",
		"Florida city contract scandal",
		"Florida government corruption investigation",
		"Florida inspector general report procurement",
		"Florida county budget mismanagement",
		"Florida school district construction bid",
	}
}

type rssFeed struct {
	Items []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

// SearchNews queries the Google News RSS feed and returns up to limit
// article URLs.
func (s *Scanner) SearchNews(ctx context.Context, query string, limit int) ([]string, error) {
	feedURL := fmt.Sprintf(
		"https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		url.QueryEscape(query),
	)

	body, err := s.fetcher.FetchPage(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	var feed rssFeed
	if err := xml.Unmarshal([]byte(body), &feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	var urls []string
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		urls = append(urls, item.Link)
		if len(urls) >= limit {
			break
		}
	}
	return urls, nil
}
