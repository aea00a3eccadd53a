package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/aidigest/pkg/content"
)

// FeedFetcher returns a parsed rss/atom feed
type FeedFetcher interface {
	ParseURL(ctx context.Context, url string) (*gofeed.Feed, error)
}

// FeedParser fetches and parses rss/atom feeds with gofeed
type FeedParser struct {
	client    *http.Client
	userAgent string
}

// NewFeedParser creates a feed parser with per-request timeout
func NewFeedParser(timeout time.Duration, userAgent string) *FeedParser {
	if userAgent == "" {
		userAgent = content.DefaultUserAgent
	}
	return &FeedParser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// ParseURL fetches url and parses the body as a feed
func (p *FeedParser) ParseURL(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	content.AddFeedHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %s: unexpected status code %d", url, resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}
	return feed, nil
}

// published returns entry publication time, falls back to updated, zero if neither is set
func published(item *gofeed.Item) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC()
	}
	return time.Time{}
}

// entryID returns guid, falls back to the link
func entryID(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	return item.Link
}

// firstN returns at most n feed items
func firstN(items []*gofeed.Item, n int) []*gofeed.Item {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// extValue returns first value of a namespaced extension element, like yt:videoId
func extValue(item *gofeed.Item, ns, name string) string {
	if item.Extensions == nil {
		return ""
	}
	if exts := item.Extensions[ns][name]; len(exts) > 0 {
		return exts[0].Value
	}
	return ""
}

// mediaDescription returns media:group/media:description of youtube entries
func mediaDescription(item *gofeed.Item) string {
	if item.Extensions == nil {
		return ""
	}
	for _, group := range item.Extensions["media"]["group"] {
		if desc := group.Children["description"]; len(desc) > 0 {
			return desc[0].Value
		}
	}
	return ""
}

// entryAuthor returns author name, empty when not set
func entryAuthor(p *gofeed.Person) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.Name)
}
