package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/aidigest/pkg/domain"
)

// BusinessParams configures business news adapter
type BusinessParams struct {
	Feeds       FeedFetcher
	NewsFeeds   []Feed
	Window      time.Duration
	Limit       int
	Concurrency int
}

// Business fetches AI business news and keeps entries about money, deals and companies
type Business struct {
	BusinessParams
}

// NewBusiness makes business news adapter with defaults for empty params
func NewBusiness(params BusinessParams) *Business {
	if params.NewsFeeds == nil {
		params.NewsFeeds = BusinessFeeds
	}
	if params.Window == 0 {
		params.Window = DefaultWindow
	}
	if params.Limit == 0 {
		params.Limit = capNews
	}
	return &Business{BusinessParams: params}
}

// Name returns module name
func (b *Business) Name() string { return string(domain.ModuleBusiness) }

// Fetch returns scored business news from all feeds
func (b *Business) Fetch(ctx context.Context) ([]domain.Item, error) {
	now := time.Now()
	items, err := fetchAll(ctx, b.Name(), len(b.NewsFeeds), b.Concurrency, func(ctx context.Context, i int) ([]domain.Item, error) {
		return b.fetchFeed(ctx, b.NewsFeeds[i], now)
	})
	if err != nil {
		return nil, err
	}
	return Finalize(items, FinalizeOpts{Window: b.Window, Limit: b.Limit, Now: now}), nil
}

func (b *Business) fetchFeed(ctx context.Context, f Feed, now time.Time) ([]domain.Item, error) {
	feed, err := b.Feeds.ParseURL(ctx, f.URL)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", f.Name, err)
	}

	var res []domain.Item
	for _, entry := range firstN(feed.Items, 15) {
		if !ContainsAny(entry.Title+" "+entry.Description, businessKeywords) {
			continue
		}
		var pub time.Time
		if entry.PublishedParsed != nil {
			pub = entry.PublishedParsed.UTC()
		}
		if !withinWindow(pub, now, b.Window, false) {
			continue
		}
		summary := domain.Truncate(StripHTML(entry.Description), 200, "...")
		it := domain.Item{
			SourceID: entryID(entry),
			Module:   domain.ModuleBusiness,
			Title:    strings.TrimSpace(entry.Title),
			Summary:  summary,
			Link:     entry.Link,
			Source:   f.Name,
			Author:   entryAuthor(entry.Author),
			PubDate:  pub,
			Extra:    domain.Extra{Article: &domain.ArticleExtra{Origin: "news", FeedID: f.Key}},
		}
		it.Tags = ExtractTags(it.Title+" "+entry.Description, businessTagPatterns, domain.MaxTags)
		it.FameScore = KeywordScore(it.Title+" "+summary, businessKeywordWeights) + sourceBonus(f.Name)
		res = append(res, it)
	}
	return res, nil
}

func sourceBonus(name string) int {
	if b, ok := businessSourceBonus[name]; ok {
		return b
	}
	return defaultSourceBonus
}
