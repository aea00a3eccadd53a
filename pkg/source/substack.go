package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/aidigest/pkg/domain"
)

const substackFeedURL = "https://%s.substack.com/feed"

// SubstackParams configures newsletter adapter
type SubstackParams struct {
	Feeds       FeedFetcher
	FeedURL     string // fmt template with one %s for the slug
	Newsletters []Feed
	Official    []Feed
	Window      time.Duration
	Limit       int
	Concurrency int
}

// Substack fetches newsletters and vendor blogs
type Substack struct {
	SubstackParams
}

// NewSubstack makes newsletter adapter with defaults for empty params
func NewSubstack(params SubstackParams) *Substack {
	if params.FeedURL == "" {
		params.FeedURL = substackFeedURL
	}
	if params.Newsletters == nil {
		params.Newsletters = SubstackFeeds
	}
	if params.Official == nil {
		params.Official = OfficialFeeds
	}
	if params.Window == 0 {
		params.Window = DefaultWindow
	}
	if params.Limit == 0 {
		params.Limit = capArticle
	}
	return &Substack{SubstackParams: params}
}

// Name returns module name
func (s *Substack) Name() string { return string(domain.ModuleSubstack) }

// Fetch returns scored posts, newsletters first then vendor blogs
func (s *Substack) Fetch(ctx context.Context) ([]domain.Item, error) {
	now := time.Now()
	feeds := make([]Feed, 0, len(s.Newsletters)+len(s.Official))
	feeds = append(feeds, s.Newsletters...)
	feeds = append(feeds, s.Official...)

	items, err := fetchAll(ctx, s.Name(), len(feeds), s.Concurrency, func(ctx context.Context, i int) ([]domain.Item, error) {
		return s.fetchFeed(ctx, feeds[i], i >= len(s.Newsletters), now)
	})
	if err != nil {
		return nil, err
	}
	return Finalize(items, FinalizeOpts{Window: s.Window, Limit: s.Limit, Now: now}), nil
}

func (s *Substack) fetchFeed(ctx context.Context, f Feed, official bool, now time.Time) ([]domain.Item, error) {
	url := f.URL
	if !official {
		url = fmt.Sprintf(s.FeedURL, f.Key)
	}
	feed, err := s.Feeds.ParseURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", f.Name, err)
	}

	entries := feed.Items
	if official {
		entries = firstN(entries, 10)
	}

	var res []domain.Item
	for _, entry := range entries {
		pub := published(entry)
		if !withinWindow(pub, now, s.Window, false) {
			continue
		}
		summary := domain.Truncate(StripHTML(entry.Description), 200, "...")
		it := domain.Item{
			SourceID: entryID(entry),
			Module:   domain.ModuleSubstack,
			Title:    strings.TrimSpace(entry.Title),
			Summary:  summary,
			Link:     entry.Link,
			Source:   f.Name,
			Author:   f.Author,
			PubDate:  pub,
		}
		if official {
			it.Extra.Article = &domain.ArticleExtra{Origin: "official", FeedURL: f.URL}
		} else {
			it.Extra.Article = &domain.ArticleExtra{Origin: "substack", Slug: f.Key}
		}

		it.Tags = ExtractTags(it.Title+" "+it.Summary, substackTagPatterns, domain.MaxTags)
		it.FameScore = KeywordScore(it.Title+" "+it.Summary, substackKeywordWeights) + authorBonus(f.Author)
		if official {
			it.FameScore += officialBonus
		}
		res = append(res, it)
	}
	return res, nil
}

func authorBonus(author string) int {
	if b, ok := substackAuthorBonus[author]; ok {
		return b
	}
	return defaultAuthorBonus
}
