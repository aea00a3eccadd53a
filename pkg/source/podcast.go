package source

import (
	"context"
	"crypto/md5" //nolint:gosec // short stable id, not security
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/aidigest/pkg/domain"
)

// PodcastParams configures podcast adapter
type PodcastParams struct {
	Feeds       FeedFetcher
	Podcasts    []Feed
	Window      time.Duration
	Limit       int
	Concurrency int
}

// Podcast fetches episodes of Chinese AI and tech podcasts
type Podcast struct {
	PodcastParams
}

// NewPodcast makes podcast adapter with defaults for empty params
func NewPodcast(params PodcastParams) *Podcast {
	if params.Podcasts == nil {
		params.Podcasts = PodcastFeeds
	}
	if params.Window == 0 {
		params.Window = DefaultWindow
	}
	if params.Limit == 0 {
		params.Limit = capPodcast
	}
	return &Podcast{PodcastParams: params}
}

// Name returns module name
func (p *Podcast) Name() string { return string(domain.ModuleApplePodcast) }

// Fetch returns episodes scored by recency rank plus AI keyword bonus
func (p *Podcast) Fetch(ctx context.Context) ([]domain.Item, error) {
	now := time.Now()
	items, err := fetchAll(ctx, p.Name(), len(p.Podcasts), p.Concurrency, func(ctx context.Context, i int) ([]domain.Item, error) {
		return p.fetchFeed(ctx, p.Podcasts[i], now)
	})
	if err != nil {
		return nil, err
	}

	// rank by recency, undated episodes go last
	sort.SliceStable(items, func(i, j int) bool { return items[i].PubDate.After(items[j].PubDate) })
	for i := range items {
		items[i].FameScore = podcastScore(i, items[i].Title)
	}
	return Finalize(items, FinalizeOpts{Window: p.Window, KeepUndated: true, Limit: p.Limit, Now: now}), nil
}

func (p *Podcast) fetchFeed(ctx context.Context, f Feed, now time.Time) ([]domain.Item, error) {
	feed, err := p.Feeds.ParseURL(ctx, f.URL)
	if err != nil {
		return nil, fmt.Errorf("podcast %s: %w", f.Name, err)
	}

	feedImage := ""
	if feed.Image != nil {
		feedImage = feed.Image.URL
	}

	var res []domain.Item
	for _, entry := range firstN(feed.Items, podcastEntriesPerRSS) {
		pub := published(entry)
		if !withinWindow(pub, now, p.Window, true) {
			continue
		}
		key := entry.Link
		if key == "" {
			key = entryID(entry)
		}
		if key == "" {
			continue
		}
		audio := audioURL(entry)
		link := entry.Link
		if link == "" {
			link = audio
		}

		duration := "N/A"
		if entry.ITunesExt != nil && entry.ITunesExt.Duration != "" {
			duration = entry.ITunesExt.Duration
		}
		thumb := feedImage
		if entry.Image != nil && entry.Image.URL != "" {
			thumb = entry.Image.URL
		}

		res = append(res, domain.Item{
			SourceID:  episodeID(key),
			Module:    domain.ModuleApplePodcast,
			Title:     strings.TrimSpace(entry.Title),
			Summary:   domain.Truncate(StripHTML(entry.Description), podcastSummaryChars, ""),
			Link:      link,
			Source:    f.Name,
			Author:    f.Name,
			PubDate:   pub,
			Thumbnail: thumb,
			Extra: domain.Extra{Podcast: &domain.PodcastExtra{
				AudioURL: audio, Duration: duration, PodcastName: f.Name,
			}},
		})
	}
	return res, nil
}

// audioURL returns the first audio enclosure
func audioURL(entry *gofeed.Item) string {
	for _, enc := range entry.Enclosures {
		if enc != nil && strings.Contains(enc.Type, "audio") {
			return enc.URL
		}
	}
	return ""
}

// episodeID is the first 12 hex chars of md5 of the episode key
func episodeID(key string) string {
	sum := md5.Sum([]byte(key)) //nolint:gosec // short stable id, not security
	return hex.EncodeToString(sum[:])[:12]
}

// podcastScore gives newer episodes higher base score and adds a capped bonus per AI keyword in the title
func podcastScore(rank int, title string) int {
	base := max(podcastBaseScore-podcastRankStep*rank, podcastMinBase)
	lower := strings.ToLower(title)
	bonus := 0
	for _, kw := range podcastAIKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			bonus += podcastKeywordBonus
		}
	}
	return base + min(bonus, podcastMaxBonus)
}
