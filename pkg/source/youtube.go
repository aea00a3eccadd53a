package source

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/aidigest/pkg/domain"
)

const (
	youtubeFeedURL  = "https://www.youtube.com/feeds/videos.xml?channel_id="
	youtubeWatchURL = "https://www.youtube.com/watch?v="
	youtubeThumbURL = "https://img.youtube.com/vi/"
)

// DurationProber returns video length in seconds, 0 when unknown
type DurationProber interface {
	Duration(ctx context.Context, videoID string) int
}

// YouTubeParams configures YouTube adapter
type YouTubeParams struct {
	Feeds       FeedFetcher
	Prober      DurationProber // optional, nil keeps every entry with unknown duration
	FeedURL     string         // channel feed url prefix, channel id appended
	Channels    []Channel
	Window      time.Duration
	Limit       int
	Concurrency int
}

// YouTube fetches recent long-form videos from channel feeds
type YouTube struct {
	YouTubeParams
}

// NewYouTube makes YouTube adapter with defaults for empty params
func NewYouTube(params YouTubeParams) *YouTube {
	if params.FeedURL == "" {
		params.FeedURL = youtubeFeedURL
	}
	if params.Channels == nil {
		params.Channels = YouTubeChannels
	}
	if params.Window == 0 {
		params.Window = DefaultWindow
	}
	if params.Limit == 0 {
		params.Limit = capVideo
	}
	return &YouTube{YouTubeParams: params}
}

// Name returns module name
func (y *YouTube) Name() string { return string(domain.ModuleYouTube) }

// Fetch returns scored videos from all channels
func (y *YouTube) Fetch(ctx context.Context) ([]domain.Item, error) {
	now := time.Now()
	items, err := fetchAll(ctx, y.Name(), len(y.Channels), y.Concurrency, func(ctx context.Context, i int) ([]domain.Item, error) {
		return y.fetchChannel(ctx, y.Channels[i], now)
	})
	if err != nil {
		return nil, err
	}
	return Finalize(items, FinalizeOpts{Window: y.Window, Limit: y.Limit, Now: now}), nil
}

func (y *YouTube) fetchChannel(ctx context.Context, ch Channel, now time.Time) ([]domain.Item, error) {
	feed, err := y.Feeds.ParseURL(ctx, y.FeedURL+ch.ID)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", ch.Name, err)
	}

	var res []domain.Item
	for _, entry := range firstN(feed.Items, 10) {
		pub := published(entry)
		if !withinWindow(pub, now, y.Window, false) {
			continue
		}
		id := videoID(entry)
		if id == "" {
			continue
		}

		seconds := 0
		if y.Prober != nil {
			seconds = y.Prober.Duration(ctx, id)
		}
		if seconds > 0 && seconds < minVideoSeconds {
			lgr.Printf("[DEBUG] skip short video %q (%ds)", entry.Title, seconds)
			continue
		}

		it := domain.Item{
			SourceID:  id,
			Module:    domain.ModuleYouTube,
			Title:     entry.Title,
			Link:      youtubeWatchURL + id,
			Source:    ch.Name,
			Author:    ch.Name,
			PubDate:   pub,
			Thumbnail: youtubeThumbURL + id + "/maxresdefault.jpg",
			Extra: domain.Extra{Video: &domain.VideoExtra{
				VideoID:         id,
				Duration:        FormatDuration(seconds),
				DurationSeconds: seconds,
				ThumbnailMQ:     youtubeThumbURL + id + "/mqdefault.jpg",
				Description:     videoDescription(entry),
			}},
		}
		it.Tags = ExtractTags(it.Title, youtubeEntityPatterns, domain.MaxTags)
		it.FameScore = FirstWeight(it.Source, youtubeChannelWeights) + KeywordScore(it.Title, youtubeEntityWeights)
		res = append(res, it)
	}
	return res, nil
}

func videoID(entry *gofeed.Item) string {
	if id := extValue(entry, "yt", "videoId"); id != "" {
		return id
	}
	if m := watchIDRe.FindStringSubmatch(entry.Link); len(m) == 2 {
		return m[1]
	}
	return ""
}

var watchIDRe = regexp.MustCompile(`[?&]v=([\w-]+)`)

func videoDescription(entry *gofeed.Item) string {
	if d := mediaDescription(entry); d != "" {
		return d
	}
	return entry.Description
}

// FormatDuration formats seconds as H:MM:SS or M:SS, N/A for unknown
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "N/A"
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// WatchPageProber reads lengthSeconds from the video watch page
type WatchPageProber struct {
	HTTP     *HTTPClient
	WatchURL string // video id appended
}

var lengthSecondsRe = regexp.MustCompile(`"lengthSeconds":"(\d+)"`)

// Duration returns video length, 0 on any failure
func (p *WatchPageProber) Duration(ctx context.Context, videoID string) int {
	watchURL := p.WatchURL
	if watchURL == "" {
		watchURL = youtubeWatchURL
	}
	body, err := p.HTTP.Get(ctx, watchURL+videoID, nil, 0)
	if err != nil {
		lgr.Printf("[DEBUG] can't probe duration of %s: %v", videoID, err)
		return 0
	}
	m := lengthSecondsRe.FindSubmatch(body)
	if len(m) != 2 {
		return 0
	}
	v, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0
	}
	return v
}
