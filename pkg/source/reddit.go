package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/aidigest/pkg/domain"
)

const (
	redditURL    = "https://www.reddit.com"
	redditWindow = 7 * 24 * time.Hour
)

// RedditParams configures forum adapter
type RedditParams struct {
	HTTP        *HTTPClient
	BaseURL     string // listing base, /r/<sub>/hot.json appended
	Subreddits  []string
	Window      time.Duration
	Limit       int
	Concurrency int
}

// Reddit fetches hot posts of AI subreddits from the json listing
type Reddit struct {
	RedditParams
}

// NewReddit makes forum adapter with defaults for empty params
func NewReddit(params RedditParams) *Reddit {
	if params.BaseURL == "" {
		params.BaseURL = redditURL
	}
	if params.Subreddits == nil {
		params.Subreddits = Subreddits
	}
	if params.Window == 0 {
		params.Window = redditWindow
	}
	if params.Limit == 0 {
		params.Limit = capForum
	}
	return &Reddit{RedditParams: params}
}

// Name returns module name
func (r *Reddit) Name() string { return string(domain.ModuleReddit) }

// Fetch returns scored posts of all subreddits
func (r *Reddit) Fetch(ctx context.Context) ([]domain.Item, error) {
	now := time.Now()
	items, err := fetchAll(ctx, r.Name(), len(r.Subreddits), r.Concurrency, func(ctx context.Context, i int) ([]domain.Item, error) {
		return r.fetchSubreddit(ctx, r.Subreddits[i], now)
	})
	if err != nil {
		return nil, err
	}
	return Finalize(items, FinalizeOpts{Window: r.Window, Limit: r.Limit, Now: now}), nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	CreatedUTC  float64 `json:"created_utc"`
	Thumbnail   string  `json:"thumbnail"`
	Stickied    bool    `json:"stickied"`
	IsVideo     bool    `json:"is_video"`
	Flair       string  `json:"link_flair_text"`
}

func (r *Reddit) fetchSubreddit(ctx context.Context, sub string, now time.Time) ([]domain.Item, error) {
	var listing redditListing
	listURL := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", r.BaseURL, sub, redditPostsPerSub)
	if err := r.HTTP.GetJSON(ctx, listURL, nil, &listing); err != nil {
		return nil, fmt.Errorf("r/%s: %w", sub, err)
	}

	var res []domain.Item
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Stickied || post.IsVideo || post.ID == "" {
			continue
		}
		pub := time.Unix(int64(post.CreatedUTC), 0).UTC()
		if !withinWindow(pub, now, r.Window, false) {
			continue
		}

		selftext := domain.Truncate(post.Selftext, 500, "")
		thumb := post.Thumbnail
		if redditBadThumbnails[thumb] || !strings.HasPrefix(thumb, "http") {
			thumb = ""
		}
		it := domain.Item{
			SourceID:  post.ID,
			Module:    domain.ModuleReddit,
			Title:     strings.TrimSpace(post.Title),
			Summary:   domain.Truncate(selftext, redditSummaryChars, ""),
			Link:      redditURL + post.Permalink,
			Source:    "r/" + sub,
			Author:    "u/" + post.Author,
			PubDate:   pub,
			Thumbnail: thumb,
			Extra: domain.Extra{Forum: &domain.ForumExtra{
				Subreddit: sub, Score: post.Score, NumComments: post.NumComments,
				UpvoteRatio: post.UpvoteRatio, Flair: post.Flair,
			}},
		}
		it.Tags = redditTags(sub, it.Title+" "+selftext)
		it.FameScore = TierBonus(post.Score, redditUpvoteTiers) + TierBonus(post.NumComments, redditCommentTiers)
		if redditHotSubreddits[sub] {
			it.FameScore += redditHotBonus
		}
		res = append(res, it)
	}
	return res, nil
}

// redditTags puts the subreddit tag first and fills the rest from keyword patterns
func redditTags(sub, text string) []domain.Tag {
	res := []domain.Tag{}
	if t, ok := subredditTags[sub]; ok {
		res = append(res, t)
	}
	for _, t := range ExtractTags(text, redditTagPatterns, domain.MaxTags) {
		if len(res) >= domain.MaxTags {
			break
		}
		if len(res) > 0 && res[0].Label == t.Label {
			continue
		}
		res = append(res, t)
	}
	return res
}
