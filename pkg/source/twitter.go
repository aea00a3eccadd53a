package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/aidigest/pkg/domain"
)

const (
	twitterAPIHost = "twitter241.p.rapidapi.com"
	twitterAPIURL  = "https://" + twitterAPIHost
	twitterLinkURL = "https://x.com/"
	tweetsPerUser  = 20
)

// ErrNoAPIKey is returned by adapters requiring an api key when none is configured
var ErrNoAPIKey = errors.New("api key is not set")

// TwitterParams configures microblog adapter
type TwitterParams struct {
	HTTP        *HTTPClient
	APIKey      string
	APIURL      string // base url of the rapidapi proxy
	Accounts    []Account
	Window      time.Duration
	Limit       int
	Concurrency int
}

// Twitter fetches recent posts of priority accounts through the RapidAPI proxy
type Twitter struct {
	TwitterParams
}

// NewTwitter makes microblog adapter with defaults for empty params
func NewTwitter(params TwitterParams) *Twitter {
	if params.APIURL == "" {
		params.APIURL = twitterAPIURL
	}
	if params.Accounts == nil {
		params.Accounts = TwitterAccounts
	}
	if params.Window == 0 {
		params.Window = DefaultWindow
	}
	if params.Limit == 0 {
		params.Limit = capTweets
	}
	return &Twitter{TwitterParams: params}
}

// Name returns module name
func (t *Twitter) Name() string { return string(domain.ModuleTwitter) }

// Fetch returns tweets of all accounts ordered by recency
func (t *Twitter) Fetch(ctx context.Context) ([]domain.Item, error) {
	if t.APIKey == "" {
		return nil, fmt.Errorf("twitter: %w", ErrNoAPIKey)
	}
	now := time.Now()
	items, err := fetchAll(ctx, t.Name(), len(t.Accounts), t.Concurrency, func(ctx context.Context, i int) ([]domain.Item, error) {
		return t.fetchAccount(ctx, t.Accounts[i], now)
	})
	if err != nil {
		return nil, err
	}
	return Finalize(items, FinalizeOpts{Window: t.Window, KeepUndated: true, ByRecency: true, Limit: t.Limit, Now: now}), nil
}

type twitterUserResp struct {
	Result struct {
		Data struct {
			User struct {
				Result struct {
					RestID string `json:"rest_id"`
				} `json:"result"`
			} `json:"user"`
		} `json:"data"`
	} `json:"result"`
}

type twitterTimelineResp struct {
	Result struct {
		Timeline struct {
			Instructions []struct {
				Type    string `json:"type"`
				Entries []struct {
					Content struct {
						ItemContent struct {
							TweetResults struct {
								Result tweetResult `json:"result"`
							} `json:"tweet_results"`
						} `json:"itemContent"`
					} `json:"content"`
				} `json:"entries"`
			} `json:"instructions"`
		} `json:"timeline"`
	} `json:"result"`
}

type tweetResult struct {
	TypeName string `json:"__typename"`
	RestID   string `json:"rest_id"`
	Legacy   struct {
		FullText  string `json:"full_text"`
		CreatedAt string `json:"created_at"`
	} `json:"legacy"`
}

func (t *Twitter) headers() map[string]string {
	host := twitterAPIHost
	if u, err := url.Parse(t.APIURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return map[string]string{"X-RapidAPI-Key": t.APIKey, "X-RapidAPI-Host": host}
}

func (t *Twitter) userID(ctx context.Context, username string) (string, error) {
	var resp twitterUserResp
	if err := t.HTTP.GetJSON(ctx, t.APIURL+"/user?username="+url.QueryEscape(username), t.headers(), &resp); err != nil {
		return "", err
	}
	id := resp.Result.Data.User.Result.RestID
	if id == "" {
		return "", fmt.Errorf("no user id for %s", username)
	}
	return id, nil
}

func (t *Twitter) fetchAccount(ctx context.Context, acc Account, now time.Time) ([]domain.Item, error) {
	uid, err := t.userID(ctx, acc.Username)
	if err != nil {
		return nil, fmt.Errorf("resolve @%s: %w", acc.Username, err)
	}

	var resp twitterTimelineResp
	tweetsURL := fmt.Sprintf("%s/user-tweets?user=%s&count=%d", t.APIURL, uid, tweetsPerUser)
	if err := t.HTTP.GetJSON(ctx, tweetsURL, t.headers(), &resp); err != nil {
		return nil, fmt.Errorf("tweets of @%s: %w", acc.Username, err)
	}

	var res []domain.Item
	for _, ins := range resp.Result.Timeline.Instructions {
		if ins.Type != "TimelineAddEntries" {
			continue
		}
		for _, e := range ins.Entries {
			tw := e.Content.ItemContent.TweetResults.Result
			if tw.TypeName != "Tweet" || tw.RestID == "" {
				continue
			}
			text := strings.TrimSpace(tw.Legacy.FullText)
			if text == "" || strings.HasPrefix(text, "RT @") {
				continue
			}
			pub := tweetTime(tw.Legacy.CreatedAt)
			if !withinWindow(pub, now, t.Window, true) {
				continue
			}
			it := domain.Item{
				SourceID: tw.RestID,
				Module:   domain.ModuleTwitter,
				Title:    domain.Truncate(text, 200, ""),
				Summary:  text,
				Link:     twitterLinkURL + acc.Username + "/status/" + tw.RestID,
				Source:   "@" + acc.Username,
				Author:   acc.Name,
				PubDate:  pub,
				Extra: domain.Extra{Tweet: &domain.TweetExtra{
					Username: acc.Username, Company: acc.Company, TweetID: tw.RestID, Priority: acc.Priority,
				}},
			}
			it.Tags = ExtractTags(text, twitterTagPatterns, domain.MaxTags)
			it.FameScore = priorityBonus(acc.Priority) + KeywordScore(text, twitterKeywordWeights)
			res = append(res, it)
		}
	}
	return res, nil
}

// tweetTime parses legacy created_at like "Wed Oct 10 20:19:24 +0000 2018", zero on failure
func tweetTime(s string) time.Time {
	ts, err := time.Parse(time.RubyDate, s)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}
