package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Extra carries per-module enrichments. At most one typed payload is set, Guests and Topics
// come from the LLM and Other keeps keys no payload knows about.
// It is stored as a flat JSON object with a "kind" key naming the payload.
type Extra struct {
	Video   *VideoExtra
	Podcast *PodcastExtra
	Repo    *RepoExtra
	Tweet   *TweetExtra
	Forum   *ForumExtra
	Article *ArticleExtra

	Guests []Guest
	Topics []string
	Other  map[string]any
}

// VideoExtra is the payload of video items
type VideoExtra struct {
	VideoID         string `json:"video_id,omitempty"`
	Duration        string `json:"duration,omitempty"`
	DurationSeconds int    `json:"duration_seconds"`
	ThumbnailMQ     string `json:"thumbnail_mq,omitempty"`
	Description     string `json:"description,omitempty"`
}

// PodcastExtra is the payload of podcast episodes
type PodcastExtra struct {
	AudioURL    string `json:"audio_url,omitempty"`
	Duration    string `json:"duration,omitempty"`
	PodcastName string `json:"podcast_name,omitempty"`
}

// RepoExtra is the payload of trending repositories
type RepoExtra struct {
	RepoPath     string   `json:"repo_path,omitempty"`
	Owner        string   `json:"owner,omitempty"`
	Language     string   `json:"language,omitempty"`
	Stars        int      `json:"stars"`
	StarsWeek    string   `json:"stars_week,omitempty"`
	Forks        string   `json:"forks,omitempty"`
	Features     []string `json:"features,omitempty"`
	TechStack    []string `json:"tech_stack,omitempty"`
	UseCases     []string `json:"use_cases,omitempty"`
	Installation string   `json:"installation,omitempty"`
}

// TweetExtra is the payload of microblog posts
type TweetExtra struct {
	Username string `json:"username,omitempty"`
	Company  string `json:"company,omitempty"`
	TweetID  string `json:"tweet_id,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

// ForumExtra is the payload of forum posts
type ForumExtra struct {
	Subreddit   string  `json:"subreddit,omitempty"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	UpvoteRatio float64 `json:"upvote_ratio,omitempty"`
	Flair       string  `json:"flair,omitempty"`
}

// ArticleExtra is the payload of newsletter, blog and news entries
type ArticleExtra struct {
	Origin  string `json:"origin,omitempty"` // substack, official or news
	Slug    string `json:"slug,omitempty"`
	FeedURL string `json:"feed_url,omitempty"`
	FeedID  string `json:"feed_id,omitempty"`
}

// Guest is a podcast or video guest extracted by the LLM
type Guest struct {
	Name   string `json:"name"`
	NameZh string `json:"name_zh,omitempty"`
	Title  string `json:"title,omitempty"`
}

// kind names used in the "kind" key
const (
	kindVideo   = "video"
	kindPodcast = "podcast"
	kindRepo    = "repo"
	kindTweet   = "tweet"
	kindForum   = "forum"
	kindArticle = "article"
)

// Kind returns the name of the set payload, empty if none
func (e Extra) Kind() string {
	kind, _ := e.payload()
	return kind
}

// Description returns the text the LLM gets for video-like items
func (e Extra) Description() string {
	if e.Video != nil {
		return e.Video.Description
	}
	return ""
}

func (e Extra) payload() (string, any) {
	switch {
	case e.Video != nil:
		return kindVideo, e.Video
	case e.Podcast != nil:
		return kindPodcast, e.Podcast
	case e.Repo != nil:
		return kindRepo, e.Repo
	case e.Tweet != nil:
		return kindTweet, e.Tweet
	case e.Forum != nil:
		return kindForum, e.Forum
	case e.Article != nil:
		return kindArticle, e.Article
	}
	return "", nil
}

// MarshalJSON flattens the payload, guests, topics and other keys into one object
func (e Extra) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	for k, v := range e.Other {
		out[k] = v
	}

	if kind, p := e.payload(); p != nil {
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", kind, err)
		}
		fields := map[string]any{}
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("flatten %s payload: %w", kind, err)
		}
		for k, v := range fields {
			out[k] = v
		}
		out["kind"] = kind
	}

	if e.Guests != nil {
		out["guests"] = e.Guests
	}
	if e.Topics != nil {
		out["topics"] = e.Topics
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the payload named by "kind", unknown keys go to Other
func (e *Extra) UnmarshalJSON(data []byte) error {
	*e = Extra{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal extra: %w", err)
	}

	var kind string
	if v, ok := raw["kind"]; ok {
		if err := json.Unmarshal(v, &kind); err != nil {
			return fmt.Errorf("unmarshal extra kind: %w", err)
		}
	}

	var payload any
	switch kind {
	case kindVideo:
		e.Video = &VideoExtra{}
		payload = e.Video
	case kindPodcast:
		e.Podcast = &PodcastExtra{}
		payload = e.Podcast
	case kindRepo:
		e.Repo = &RepoExtra{}
		payload = e.Repo
	case kindTweet:
		e.Tweet = &TweetExtra{}
		payload = e.Tweet
	case kindForum:
		e.Forum = &ForumExtra{}
		payload = e.Forum
	case kindArticle:
		e.Article = &ArticleExtra{}
		payload = e.Article
	}

	known := map[string]bool{"kind": true, "guests": true, "topics": true}
	if payload != nil {
		if err := json.Unmarshal(data, payload); err != nil {
			return fmt.Errorf("unmarshal %s payload: %w", kind, err)
		}
		for _, k := range jsonKeys(reflect.TypeOf(payload).Elem()) {
			known[k] = true
		}
	}

	if v, ok := raw["guests"]; ok {
		if err := json.Unmarshal(v, &e.Guests); err != nil {
			return fmt.Errorf("unmarshal guests: %w", err)
		}
	}
	if v, ok := raw["topics"]; ok {
		if err := json.Unmarshal(v, &e.Topics); err != nil {
			return fmt.Errorf("unmarshal topics: %w", err)
		}
	}

	for k, v := range raw {
		if known[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("unmarshal extra key %s: %w", k, err)
		}
		if e.Other == nil {
			e.Other = map[string]any{}
		}
		e.Other[k] = val
	}
	return nil
}

// jsonKeys returns json field names of a struct type
func jsonKeys(t reflect.Type) []string {
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		keys = append(keys, name)
	}
	return keys
}
