package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/aidigest/pkg/domain"
)

func redditPostJSON(id, title string, age time.Duration, score, comments int, extra string) string {
	return fmt.Sprintf(`{"kind":"t3","data":{"id":%q,"title":%q,"selftext":"body of %s","permalink":"/r/x/comments/%s/",
"author":"bob","score":%d,"num_comments":%d,"upvote_ratio":0.97,"created_utc":%d,"thumbnail":"self"%s}}`,
		id, title, id, id, score, comments, time.Now().Add(-age).Unix(), extra)
}

func TestReddit_Fetch(t *testing.T) {
	listings := map[string]string{
		"/r/LocalLLaMA/hot.json": `{"data":{"children":[` + strings.Join([]string{
			redditPostJSON("a1", "Llama fine-tuning guide", time.Hour, 1200, 250, `,"link_flair_text":"Tutorial"`),
			redditPostJSON("a2", "Weekly thread", time.Hour, 5000, 900, `,"stickied":true`),
			redditPostJSON("a3", "Demo video", time.Hour, 800, 10, `,"is_video":true`),
			redditPostJSON("a4", "Old benchmark", 8*24*time.Hour, 3000, 300, ""),
		}, ",") + `]}}`,
		"/r/artificial/hot.json": `{"data":{"children":[` +
			redditPostJSON("b1", "Agents everywhere", 2*time.Hour, 120, 60, `,"thumbnail":"https://thumbs.example.com/b1.jpg"`) +
			`]}}`,
	}
	var (
		mu    sync.Mutex
		gotUA []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotUA = append(gotUA, r.Header.Get("User-Agent"))
		mu.Unlock()
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		body, ok := listings[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	r := NewReddit(RedditParams{
		HTTP:        NewHTTPClient(5*time.Second, ""),
		BaseURL:     ts.URL,
		Subreddits:  []string{"LocalLLaMA", "artificial", "blocked"},
		Concurrency: 1,
	})
	items, err := r.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a1", "b1"}, ids(items))

	post := items[0]
	assert.Equal(t, domain.ModuleReddit, post.Module)
	assert.Equal(t, "https://www.reddit.com/r/x/comments/a1/", post.Link)
	assert.Equal(t, "r/LocalLLaMA", post.Source)
	assert.Equal(t, "u/bob", post.Author)
	assert.Equal(t, "body of a1", post.Summary)
	assert.Empty(t, post.Thumbnail, "self thumbnail blanked")
	// upvotes 50 + comments 30 + hot 15
	assert.Equal(t, 95, post.FameScore)
	assert.Equal(t, []domain.Tag{
		{Label: "LocalLLM", Type: domain.TagTopic},
		{Label: "OpenSource", Type: domain.TagTopic},
		{Label: "FineTune", Type: domain.TagTopic},
	}, post.Tags)
	assert.Equal(t, &domain.ForumExtra{Subreddit: "LocalLLaMA", Score: 1200, NumComments: 250, UpvoteRatio: 0.97, Flair: "Tutorial"},
		post.Extra.Forum)

	// upvotes 20 + comments 10, no subreddit tag
	assert.Equal(t, 30, items[1].FameScore)
	assert.Equal(t, "https://thumbs.example.com/b1.jpg", items[1].Thumbnail)
	assert.Equal(t, []domain.Tag{{Label: "Agent", Type: domain.TagTopic}}, items[1].Tags)

	mu.Lock()
	defer mu.Unlock()
	for _, ua := range gotUA {
		assert.Contains(t, ua, "Mozilla/5.0")
	}
}

func TestRedditTags(t *testing.T) {
	tags := redditTags("OpenAI", "gpt-5 agent rag benchmark llama")
	require.Len(t, tags, domain.MaxTags)
	assert.Equal(t, "OpenAI", tags[0].Label)
	assert.Equal(t, domain.TagCompany, tags[0].Type)
}
