package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemID(t *testing.T) {
	assert.Equal(t, "youtube_abc", ItemID(ModuleYouTube, "abc"))
	assert.Equal(t, "youtube_abc", ItemID(ModuleYouTube, "youtube_abc"))
	assert.Equal(t, "reddit_youtube_abc", ItemID(ModuleReddit, "youtube_abc"))
}

func TestTitleKey(t *testing.T) {
	tests := []struct {
		name, title, want string
	}{
		{"punctuation ignored", "OpenAI raises funding!!!", "openairaisesfunding"},
		{"case folded", "OpenAI Raises Funding", "openairaisesfunding"},
		{"non-latin kept", "硅谷101 AI!", "硅谷101ai"},
		{"only punctuation", "!!! ...", ""},
		{"empty", "", ""},
		{"capped at 50", strings.Repeat("ab", 40), strings.Repeat("ab", 25)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleKey(tt.title))
		})
	}
	assert.Equal(t, TitleKey("OpenAI raises funding"), TitleKey("OpenAI raises funding!!!"))
}

func TestItem_Normalize(t *testing.T) {
	it := Item{
		Title:     "  title ",
		Link:      " https://example.com ",
		Tags:      []Tag{{"a", TagTopic}, {"b", TagTopic}, {"c", TagTopic}, {"d", TagTopic}, {"e", TagTopic}},
		KeyPoints: []string{"1", "2", "3", "4", "5", "6", "7"},
	}
	it.Normalize()
	assert.Equal(t, "title", it.Title)
	assert.Equal(t, "https://example.com", it.Link)
	assert.Len(t, it.Tags, MaxTags)
	assert.Len(t, it.KeyPoints, MaxKeyPoints)

	empty := Item{}
	empty.Normalize()
	assert.NotNil(t, empty.Tags)
	assert.NotNil(t, empty.KeyPoints)
}

func TestItem_Age(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	it := Item{PubDate: now.Add(-10 * time.Hour)}
	assert.Equal(t, 10*time.Hour, it.Age(now))
	assert.Equal(t, time.Duration(0), (&Item{}).Age(now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5, "..."))
	assert.Equal(t, "ab...", Truncate("abcdef", 2, "..."))
	assert.Equal(t, "硅谷", Truncate("硅谷早知道", 2, ""))
	assert.Equal(t, "", Truncate("abc", 0, "..."))
}

func TestExtra_JSON(t *testing.T) {
	t.Run("video with guests", func(t *testing.T) {
		e := Extra{
			Video:  &VideoExtra{VideoID: "v1", Duration: "12:30", DurationSeconds: 750},
			Guests: []Guest{{Name: "Sam Altman", NameZh: "萨姆·奥特曼", Title: "CEO"}},
			Topics: []string{"AGI"},
		}
		data, err := json.Marshal(e)
		require.NoError(t, err)

		flat := map[string]any{}
		require.NoError(t, json.Unmarshal(data, &flat))
		assert.Equal(t, "video", flat["kind"])
		assert.Equal(t, "12:30", flat["duration"])
		assert.InDelta(t, 750, flat["duration_seconds"], 0.001)
		assert.Contains(t, flat, "guests")
		assert.Contains(t, flat, "topics")

		var back Extra
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, e, back)
		assert.Equal(t, "video", back.Kind())
	})

	t.Run("repo", func(t *testing.T) {
		e := Extra{Repo: &RepoExtra{RepoPath: "a/b", Stars: 1200, Features: []string{"fast"}}}
		data, err := json.Marshal(e)
		require.NoError(t, err)
		var back Extra
		require.NoError(t, json.Unmarshal(data, &back))
		require.NotNil(t, back.Repo)
		assert.Equal(t, 1200, back.Repo.Stars)
		assert.Equal(t, []string{"fast"}, back.Repo.Features)
		assert.Nil(t, back.Other)
	})

	t.Run("unknown keys kept in other", func(t *testing.T) {
		var e Extra
		require.NoError(t, json.Unmarshal([]byte(`{"kind":"podcast","audio_url":"https://a/b.mp3","custom":"x"}`), &e))
		require.NotNil(t, e.Podcast)
		assert.Equal(t, "https://a/b.mp3", e.Podcast.AudioURL)
		assert.Equal(t, map[string]any{"custom": "x"}, e.Other)
	})

	t.Run("empty", func(t *testing.T) {
		data, err := json.Marshal(Extra{})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))

		var e Extra
		require.NoError(t, json.Unmarshal([]byte(`null`), &e))
		assert.Equal(t, "", e.Kind())
	})

	t.Run("description", func(t *testing.T) {
		assert.Equal(t, "d", Extra{Video: &VideoExtra{Description: "d"}}.Description())
		assert.Equal(t, "", Extra{Podcast: &PodcastExtra{}}.Description())
	})
}

func TestRunStatus_Terminal(t *testing.T) {
	assert.False(t, RunPending.Terminal())
	assert.False(t, RunRunning.Terminal())
	assert.True(t, RunCompleted.Terminal())
	assert.True(t, RunFailed.Terminal())

	run := NewFetchRun("r1")
	assert.Equal(t, RunPending, run.Status)
	assert.Empty(t, run.Errors)
	assert.NotNil(t, run.ModulesProcessed)
}

func TestModule_Valid(t *testing.T) {
	assert.True(t, ModuleApplePodcast.Valid())
	assert.False(t, Module("forum").Valid())
	assert.Len(t, Modules, 7)
}
