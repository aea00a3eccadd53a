package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/aidigest/pkg/domain"
)

func TestPodcast_Fetch(t *testing.T) {
	audio := func(url string) string {
		return `<enclosure url="https://img.example.com/cover.jpg" type="image/jpeg" length="1"/>` +
			`<enclosure url="` + url + `" type="audio/mpeg" length="100"/>`
	}
	feeds := staticFeeds(t, map[string]string{
		"https://pod1.example.com/rss": rssXML("Pod One",
			rssEntry{Title: "聊聊 AI 大模型和 Agent", Link: "https://pod1.example.com/ep1", PubDate: hoursAgo(20),
				Description: "<p>本期嘉宾</p>", Extra: audio("https://cdn.example.com/ep1.mp3") + "<itunes:duration>01:05:00</itunes:duration>"},
			rssEntry{Title: "旅行见闻", Link: "https://pod1.example.com/ep2", PubDate: hoursAgo(300)},
			rssEntry{Title: "无日期的一期", Link: "https://pod1.example.com/ep3"},
		),
		"https://pod2.example.com/rss": rssXML("Pod Two",
			rssEntry{Title: "硬件创业", GUID: "guid-1", PubDate: hoursAgo(2), Extra: audio("https://cdn.example.com/p2.mp3")},
		),
	})

	p := NewPodcast(PodcastParams{Feeds: feeds, Podcasts: []Feed{
		{URL: "https://pod1.example.com/rss", Name: "Pod One"},
		{URL: "https://pod2.example.com/rss", Name: "Pod Two"},
	}})
	items, err := p.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3, "stale episode dropped, undated kept")

	// recency ranks: pod2 (0), pod1 ep1 (1), undated ep3 (2)
	// ep1: 95 + ai, 大模型, agent = 45; 硬件创业: 100 + 创业 15; ep3: 90
	assert.Equal(t, episodeID("https://pod1.example.com/ep1"), items[0].SourceID)
	assert.Equal(t, 140, items[0].FameScore)
	assert.Equal(t, 115, items[1].FameScore)
	assert.Equal(t, episodeID("guid-1"), items[1].SourceID, "guid used when link is empty")
	assert.Equal(t, "https://cdn.example.com/p2.mp3", items[1].Link, "audio url used when link is empty")
	assert.Equal(t, 90, items[2].FameScore)
	assert.True(t, items[2].PubDate.IsZero())

	ep := items[0]
	assert.Equal(t, domain.ModuleApplePodcast, ep.Module)
	assert.Equal(t, "Pod One", ep.Source)
	assert.Equal(t, "本期嘉宾", ep.Summary)
	require.NotNil(t, ep.Extra.Podcast)
	assert.Equal(t, "https://cdn.example.com/ep1.mp3", ep.Extra.Podcast.AudioURL)
	assert.Equal(t, "01:05:00", ep.Extra.Podcast.Duration)
	assert.Equal(t, "Pod One", ep.Extra.Podcast.PodcastName)
	assert.Equal(t, "N/A", items[2].Extra.Podcast.Duration)
}

func TestPodcastScore(t *testing.T) {
	assert.Equal(t, 100, podcastScore(0, "闲聊"))
	assert.Equal(t, 10, podcastScore(50, "闲聊"), "base never below minimum")
	assert.Equal(t, 160, podcastScore(0, "AI GPT ChatGPT 大模型 LLM OpenAI"), "bonus capped")
	assert.Equal(t, 115, podcastScore(0, "anthropic"), "case insensitive")
}

func TestEpisodeID(t *testing.T) {
	id := episodeID("https://example.com/ep1")
	assert.Len(t, id, 12)
	assert.Equal(t, id, episodeID("https://example.com/ep1"))
	assert.NotEqual(t, id, episodeID("https://example.com/ep2"))
}
