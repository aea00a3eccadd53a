package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/aidigest/pkg/domain"
	"github.com/umputun/aidigest/pkg/pipeline/mocks"
)

// memStore keeps runs and partitions in memory
type memStore struct {
	mu         sync.Mutex
	runs       map[string]domain.FetchRun
	partitions map[domain.Module][]domain.Item
	updates    int
	replaceErr map[domain.Module]error
}

func newMemStore(runID string) *memStore {
	return &memStore{
		runs:       map[string]domain.FetchRun{runID: domain.NewFetchRun(runID)},
		partitions: map[domain.Module][]domain.Item{},
		replaceErr: map[domain.Module]error{},
	}
}

func (s *memStore) mock() *mocks.StoreMock {
	return &mocks.StoreMock{
		GetRunFunc: func(_ context.Context, id string) (domain.FetchRun, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			r, ok := s.runs[id]
			if !ok {
				return domain.FetchRun{}, errors.New("not found")
			}
			return r, nil
		},
		UpdateRunFunc: func(_ context.Context, run domain.FetchRun) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			// copy collections, the coordinator keeps mutating its own
			mp := make(map[domain.Module]domain.ModuleResult, len(run.ModulesProcessed))
			for k, v := range run.ModulesProcessed {
				mp[k] = v
			}
			run.ModulesProcessed = mp
			run.Errors = append([]string{}, run.Errors...)
			s.runs[run.ID] = run
			s.updates++
			return nil
		},
		ReplaceModuleItemsFunc: func(_ context.Context, module domain.Module, items []domain.Item) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if err := s.replaceErr[module]; err != nil {
				return err
			}
			s.partitions[module] = append([]domain.Item{}, items...)
			return nil
		},
	}
}

func (s *memStore) run(id string) domain.FetchRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[id]
}

func (s *memStore) partition(m domain.Module) []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partitions[m]
}

func staticAdapter(name string, items ...domain.Item) *mocks.AdapterMock {
	return &mocks.AdapterMock{
		NameFunc:  func() string { return name },
		FetchFunc: func(context.Context) ([]domain.Item, error) { return items, nil },
	}
}

func failingAdapter(name string, err error) *mocks.AdapterMock {
	return &mocks.AdapterMock{
		NameFunc:  func() string { return name },
		FetchFunc: func(context.Context) ([]domain.Item, error) { return nil, err },
	}
}

func item(id, title string) domain.Item {
	return domain.Item{SourceID: id, Title: title, Link: "https://example.com/" + id}
}

// nopSummarizer picks the hero returned by pick and records enrichment calls
func nopSummarizer(pick func([]domain.Item) int) *mocks.SummarizerMock {
	return &mocks.SummarizerMock{
		SelectHeroFunc: func(_ context.Context, items []domain.Item, _ string) int { return pick(items) },
		ProcessHeroFunc: func(_ context.Context, it *domain.Item, _ domain.ContentType) {
			it.TitleZh = "hero " + it.Title
			it.CoreInsight = "insight"
		},
		TranslateTweetFunc: func(_ context.Context, it *domain.Item) { it.TitleZh = "tweet " + it.Title },
		TranslateVideoFunc: func(_ context.Context, it *domain.Item) { it.TitleZh = "video " + it.Title },
		BatchTranslateFunc: func(_ context.Context, items []domain.Item, limit int) {
			for i := range items[:limit] {
				items[i].TitleZh = "zh " + items[i].Title
			}
		},
		BatchSummarizeFunc:       func(context.Context, []domain.Item, int) {},
		BatchTranslateTweetsFunc: func(context.Context, []domain.Item, int) {},
		BatchTranslateVideosFunc: func(context.Context, []domain.Item, int) {},
	}
}

func firstHero([]domain.Item) int { return 0 }

func TestCoordinator_Run(t *testing.T) {
	store := newMemStore("run1")
	summ := nopSummarizer(firstHero)
	c := NewCoordinator(Params{
		Store:      store.mock(),
		Summarizer: summ,
		Modules: []Module{
			{Name: domain.ModuleSubstack, Type: domain.ContentArticle,
				Adapter: staticAdapter("substack", item("a", "Alpha"), item("b", "Beta"), item("c", "Gamma"))},
			{Name: domain.ModuleTwitter, Type: domain.ContentMicroblog,
				Adapter: staticAdapter("twitter", item("t1", "tweet one"), item("t2", "tweet two"))},
		},
	})

	run, err := c.Run(context.Background(), "run1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, run.Status)
	require.NotNil(t, run.StartedAt)
	require.NotNil(t, run.CompletedAt)
	assert.Equal(t, 5, run.TotalItems)
	assert.Empty(t, run.Errors)
	require.Len(t, run.ModulesProcessed, 2)
	require.NotNil(t, run.ModulesProcessed[domain.ModuleSubstack].Hero)
	assert.Equal(t, "Alpha", *run.ModulesProcessed[domain.ModuleSubstack].Hero)
	assert.Equal(t, 3, run.ModulesProcessed[domain.ModuleSubstack].Count)

	stored := store.run("run1")
	assert.Equal(t, domain.RunCompleted, stored.Status)
	assert.Equal(t, run.ModulesProcessed, stored.ModulesProcessed)
	// running, one progress update per module, completed
	assert.Equal(t, 4, store.updates)

	articles := store.partition(domain.ModuleSubstack)
	require.Len(t, articles, 3)
	assert.Equal(t, "substack_a", articles[0].ID)
	assert.Equal(t, "hero Alpha", articles[0].TitleZh)
	assert.Equal(t, "zh Beta", articles[1].TitleZh)
	assert.Equal(t, "zh Gamma", articles[2].TitleZh)
	for _, it := range articles {
		assert.Equal(t, "run1", it.FetchRunID)
		assert.Equal(t, domain.ModuleSubstack, it.Module)
		assert.NotNil(t, it.Tags)
	}

	tweets := store.partition(domain.ModuleTwitter)
	require.Len(t, tweets, 2)
	assert.Equal(t, "tweet tweet one", tweets[0].TitleZh)
	assert.Len(t, summ.TranslateTweetCalls(), 1)
	require.Len(t, summ.BatchTranslateTweetsCalls(), 1)
	assert.Equal(t, 1, summ.BatchTranslateTweetsCalls()[0].Limit)
	assert.Len(t, summ.ProcessHeroCalls(), 1, "process hero only for the article module")
}

func TestCoordinator_HeroFallback(t *testing.T) {
	// selector could not parse the reply and returned out of range
	store := newMemStore("r")
	c := NewCoordinator(Params{
		Store:      store.mock(),
		Summarizer: nopSummarizer(func([]domain.Item) int { return -1 }),
		Modules: []Module{{Name: domain.ModuleBusiness, Type: domain.ContentNews,
			Adapter: staticAdapter("business", item("A", "A"), item("B", "B"), item("C", "C"))}},
	})
	_, err := c.Run(context.Background(), "r")
	require.NoError(t, err)

	items := store.partition(domain.ModuleBusiness)
	require.Len(t, items, 3)
	assert.True(t, items[0].IsHero)
	assert.False(t, items[1].IsHero)
	assert.False(t, items[2].IsHero)
}

func TestCoordinator_HeroUnique(t *testing.T) {
	store := newMemStore("r")
	c := NewCoordinator(Params{
		Store: store.mock(),
		Summarizer: nopSummarizer(func(items []domain.Item) int {
			for i, it := range items {
				if it.ID == "youtube_42" {
					return i
				}
			}
			return 0
		}),
		Modules: []Module{{Name: domain.ModuleYouTube, Type: domain.ContentVideo,
			Adapter: staticAdapter("youtube", item("1", "one"), item("42", "forty two"), item("7", "seven"))}},
	})
	run, err := c.Run(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, "forty two", *run.ModulesProcessed[domain.ModuleYouTube].Hero)

	heroes := 0
	for _, it := range store.partition(domain.ModuleYouTube) {
		if it.IsHero {
			heroes++
			assert.Equal(t, "youtube_42", it.ID)
			assert.Equal(t, "video forty two", it.TitleZh)
		}
	}
	assert.Equal(t, 1, heroes)
}

func TestCoordinator_ModuleIsolation(t *testing.T) {
	store := newMemStore("r")
	previous := []domain.Item{{ID: "twitter_old", Module: domain.ModuleTwitter, Link: "https://x.com/old"}}
	store.partitions[domain.ModuleTwitter] = previous
	store.partitions[domain.ModuleReddit] = []domain.Item{{ID: "reddit_old"}}

	c := NewCoordinator(Params{
		Store:      store.mock(),
		Summarizer: nopSummarizer(firstHero),
		Modules: []Module{
			{Name: domain.ModuleTwitter, Type: domain.ContentMicroblog, Adapter: failingAdapter("twitter", errors.New("api down"))},
			{Name: domain.ModuleReddit, Type: domain.ContentForum, Adapter: staticAdapter("reddit", item("p1", "post"))},
			{Name: domain.ModuleProducts, Type: domain.ContentProduct, Adapter: staticAdapter("products", item("r1", "repo"))},
		},
	})
	run, err := c.Run(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, run.Status)
	assert.Equal(t, []string{"twitter: api down"}, run.Errors)
	assert.Len(t, run.ModulesProcessed, 2)
	assert.NotContains(t, run.ModulesProcessed, domain.ModuleTwitter)

	assert.Equal(t, previous, store.partition(domain.ModuleTwitter), "failed module partition untouched")
	reddit := store.partition(domain.ModuleReddit)
	require.Len(t, reddit, 1)
	assert.Equal(t, "reddit_p1", reddit[0].ID)
	assert.Len(t, store.partition(domain.ModuleProducts), 1)
}

func TestCoordinator_FailuresCounted(t *testing.T) {
	// k failing and m succeeding modules give completed, len(errors) >= k, len(modulesProcessed) == m
	store := newMemStore("r")
	store.replaceErr[domain.ModuleBusiness] = errors.New("disk full")
	rec := &mocks.RecorderMock{
		RunFinishedFunc: func(string, time.Duration) {},
		ModuleItemsFunc: func(string, int) {},
		ModuleErrorFunc: func(string) {},
	}
	panicky := &mocks.AdapterMock{
		NameFunc:  func() string { return "substack" },
		FetchFunc: func(context.Context) ([]domain.Item, error) { panic("boom") },
	}
	c := NewCoordinator(Params{
		Store:      store.mock(),
		Summarizer: nopSummarizer(firstHero),
		Recorder:   rec,
		Modules: []Module{
			{Name: domain.ModuleYouTube, Type: domain.ContentVideo, Adapter: staticAdapter("youtube", item("v", "video"))},
			{Name: domain.ModuleSubstack, Type: domain.ContentArticle, Adapter: panicky},
			{Name: domain.ModuleBusiness, Type: domain.ContentNews, Adapter: staticAdapter("business", item("n", "news"))},
			{Name: domain.ModuleApplePodcast, Type: domain.ContentAudio, Adapter: staticAdapter("apple_podcast")},
			{Name: domain.ModuleTwitter, Type: domain.ContentMicroblog, Adapter: nil},
		},
	})
	run, err := c.Run(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, run.Status)
	assert.Len(t, run.ModulesProcessed, 2)
	require.Len(t, run.Errors, 3)
	assert.Equal(t, "substack: panic: boom", run.Errors[0])
	assert.Equal(t, "business: replace items: disk full", run.Errors[1])
	assert.Equal(t, "twitter: no adapter", run.Errors[2])

	// empty feed records zero count and no hero, without storage writes
	assert.Equal(t, domain.ModuleResult{Count: 0, Hero: nil}, run.ModulesProcessed[domain.ModuleApplePodcast])
	assert.Nil(t, store.partition(domain.ModuleApplePodcast))

	require.Len(t, rec.RunFinishedCalls(), 1)
	assert.Equal(t, "completed", rec.RunFinishedCalls()[0].Status)
	assert.Len(t, rec.ModuleErrorCalls(), 3)
	assert.Len(t, rec.ModuleItemsCalls(), 2)
}

func TestCoordinator_TranslateLimit(t *testing.T) {
	store := newMemStore("r")
	var fetched []domain.Item
	for i := range 40 {
		fetched = append(fetched, item(string(rune('a'+i%26))+string(rune('a'+i/26)), "title"))
	}
	summ := nopSummarizer(func([]domain.Item) int { return 3 })
	c := NewCoordinator(Params{
		Store:      store.mock(),
		Summarizer: summ,
		Modules:    []Module{{Name: domain.ModuleProducts, Type: domain.ContentProduct, Adapter: staticAdapter("products", fetched...)}},
	})
	run, err := c.Run(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, 30, run.ModulesProcessed[domain.ModuleProducts].Count)

	items := store.partition(domain.ModuleProducts)
	require.Len(t, items, 30)
	require.Len(t, summ.BatchTranslateCalls(), 1)
	assert.Equal(t, 10, summ.BatchTranslateCalls()[0].Limit)
	translated := 0
	for i, it := range items {
		if it.TitleZh == "zh title" {
			translated++
			assert.NotEqual(t, 3, i, "hero is not batch translated")
		}
	}
	assert.Equal(t, 10, translated)
	assert.Equal(t, "hero title", items[3].TitleZh)
	assert.True(t, items[3].IsHero)
}

func TestCoordinator_SingleItem(t *testing.T) {
	store := newMemStore("r")
	summ := nopSummarizer(firstHero)
	c := NewCoordinator(Params{
		Store:      store.mock(),
		Summarizer: summ,
		Modules:    []Module{{Name: domain.ModuleReddit, Type: domain.ContentForum, Adapter: staticAdapter("reddit", item("x", "only"))}},
	})
	run, err := c.Run(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, "only", *run.ModulesProcessed[domain.ModuleReddit].Hero)
	assert.Empty(t, summ.BatchSummarizeCalls(), "nothing left to translate")
	assert.True(t, store.partition(domain.ModuleReddit)[0].IsHero)
}

func TestPrepare(t *testing.T) {
	fetched := []domain.Item{
		item("1", "one"),
		{SourceID: "2", Title: "no link"},
		item("1", "dup"),
		{ID: "substack_3", Link: "https://example.com/3"},
		item("4", "four"),
	}
	res := prepare(domain.ModuleSubstack, fetched, 2)
	require.Len(t, res, 2)
	assert.Equal(t, "substack_1", res[0].ID)
	assert.Equal(t, "substack_3", res[1].ID)
	for _, it := range res {
		assert.Equal(t, domain.ModuleSubstack, it.Module)
	}
}

func TestCoordinator_RunFatal(t *testing.T) {
	t.Run("missing run", func(t *testing.T) {
		store := newMemStore("r")
		c := NewCoordinator(Params{Store: store.mock(), Summarizer: nopSummarizer(firstHero)})
		_, err := c.Run(context.Background(), "nope")
		require.Error(t, err)
	})

	t.Run("terminal run", func(t *testing.T) {
		store := newMemStore("r")
		r := store.runs["r"]
		r.Status = domain.RunCompleted
		store.runs["r"] = r
		c := NewCoordinator(Params{Store: store.mock(), Summarizer: nopSummarizer(firstHero)})
		_, err := c.Run(context.Background(), "r")
		require.Error(t, err)
	})

	t.Run("canceled", func(t *testing.T) {
		store := newMemStore("r")
		ctx, cancel := context.WithCancel(context.Background())
		adapter := &mocks.AdapterMock{
			NameFunc: func() string { return "youtube" },
			FetchFunc: func(context.Context) ([]domain.Item, error) {
				cancel()
				return []domain.Item{item("1", "one")}, nil
			},
		}
		c := NewCoordinator(Params{Store: store.mock(), Summarizer: nopSummarizer(firstHero),
			Modules: []Module{{Name: domain.ModuleYouTube, Type: domain.ContentVideo, Adapter: adapter}}})
		run, err := c.Run(ctx, "r")
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, domain.RunFailed, run.Status)
		assert.Equal(t, domain.RunFailed, store.run("r").Status)
		assert.Nil(t, store.partition(domain.ModuleYouTube), "no replace after cancel")
	})

	t.Run("store rejects running state", func(t *testing.T) {
		sm := newMemStore("r").mock()
		calls := 0
		sm.UpdateRunFunc = func(context.Context, domain.FetchRun) error {
			calls++
			return errors.New("db down")
		}
		c := NewCoordinator(Params{Store: sm, Summarizer: nopSummarizer(firstHero)})
		run, err := c.Run(context.Background(), "r")
		require.Error(t, err)
		assert.Equal(t, domain.RunFailed, run.Status)
		assert.Equal(t, 2, calls, "running attempt and failed attempt")
	})
}

func TestCoordinator_Concurrent(t *testing.T) {
	store := newMemStore("r")
	var modules []Module
	for _, m := range domain.Modules {
		modules = append(modules, Module{Name: m, Type: domain.ContentArticle,
			Adapter: staticAdapter(string(m), item("1", string(m)), item("2", "second"))})
	}
	c := NewCoordinator(Params{Store: store.mock(), Summarizer: nopSummarizer(firstHero), Modules: modules, Concurrency: 4})
	run, err := c.Run(context.Background(), "r")
	require.NoError(t, err)
	assert.Len(t, run.ModulesProcessed, len(domain.Modules))
	assert.Equal(t, 2*len(domain.Modules), run.TotalItems)
	for _, m := range domain.Modules {
		items := store.partition(m)
		require.Len(t, items, 2, m)
		assert.Equal(t, domain.ItemID(m, "1"), items[0].ID)
	}
}
