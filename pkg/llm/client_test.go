package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderMock struct {
	mu      sync.Mutex
	results []string
}

func (r *recorderMock) LLMRequest(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func chatServer(t *testing.T, content string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req.Model)
		assert.Len(t, req.Messages, 1)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Call(t *testing.T) {
	srv := chatServer(t, "  hello  ", nil)
	rec := &recorderMock{}
	c := New(Params{APIKey: "test-key", Endpoint: srv.URL, Recorder: rec})

	assert.Equal(t, "hello", c.Call(context.Background(), "hi", DefaultTemperature))
	assert.Equal(t, []string{ResultOK}, rec.results)
}

func TestClient_CallNoKey(t *testing.T) {
	var calls int32
	srv := chatServer(t, "hello", &calls)
	c := New(Params{Endpoint: srv.URL})

	assert.Equal(t, "", c.Call(context.Background(), "hi", DefaultTemperature))
	assert.Equal(t, map[string]any{}, c.CallJSON(context.Background(), "hi", DefaultTemperature))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClient_CallFailures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()
		rec := &recorderMock{}
		c := New(Params{APIKey: "test-key", Endpoint: srv.URL, Recorder: rec})
		assert.Equal(t, "", c.Call(context.Background(), "hi", DefaultTemperature))
		assert.Equal(t, []string{ResultError}, rec.results)
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()
		c := New(Params{APIKey: "test-key", Endpoint: srv.URL})
		assert.Equal(t, "", c.Call(context.Background(), "hi", DefaultTemperature))
	})

	t.Run("bad shape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()
		c := New(Params{APIKey: "test-key", Endpoint: srv.URL})
		assert.Equal(t, "", c.Call(context.Background(), "hi", DefaultTemperature))
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()
		c := New(Params{APIKey: "test-key", Endpoint: srv.URL, Timeout: 20 * time.Millisecond})
		assert.Equal(t, "", c.Call(context.Background(), "hi", DefaultTemperature))
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := chatServer(t, "hello", nil)
		c := New(Params{APIKey: "test-key", Endpoint: srv.URL})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Equal(t, "", c.Call(ctx, "hi", DefaultTemperature))
	})
}

func TestClient_CallJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]any
	}{
		{"plain", `{"title_zh":"标题","summary":"摘要"}`, map[string]any{"title_zh": "标题", "summary": "摘要"}},
		{"fenced", "```json\n{\"title_zh\":\"标题\"}\n```", map[string]any{"title_zh": "标题"}},
		{"prose around", "Sure! {\"a\":1} hope it helps", map[string]any{"a": float64(1)}},
		{"invalid", "not json at all", map[string]any{}},
		{"array is not an object", `[1,2]`, map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatServer(t, tt.content, nil)
			c := New(Params{APIKey: "test-key", Endpoint: srv.URL})
			assert.Equal(t, tt.want, c.CallJSON(context.Background(), "prompt", DefaultTemperature))
		})
	}
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSON("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, CleanJSON(`result: {"a":1}.`))
	assert.Equal(t, `nothing`, CleanJSON(`nothing`))
}

func TestClient_Concurrency(t *testing.T) {
	var inFlight, maxInFlight int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			prev := atomic.LoadInt32(&maxInFlight)
			if cur <= prev || atomic.CompareAndSwapInt32(&maxInFlight, prev, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "ok"}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := New(Params{APIKey: "test-key", Endpoint: srv.URL, Concurrency: 2})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "ok", c.Call(context.Background(), "hi", DefaultTemperature))
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(2))
}

func TestClient_Cache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	var calls int32
	srv := chatServer(t, "cached answer", &calls)
	rec := &recorderMock{}
	c := New(Params{APIKey: "test-key", Endpoint: srv.URL, Cache: NewRedisCache(rdb, time.Hour), Recorder: rec})

	assert.Equal(t, "cached answer", c.Call(context.Background(), "same prompt", DefaultTemperature))
	assert.Equal(t, "cached answer", c.Call(context.Background(), "same prompt", DefaultTemperature))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{ResultOK, ResultCached}, rec.results)

	// different temperature is a different key
	assert.Equal(t, "cached answer", c.Call(context.Background(), "same prompt", 0.1))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Len(t, mr.Keys(), 2)
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	cache := NewRedisCache(rdb, 0)

	_, ok := cache.Get(context.Background(), "k1")
	assert.False(t, ok)

	cache.Set(context.Background(), "k1", "v1")
	v, ok := cache.Get(context.Background(), "k1")
	require.True(t, ok)
	assert.Equal(t, "v1", v)
	assert.Equal(t, 7*24*time.Hour, mr.TTL("aidigest:llm:k1"))

	mr.Close()
	_, ok = cache.Get(context.Background(), "k1")
	assert.False(t, ok, "redis down is a miss")
	cache.Set(context.Background(), "k2", "v2") // no panic
}
