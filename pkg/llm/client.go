package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// DefaultTemperature is used by callers without a specific temperature
const DefaultTemperature = 0.7

// call results reported to Recorder
const (
	ResultOK     = "ok"
	ResultError  = "error"
	ResultEmpty  = "empty"
	ResultCached = "cached"
)

// Cache keeps completed responses keyed by request hash
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Recorder observes call outcomes, implemented by metrics
type Recorder interface {
	LLMRequest(result string)
}

// Params configures the client
type Params struct {
	APIKey      string
	Endpoint    string        // OpenAI-compatible base URL
	Model       string
	MaxTokens   int
	Timeout     time.Duration // per call
	Concurrency int           // max in-flight calls
	RateLimit   float64       // requests per second, 0 disables limiting
	Cache       Cache         // optional
	Recorder    Recorder      // optional
}

// Client is a chat-completions client with total semantics: failures return empty values, never errors.
// It is safe for concurrent use.
type Client struct {
	client   *openai.Client
	params   Params
	sem      *semaphore.Weighted
	limiter  *rate.Limiter
	cache    Cache
	recorder Recorder
}

// New makes a client for the given params
func New(params Params) *Client {
	if params.Endpoint == "" {
		params.Endpoint = "https://api.deepseek.com"
	}
	if params.Model == "" {
		params.Model = "deepseek-chat"
	}
	if params.Timeout == 0 {
		params.Timeout = 60 * time.Second
	}
	if params.Concurrency <= 0 {
		params.Concurrency = 4
	}

	clientConfig := openai.DefaultConfig(params.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(params.Endpoint, "/")

	res := &Client{
		client:   openai.NewClientWithConfig(clientConfig),
		params:   params,
		sem:      semaphore.NewWeighted(int64(params.Concurrency)),
		limiter:  rate.NewLimiter(rate.Inf, 0),
		cache:    params.Cache,
		recorder: params.Recorder,
	}
	if params.RateLimit > 0 {
		res.limiter = rate.NewLimiter(rate.Limit(params.RateLimit), 1)
	}
	return res
}

// Call sends prompt as a single user message and returns the assistant text, empty string on any failure
func (c *Client) Call(ctx context.Context, prompt string, temperature float64) string {
	if c.params.APIKey == "" {
		lgr.Printf("[WARN] llm api key is not configured, skipping call")
		c.record(ResultError)
		return ""
	}

	key := c.cacheKey(prompt, temperature)
	if c.cache != nil {
		if v, ok := c.cache.Get(ctx, key); ok {
			c.record(ResultCached)
			return v
		}
	}

	resp, err := c.complete(ctx, prompt, temperature)
	if err != nil {
		lgr.Printf("[WARN] llm call failed: %v", err)
		c.record(ResultError)
		return ""
	}
	if resp == "" {
		c.record(ResultEmpty)
		return ""
	}

	c.record(ResultOK)
	if c.cache != nil {
		c.cache.Set(ctx, key, resp)
	}
	return resp
}

// CallJSON calls the model and parses the reply as a JSON object, empty map on any failure
func (c *Client) CallJSON(ctx context.Context, prompt string, temperature float64) map[string]any {
	resp := c.Call(ctx, prompt, temperature)
	if resp == "" {
		return map[string]any{}
	}

	res := map[string]any{}
	if err := json.Unmarshal([]byte(CleanJSON(resp)), &res); err != nil {
		lgr.Printf("[WARN] can't parse llm json response: %v", err)
		return map[string]any{}
	}
	return res
}

func (c *Client) complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire slot: %w", err)
	}
	defer c.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, c.params.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.params.Model,
		Temperature: float32(temperature),
		MaxTokens:   c.params.MaxTokens,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *Client) record(result string) {
	if c.recorder != nil {
		c.recorder.LLMRequest(result)
	}
}

func (c *Client) cacheKey(prompt string, temperature float64) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%.2f|%s", c.params.Model, temperature, prompt)))
	return hex.EncodeToString(h[:])
}

var fenceRe = regexp.MustCompile("```(?:json)?\\s*")

// CleanJSON strips markdown code fences around a JSON reply.
// If the remainder is still not bare JSON, the outermost {...} block is returned.
func CleanJSON(s string) string {
	s = strings.TrimSpace(fenceRe.ReplaceAllString(s, ""))
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return s
	}
	start, end := strings.Index(s, "{"), strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}
