// Package source implements the source adapters. Each adapter acquires items from one family of
// feeds, scores and tags them and returns a windowed, deduplicated, ordered and capped list.
// Fetch fails only when nothing could be acquired at all, single feed failures are logged and skipped.
package source

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/aidigest/pkg/domain"
)

// DefaultWindow is the freshness window applied by adapters respecting publication dates
const DefaultWindow = 168 * time.Hour

// defaultConcurrency is the per-adapter feed fan-out limit
const defaultConcurrency = 4

// TagPattern emits a tag when its regex matches lowercased text
type TagPattern struct {
	Re    *regexp.Regexp
	Label string
	Type  domain.TagType
}

// Weight is a keyword with its score contribution, matched as a case-insensitive substring
type Weight struct {
	Keyword string
	Weight  int
}

// Tier is a threshold bonus, tiers are checked in declared order and the first match wins
type Tier struct {
	Min   int
	Bonus int
}

func tag(pattern, label string, typ domain.TagType) TagPattern {
	return TagPattern{Re: regexp.MustCompile(pattern), Label: label, Type: typ}
}

// ExtractTags returns tags of matching patterns in declared order, unique by label, at most limit
func ExtractTags(text string, patterns []TagPattern, limit int) []domain.Tag {
	text = strings.ToLower(text)
	res := []domain.Tag{}
	seen := map[string]bool{}
	for _, p := range patterns {
		if len(res) >= limit {
			break
		}
		if seen[p.Label] || !p.Re.MatchString(text) {
			continue
		}
		seen[p.Label] = true
		res = append(res, domain.Tag{Label: p.Label, Type: p.Type})
	}
	return res
}

// KeywordScore sums weights of all keywords found in text
func KeywordScore(text string, weights []Weight) int {
	text = strings.ToLower(text)
	score := 0
	for _, w := range weights {
		if strings.Contains(text, strings.ToLower(w.Keyword)) {
			score += w.Weight
		}
	}
	return score
}

// FirstWeight returns the weight of the first keyword found in text, 0 if none
func FirstWeight(text string, weights []Weight) int {
	text = strings.ToLower(text)
	for _, w := range weights {
		if strings.Contains(text, strings.ToLower(w.Keyword)) {
			return w.Weight
		}
	}
	return 0
}

// TierBonus returns the bonus of the first tier with v >= Min
func TierBonus(v int, tiers []Tier) int {
	for _, t := range tiers {
		if v >= t.Min {
			return t.Bonus
		}
	}
	return 0
}

// ContainsAny reports whether text contains any of keywords, case-insensitive
func ContainsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(text, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// FinalizeOpts controls the shared post-processing of adapter output
type FinalizeOpts struct {
	Window      time.Duration // 0 disables the time window
	KeepUndated bool          // keep items without publication date when window is active
	ByRecency   bool          // order by publication date instead of fame score
	Limit       int           // 0 means no cap
	Now         time.Time     // reference time, zero means time.Now()
}

// Finalize applies the common processing contract: time window, dedupe by normalized title,
// stable ordering by fame score (or recency) descending and the cap.
func Finalize(items []domain.Item, opts FinalizeOpts) []domain.Item {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	res := make([]domain.Item, 0, len(items))
	seen := map[string]bool{}
	for _, it := range items {
		if opts.Window > 0 && !withinWindow(it.PubDate, now, opts.Window, opts.KeepUndated) {
			continue
		}
		if key := domain.TitleKey(it.Title); key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		res = append(res, it)
	}

	if opts.ByRecency {
		sort.SliceStable(res, func(i, j int) bool { return res[i].PubDate.After(res[j].PubDate) })
	} else {
		sort.SliceStable(res, func(i, j int) bool { return res[i].FameScore > res[j].FameScore })
	}

	if opts.Limit > 0 && len(res) > opts.Limit {
		res = res[:opts.Limit]
	}
	return res
}

func withinWindow(ts, now time.Time, window time.Duration, keepUndated bool) bool {
	if ts.IsZero() {
		return keepUndated
	}
	return now.Sub(ts) < window
}

var (
	htmlPolicy = bluemonday.StrictPolicy()
	spacesRe   = regexp.MustCompile(`\s+`)
)

// StripHTML removes tags, unescapes entities and collapses whitespace
func StripHTML(s string) string {
	text := html.UnescapeString(htmlPolicy.Sanitize(s))
	return strings.TrimSpace(spacesRe.ReplaceAllString(text, " "))
}

// fetchAll runs fn for every source index with limited concurrency and merges results in declared order.
// A failing source never cancels its siblings. It returns an error only when every source failed.
func fetchAll(ctx context.Context, name string, n, limit int, fn func(ctx context.Context, i int) ([]domain.Item, error)) ([]domain.Item, error) {
	if limit <= 0 {
		limit = defaultConcurrency
	}
	results := make([][]domain.Item, n)
	errs := make([]error, n)

	var g errgroup.Group
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i], errs[i] = fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s fetch interrupted: %w", name, err)
	}

	var res []domain.Item
	failed := 0
	var lastErr error
	for i := range results {
		if errs[i] != nil {
			failed++
			lastErr = errs[i]
			lgr.Printf("[WARN] %s source skipped, %v", name, errs[i])
			continue
		}
		res = append(res, results[i]...)
	}
	if n > 0 && failed == n {
		return nil, fmt.Errorf("all %d %s sources failed, last error: %w", n, name, lastErr)
	}
	return res, nil
}
