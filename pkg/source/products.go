package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/aidigest/pkg/domain"
)

const (
	trendingURL = "https://github.com/trending?since=weekly"
	githubURL   = "https://github.com/"
	rawURL      = "https://raw.githubusercontent.com/"
)

// ProductsParams configures code forge trending adapter
type ProductsParams struct {
	HTTP        *HTTPClient
	TrendingURL string
	RawURL      string // raw content base, repo path and branch appended
	Limit       int
	Concurrency int
}

// Products scrapes the weekly trending page and keeps AI repositories enriched from their README
type Products struct {
	ProductsParams
}

// NewProducts makes trending adapter with defaults for empty params
func NewProducts(params ProductsParams) *Products {
	if params.TrendingURL == "" {
		params.TrendingURL = trendingURL
	}
	if params.RawURL == "" {
		params.RawURL = rawURL
	}
	if params.Limit == 0 {
		params.Limit = capProducts
	}
	return &Products{ProductsParams: params}
}

// Name returns module name
func (p *Products) Name() string { return string(domain.ModuleProducts) }

// Fetch returns scored AI repositories, trending has no publication date so no window is applied
func (p *Products) Fetch(ctx context.Context) ([]domain.Item, error) {
	body, err := p.HTTP.Get(ctx, p.TrendingURL, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("trending page: %w", err)
	}
	items, err := parseTrending(body)
	if err != nil {
		return nil, err
	}
	if len(items) > trendingEnrichTop {
		items = items[:trendingEnrichTop]
	}

	limit := p.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i := range items {
		g.Go(func() error {
			p.enrich(ctx, &items[i])
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s fetch interrupted: %w", p.Name(), err)
	}

	return Finalize(items, FinalizeOpts{Limit: p.Limit}), nil
}

// parseTrending extracts AI repositories from the trending page html
func parseTrending(body []byte) ([]domain.Item, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse trending page: %w", err)
	}

	var res []domain.Item
	doc.Find("article.Box-row").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= trendingMaxRows {
			return false
		}
		href, _ := row.Find("h2 a").First().Attr("href")
		path := strings.Trim(strings.TrimSpace(href), "/")
		if path == "" {
			return true
		}
		desc := strings.TrimSpace(row.Find("p").First().Text())
		if !ContainsAny(path+" "+desc, productsAIKeywords) {
			return true
		}
		lang := strings.TrimSpace(row.Find("[itemprop='programmingLanguage']").First().Text())
		stars := parseStars(row.Find("a[href$='/stargazers']").First().Text())
		starsWeek := strings.TrimSpace(row.Find("span.d-inline-block.float-sm-right").First().Text())
		forks := strings.TrimSpace(row.Find("a[href$='/forks']").First().Text())

		owner, name := path, path
		if o, n, ok := strings.Cut(path, "/"); ok {
			owner, name = o, n
		}

		it := domain.Item{
			SourceID: strings.ReplaceAll(path, "/", "_"),
			Module:   domain.ModuleProducts,
			Title:    name,
			Summary:  domain.Truncate(desc, 200, ""),
			Link:     githubURL + path,
			Source:   "GitHub",
			Author:   owner,
			Extra: domain.Extra{Repo: &domain.RepoExtra{
				RepoPath: path, Owner: owner, Language: lang, Stars: stars, StarsWeek: starsWeek, Forks: forks,
			}},
		}
		it.Tags = ExtractTags(path+" "+desc+" "+lang, productsTagPatterns, domain.MaxTags)
		it.FameScore = KeywordScore(it.Title+" "+it.Summary, productsKeywordWeights) + TierBonus(stars, productsStarTiers)
		res = append(res, it)
		return true
	})
	return res, nil
}

// parseStars converts "1,234" or "12.5k" into a number, 0 when unparsable
func parseStars(s string) int {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), ",", "")
	mult := 1.0
	if strings.HasSuffix(s, "k") {
		mult, s = 1000, strings.TrimSuffix(s, "k")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(v * mult)
}

// enrich fetches README of the repository and merges parsed details, failures keep the item as is
func (p *Products) enrich(ctx context.Context, it *domain.Item) {
	repo := it.Extra.Repo
	text, err := p.readme(ctx, repo.RepoPath)
	if err != nil {
		lgr.Printf("[DEBUG] no readme for %s: %v", repo.RepoPath, err)
		return
	}
	info := ParseReadme(text)
	if info.Description != "" {
		it.Summary = domain.Truncate(info.Description, 300, "")
	}
	repo.Features = info.Features
	repo.TechStack = info.TechStack
	repo.UseCases = info.UseCases
	repo.Installation = info.Installation
}

func (p *Products) readme(ctx context.Context, path string) (string, error) {
	var lastErr error
	for _, branch := range []string{"main", "master"} {
		body, err := p.HTTP.Get(ctx, p.RawURL+path+"/"+branch+"/README.md", nil, readmeMaxChars*4)
		if err == nil {
			return string(body), nil
		}
		lastErr = err
		var se *StatusError
		if !errors.As(err, &se) || se.Code != http.StatusNotFound {
			break
		}
	}
	return "", lastErr
}
