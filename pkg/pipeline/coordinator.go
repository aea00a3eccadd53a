// Package pipeline runs the daily fetch job: every configured module is fetched, summarized and
// stored as a whole partition, each inside its own error boundary, and the run record tracks progress.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/aidigest/pkg/domain"
)

//go:generate moq -out mocks/adapter.go -pkg mocks -skip-ensure -fmt goimports . Adapter
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . Recorder

// Adapter acquires scored, windowed and capped items of one module
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.Item, error)
}

// Store persists module partitions and run records
type Store interface {
	GetRun(ctx context.Context, id string) (domain.FetchRun, error)
	UpdateRun(ctx context.Context, run domain.FetchRun) error
	ReplaceModuleItems(ctx context.Context, module domain.Module, items []domain.Item) error
}

// Summarizer selects heroes and translates items, all methods are total
type Summarizer interface {
	SelectHero(ctx context.Context, items []domain.Item, moduleName string) int
	ProcessHero(ctx context.Context, item *domain.Item, ct domain.ContentType)
	TranslateTweet(ctx context.Context, item *domain.Item)
	TranslateVideo(ctx context.Context, item *domain.Item)
	BatchTranslate(ctx context.Context, items []domain.Item, limit int)
	BatchSummarize(ctx context.Context, items []domain.Item, limit int)
	BatchTranslateTweets(ctx context.Context, items []domain.Item, limit int)
	BatchTranslateVideos(ctx context.Context, items []domain.Item, limit int)
}

// Recorder collects run metrics
type Recorder interface {
	RunFinished(status string, duration time.Duration)
	ModuleItems(module string, count int)
	ModuleError(module string)
}

// Module binds a module name to its adapter and content type
type Module struct {
	Name    domain.Module
	Type    domain.ContentType
	Adapter Adapter
}

// defaults of the coordinator
const (
	DefaultMaxItems       = 30
	DefaultTranslateLimit = 10
)

// Params configures Coordinator
type Params struct {
	Store          Store
	Summarizer     Summarizer
	Recorder       Recorder // optional
	Modules        []Module // processed in declared order
	MaxItems       int      // max items stored per module
	TranslateLimit int      // max non-hero items translated per module
	Concurrency    int      // modules processed in parallel, 1 is sequential
}

// Coordinator executes fetch runs
type Coordinator struct {
	Params
	storeMu sync.Mutex // serializes partition replaces
}

// NewCoordinator makes Coordinator with defaults for empty params
func NewCoordinator(params Params) *Coordinator {
	if params.MaxItems <= 0 {
		params.MaxItems = DefaultMaxItems
	}
	if params.TranslateLimit <= 0 {
		params.TranslateLimit = DefaultTranslateLimit
	}
	if params.Concurrency <= 0 {
		params.Concurrency = 1
	}
	return &Coordinator{Params: params}
}

// Run executes the fetch job for an existing run record. Module failures are recorded on the run and
// never stop other modules. The returned error means the run itself could not proceed, in this case
// the record is marked failed if storage still accepts it.
func (c *Coordinator) Run(ctx context.Context, runID string) (domain.FetchRun, error) {
	run, err := c.Store.GetRun(ctx, runID)
	if err != nil {
		return domain.FetchRun{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	if run.Status.Terminal() {
		return run, fmt.Errorf("run %s is already %s", runID, run.Status)
	}

	start := time.Now()
	started := start.UTC()
	run.Status, run.StartedAt = domain.RunRunning, &started
	if run.ModulesProcessed == nil {
		run.ModulesProcessed = map[domain.Module]domain.ModuleResult{}
	}
	if run.Errors == nil {
		run.Errors = []string{}
	}
	if err = c.Store.UpdateRun(ctx, run); err != nil {
		return c.fail(ctx, run, start, fmt.Errorf("mark run running: %w", err))
	}
	lgr.Printf("[INFO] fetch run %s started, %d modules", run.ID, len(c.Modules))

	var mu sync.Mutex // guards run
	var g errgroup.Group
	g.SetLimit(c.Concurrency)
	for _, m := range c.Modules {
		g.Go(func() error {
			res, err := c.safeModule(ctx, run.ID, m)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lgr.Printf("[WARN] module %s failed, %v", m.Name, err)
				run.Errors = append(run.Errors, fmt.Sprintf("%s: %v", m.Name, err))
				c.moduleError(m.Name)
			} else {
				run.ModulesProcessed[m.Name] = res
				run.TotalItems += res.Count
				c.moduleItems(m.Name, res.Count)
			}
			// progress update, failures here are not fatal
			if uerr := c.Store.UpdateRun(ctx, run); uerr != nil {
				lgr.Printf("[WARN] can't update progress of run %s, %v", run.ID, uerr)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return c.fail(ctx, run, start, fmt.Errorf("run interrupted: %w", err))
	}

	completed := time.Now().UTC()
	run.Status, run.CompletedAt = domain.RunCompleted, &completed
	if err := c.Store.UpdateRun(context.WithoutCancel(ctx), run); err != nil {
		return c.fail(ctx, run, start, fmt.Errorf("mark run completed: %w", err))
	}
	c.runFinished(run.Status, start)
	lgr.Printf("[INFO] fetch run %s completed in %v, %d items, %d errors",
		run.ID, time.Since(start).Truncate(time.Millisecond), run.TotalItems, len(run.Errors))
	return run, nil
}

// fail marks run failed, records the message and returns the cause
func (c *Coordinator) fail(ctx context.Context, run domain.FetchRun, start time.Time, cause error) (domain.FetchRun, error) {
	completed := time.Now().UTC()
	run.Status, run.CompletedAt = domain.RunFailed, &completed
	run.Errors = append(run.Errors, cause.Error())
	if err := c.Store.UpdateRun(context.WithoutCancel(ctx), run); err != nil {
		lgr.Printf("[ERROR] can't mark run %s failed, %v", run.ID, err)
	}
	c.runFinished(run.Status, start)
	lgr.Printf("[ERROR] fetch run %s failed, %v", run.ID, cause)
	return run, cause
}

// safeModule runs processModule converting panics into errors
func (c *Coordinator) safeModule(ctx context.Context, runID string, m Module) (res domain.ModuleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] panic in module %s: %v\n%s", m.Name, r, debug.Stack())
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.processModule(ctx, runID, m)
}

// processModule fetches, summarizes and stores one module partition
func (c *Coordinator) processModule(ctx context.Context, runID string, m Module) (domain.ModuleResult, error) {
	if m.Adapter == nil {
		return domain.ModuleResult{}, errors.New("no adapter")
	}
	lgr.Printf("[DEBUG] processing module %s", m.Name)

	fetched, err := m.Adapter.Fetch(ctx)
	if err != nil {
		return domain.ModuleResult{}, err
	}
	items := prepare(m.Name, fetched, c.MaxItems)
	if len(items) == 0 {
		lgr.Printf("[INFO] no items for module %s", m.Name)
		return domain.ModuleResult{Count: 0, Hero: nil}, nil
	}

	hero := c.Summarizer.SelectHero(ctx, items, string(m.Name))
	if hero < 0 || hero >= len(items) {
		hero = 0
	}
	lgr.Printf("[DEBUG] hero of %s: %q", m.Name, items[hero].Title)
	c.enrichHero(ctx, m.Type, &items[hero])
	c.translateRest(ctx, m.Type, items, hero)

	for i := range items {
		items[i].IsHero = i == hero
		items[i].FetchRunID = runID
		items[i].Normalize()
	}

	if err := ctx.Err(); err != nil {
		return domain.ModuleResult{}, fmt.Errorf("interrupted before store: %w", err)
	}
	c.storeMu.Lock()
	err = c.Store.ReplaceModuleItems(ctx, m.Name, items)
	c.storeMu.Unlock()
	if err != nil {
		return domain.ModuleResult{}, fmt.Errorf("replace items: %w", err)
	}

	title := items[hero].Title
	lgr.Printf("[INFO] saved %d items for module %s", len(items), m.Name)
	return domain.ModuleResult{Count: len(items), Hero: &title}, nil
}

func (c *Coordinator) enrichHero(ctx context.Context, ct domain.ContentType, hero *domain.Item) {
	switch ct {
	case domain.ContentVideo, domain.ContentAudio:
		c.Summarizer.TranslateVideo(ctx, hero)
	case domain.ContentMicroblog:
		c.Summarizer.TranslateTweet(ctx, hero)
	default:
		c.Summarizer.ProcessHero(ctx, hero, ct)
	}
}

// translateRest translates up to TranslateLimit non-hero items with the template of the content type
func (c *Coordinator) translateRest(ctx context.Context, ct domain.ContentType, items []domain.Item, hero int) {
	idx := make([]int, 0, c.TranslateLimit)
	for i := range items {
		if i != hero && len(idx) < c.TranslateLimit {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return
	}
	batch := make([]domain.Item, len(idx))
	for j, i := range idx {
		batch[j] = items[i]
	}

	switch ct {
	case domain.ContentVideo, domain.ContentAudio:
		c.Summarizer.BatchTranslateVideos(ctx, batch, len(batch))
	case domain.ContentMicroblog:
		c.Summarizer.BatchTranslateTweets(ctx, batch, len(batch))
	case domain.ContentForum:
		c.Summarizer.BatchSummarize(ctx, batch, len(batch))
	default:
		c.Summarizer.BatchTranslate(ctx, batch, len(batch))
	}

	for j, i := range idx {
		items[i] = batch[j]
	}
}

// prepare assigns global ids, drops items without link and duplicate ids, keeps at most limit items
func prepare(module domain.Module, fetched []domain.Item, limit int) []domain.Item {
	res := make([]domain.Item, 0, min(len(fetched), limit))
	seen := map[string]bool{}
	for _, it := range fetched {
		if len(res) >= limit {
			break
		}
		it.Module = module
		if it.SourceID == "" {
			it.SourceID = it.ID
		}
		if it.SourceID == "" || it.Link == "" {
			lgr.Printf("[DEBUG] drop invalid %s item %q", module, it.Title)
			continue
		}
		it.ID = domain.ItemID(module, it.SourceID)
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		res = append(res, it)
	}
	return res
}

func (c *Coordinator) runFinished(status domain.RunStatus, start time.Time) {
	if c.Recorder != nil {
		c.Recorder.RunFinished(string(status), time.Since(start))
	}
}

func (c *Coordinator) moduleItems(m domain.Module, n int) {
	if c.Recorder != nil {
		c.Recorder.ModuleItems(string(m), n)
	}
}

func (c *Coordinator) moduleError(m domain.Module) {
	if c.Recorder != nil {
		c.Recorder.ModuleError(string(m))
	}
}
