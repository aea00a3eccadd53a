// Package scheduler triggers fetch runs daily by cron and on demand, never more than one at a time.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/umputun/aidigest/pkg/domain"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner
//go:generate moq -out mocks/run_store.go -pkg mocks -skip-ensure -fmt goimports . RunStore

// ErrRunInProgress is returned when a trigger arrives while a run is active
var ErrRunInProgress = errors.New("fetch run already in progress")

// ErrStopped is returned when a trigger arrives after Stop
var ErrStopped = errors.New("scheduler stopped")

// Runner executes a fetch run for an existing run record
type Runner interface {
	Run(ctx context.Context, runID string) (domain.FetchRun, error)
}

// RunStore creates run records
type RunStore interface {
	InsertRun(ctx context.Context, run domain.FetchRun) error
}

// Params configures Scheduler
type Params struct {
	Runner   Runner
	Store    RunStore
	Hour     int            // daily cron hour
	Minute   int            // daily cron minute
	Location *time.Location // cron time zone, UTC if nil
	NewID    func() string  // run id generator, uuid v4 if nil
}

// Scheduler starts fetch runs by cron or manual trigger
type Scheduler struct {
	Params
	cron *cron.Cron

	mu      sync.Mutex
	running bool
	stopped bool

	ctx    context.Context // parent of background runs
	cancel context.CancelFunc
	wg     sync.WaitGroup // active runs, added under mu
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.Location == nil {
		params.Location = time.UTC
	}
	if params.NewID == nil {
		params.NewID = uuid.NewString
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		Params: params,
		cron:   cron.New(cron.WithLocation(params.Location)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start registers the daily job and starts cron
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("%d %d * * *", s.Minute, s.Hour)
	if _, err := s.cron.AddFunc(spec, s.fire); err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}
	s.cron.Start()
	lgr.Printf("[INFO] scheduler started, daily fetch at %02d:%02d %s", s.Hour, s.Minute, s.Location)
	return nil
}

// Stop rejects new triggers, waits for running cron jobs, cancels the active run and waits for it to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	<-s.cron.Stop().Done()
	s.cancel()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// Trigger creates a pending run and executes it in background.
// Returns ErrRunInProgress if another run is active and ErrStopped after Stop.
func (s *Scheduler) Trigger(ctx context.Context) (domain.FetchRun, error) {
	run, err := s.begin(ctx)
	if err != nil {
		return domain.FetchRun{}, err
	}

	go func() {
		defer s.release()
		s.execute(s.ctx, run.ID)
	}()
	return run, nil
}

// RunOnce creates a run and executes it synchronously
func (s *Scheduler) RunOnce(ctx context.Context) (domain.FetchRun, error) {
	run, err := s.begin(ctx)
	if err != nil {
		return domain.FetchRun{}, err
	}
	defer s.release()
	return s.Runner.Run(ctx, run.ID)
}

// Running reports whether a run is active
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next cron fire time, zero if not started
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// begin takes the single-flight slot and inserts a pending run record.
// The slot must be returned with release.
func (s *Scheduler) begin(ctx context.Context) (domain.FetchRun, error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return domain.FetchRun{}, ErrStopped
	}
	if s.running {
		s.mu.Unlock()
		return domain.FetchRun{}, ErrRunInProgress
	}
	s.running = true
	s.wg.Add(1)
	s.mu.Unlock()

	run := domain.NewFetchRun(s.NewID())
	if err := s.Store.InsertRun(ctx, run); err != nil {
		s.release()
		return domain.FetchRun{}, fmt.Errorf("create run: %w", err)
	}
	lgr.Printf("[INFO] fetch run %s created", run.ID)
	return run, nil
}

func (s *Scheduler) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	s.wg.Done()
}

func (s *Scheduler) execute(ctx context.Context, runID string) {
	if _, err := s.Runner.Run(ctx, runID); err != nil {
		lgr.Printf("[WARN] fetch run %s failed, %v", runID, err)
	}
}

// fire is the cron job
func (s *Scheduler) fire() {
	lgr.Printf("[INFO] scheduled fetch triggered")
	if _, err := s.Trigger(s.ctx); err != nil {
		if errors.Is(err, ErrRunInProgress) || errors.Is(err, ErrStopped) {
			lgr.Printf("[INFO] scheduled fetch skipped, %v", err)
			return
		}
		lgr.Printf("[WARN] scheduled fetch not started, %v", err)
	}
}
