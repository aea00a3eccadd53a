package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/aidigest/pkg/domain"
	"github.com/umputun/aidigest/pkg/scheduler/mocks"
)

func seqID() func() string {
	var n atomic.Int32
	return func() string { return fmt.Sprintf("run-%d", n.Add(1)) }
}

func okStore() *mocks.RunStoreMock {
	return &mocks.RunStoreMock{InsertRunFunc: func(context.Context, domain.FetchRun) error { return nil }}
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(Params{Runner: &mocks.RunnerMock{}, Store: okStore()})
	assert.Equal(t, time.UTC, s.Location)
	require.NotNil(t, s.NewID)
	assert.Len(t, s.NewID(), 36, "uuid")
	assert.True(t, s.NextRun().IsZero())
}

func TestScheduler_Trigger(t *testing.T) {
	release := make(chan struct{})
	done := make(chan string, 1)
	runner := &mocks.RunnerMock{RunFunc: func(ctx context.Context, runID string) (domain.FetchRun, error) {
		<-release
		done <- runID
		return domain.FetchRun{ID: runID, Status: domain.RunCompleted}, nil
	}}
	store := okStore()
	s := NewScheduler(Params{Runner: runner, Store: store, NewID: seqID()})

	run, err := s.Trigger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, domain.RunPending, run.Status)
	assert.True(t, s.Running())
	require.Len(t, store.InsertRunCalls(), 1)
	assert.Equal(t, domain.RunPending, store.InsertRunCalls()[0].Run.Status)

	// second trigger while the first is running
	_, err = s.Trigger(context.Background())
	require.ErrorIs(t, err, ErrRunInProgress)
	assert.Len(t, store.InsertRunCalls(), 1, "no record for rejected trigger")
	_, err = s.RunOnce(context.Background())
	require.ErrorIs(t, err, ErrRunInProgress)

	close(release)
	select {
	case id := <-done:
		assert.Equal(t, "run-1", id)
	case <-time.After(time.Second):
		t.Fatal("run not executed")
	}
	require.Eventually(t, func() bool { return !s.Running() }, time.Second, 10*time.Millisecond)

	// slot is free again
	done2 := make(chan struct{})
	runner.RunFunc = func(context.Context, string) (domain.FetchRun, error) {
		close(done2)
		return domain.FetchRun{}, errors.New("failed")
	}
	run, err = s.Trigger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-2", run.ID)
	<-done2
	s.Stop()
	assert.False(t, s.Running())
}

func TestScheduler_TriggerStoreError(t *testing.T) {
	store := &mocks.RunStoreMock{InsertRunFunc: func(context.Context, domain.FetchRun) error { return errors.New("db down") }}
	runner := &mocks.RunnerMock{}
	s := NewScheduler(Params{Runner: runner, Store: store})

	_, err := s.Trigger(context.Background())
	require.EqualError(t, err, "create run: db down")
	assert.False(t, s.Running(), "slot released")
	assert.Empty(t, runner.RunCalls())
}

func TestScheduler_TriggerDetachedFromRequest(t *testing.T) {
	gotErr := make(chan error, 1)
	runner := &mocks.RunnerMock{RunFunc: func(ctx context.Context, runID string) (domain.FetchRun, error) {
		time.Sleep(20 * time.Millisecond)
		gotErr <- ctx.Err()
		return domain.FetchRun{}, nil
	}}
	s := NewScheduler(Params{Runner: runner, Store: okStore()})

	ctx, cancel := context.WithCancel(context.Background())
	_, err := s.Trigger(ctx)
	require.NoError(t, err)
	cancel() // request is gone, the run goes on
	assert.NoError(t, <-gotErr)
	s.Stop()
}

func TestScheduler_StopCancelsRun(t *testing.T) {
	started := make(chan struct{})
	runner := &mocks.RunnerMock{RunFunc: func(ctx context.Context, runID string) (domain.FetchRun, error) {
		close(started)
		<-ctx.Done()
		return domain.FetchRun{Status: domain.RunFailed}, ctx.Err()
	}}
	s := NewScheduler(Params{Runner: runner, Store: okStore()})
	require.NoError(t, s.Start())
	_, err := s.Trigger(context.Background())
	require.NoError(t, err)
	<-started

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop did not finish")
	}
	assert.False(t, s.Running())
}

func TestScheduler_RunOnce(t *testing.T) {
	runner := &mocks.RunnerMock{RunFunc: func(_ context.Context, runID string) (domain.FetchRun, error) {
		return domain.FetchRun{ID: runID, Status: domain.RunCompleted, TotalItems: 7}, nil
	}}
	s := NewScheduler(Params{Runner: runner, Store: okStore(), NewID: seqID()})
	run, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, 7, run.TotalItems)
	assert.False(t, s.Running())
}

func TestScheduler_Start(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		loc = time.FixedZone("CST", 8*3600)
	}
	s := NewScheduler(Params{Runner: &mocks.RunnerMock{}, Store: okStore(), Hour: 6, Minute: 30, Location: loc})
	require.NoError(t, s.Start())
	defer s.Stop()

	next := s.NextRun().In(loc)
	require.False(t, next.IsZero())
	assert.Equal(t, 6, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.True(t, next.After(time.Now()))

	bad := NewScheduler(Params{Runner: &mocks.RunnerMock{}, Store: okStore(), Hour: 25})
	require.Error(t, bad.Start())
}

func TestScheduler_FireSkipsWhenRunning(t *testing.T) {
	release := make(chan struct{})
	runner := &mocks.RunnerMock{RunFunc: func(context.Context, string) (domain.FetchRun, error) {
		<-release
		return domain.FetchRun{}, nil
	}}
	store := okStore()
	s := NewScheduler(Params{Runner: runner, Store: store})

	s.fire()
	require.Eventually(t, func() bool { return len(runner.RunCalls()) == 1 }, time.Second, 5*time.Millisecond)
	s.fire() // skipped
	assert.Len(t, store.InsertRunCalls(), 1)
	close(release)
	s.Stop()
	assert.Len(t, runner.RunCalls(), 1)
}

func TestScheduler_TriggerAfterStop(t *testing.T) {
	runner := &mocks.RunnerMock{}
	store := okStore()
	s := NewScheduler(Params{Runner: runner, Store: store})
	require.NoError(t, s.Start())
	s.Stop()

	_, err := s.Trigger(context.Background())
	require.ErrorIs(t, err, ErrStopped)
	_, err = s.RunOnce(context.Background())
	require.ErrorIs(t, err, ErrStopped)
	s.fire()

	assert.False(t, s.Running())
	assert.Empty(t, store.InsertRunCalls())
	assert.Empty(t, runner.RunCalls())
	s.Stop() // second stop is a no-op
}
