package cron

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oakmart/storefront-backend/pkg/logger"
)

type fakeLock struct {
	mu       sync.Mutex
	allow    bool
	acquires int
	releases int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acquires++
	return f.allow, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	return nil
}

type countingJob struct {
	mu   sync.Mutex
	name string
	runs int
	err  error
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run(context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs++
	return j.err
}

func (j *countingJob) Runs() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs
}

func newTestService(t *testing.T, lock Lock, jobs ...Job) *Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	svc, err := NewService(ServiceParams{
		Logger:   logg,
		Registry: NewRegistry(jobs...),
		Lock:     lock,
		Interval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

func TestServiceLifecycle(t *testing.T) {
	lock := &fakeLock{allow: true}
	job := &countingJob{name: "job-a"}
	svc := newTestService(t, lock, job)

	if svc.IsRunning() {
		t.Fatalf("expected stopped before Start")
	}
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !svc.IsRunning() {
		t.Fatalf("expected running after Start")
	}
	if err := svc.Start(context.Background()); err == nil {
		t.Fatalf("expected error starting twice")
	}

	waitFor(t, time.Second, func() bool { return job.Runs() >= 2 })

	svc.Stop()
	if svc.IsRunning() {
		t.Fatalf("expected stopped after Stop")
	}

	runs := job.Runs()
	time.Sleep(30 * time.Millisecond)
	if job.Runs() != runs {
		t.Fatalf("job ran after Stop")
	}

	// Stop again is a no-op
	svc.Stop()
}

func TestExternalCancelClearsRunningState(t *testing.T) {
	job := &countingJob{name: "noop"}
	svc := newTestService(t, &fakeLock{allow: true}, job)

	ctx, cancel := context.WithCancel(context.Background())
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, time.Second, func() bool { return job.Runs() >= 1 })

	cancel()
	waitFor(t, time.Second, func() bool { return !svc.IsRunning() })
	if svc.IsRunning() {
		t.Fatalf("expected IsRunning to go false after external cancel")
	}

	// Stop after the loop already exited is a no-op
	svc.Stop()

	// and the service can be started again
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	svc.Stop()
}

func TestTickSkipsWhenLockHeldElsewhere(t *testing.T) {
	lock := &fakeLock{allow: false}
	job := &countingJob{name: "job-a"}
	svc := newTestService(t, lock, job)

	svc.tick(context.Background())
	if job.Runs() != 0 {
		t.Fatalf("job must not run without the lock")
	}
	if lock.releases != 0 {
		t.Fatalf("lock must not be released when never acquired")
	}
}

func TestTickReleasesLockAndRunsAllJobs(t *testing.T) {
	lock := &fakeLock{allow: true}
	failing := &countingJob{name: "job-a", err: errors.New("boom")}
	healthy := &countingJob{name: "job-b"}
	svc := newTestService(t, lock, failing, healthy)

	svc.tick(context.Background())

	if failing.Runs() != 1 || healthy.Runs() != 1 {
		t.Fatalf("expected both jobs to run, got %d and %d", failing.Runs(), healthy.Runs())
	}
	if lock.releases != 1 {
		t.Fatalf("expected lock release, got %d", lock.releases)
	}
}

func TestTickIsNotReentrant(t *testing.T) {
	lock := &fakeLock{allow: true}
	svc := newTestService(t, lock)

	svc.ticking.Store(true)
	svc.tick(context.Background())
	if lock.acquires != 0 {
		t.Fatalf("tick must not acquire the lock while a previous tick is in flight")
	}
	svc.ticking.Store(false)
}
