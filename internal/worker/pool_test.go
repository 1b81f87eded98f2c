package worker

import (
	"context"
	"errors"
	"testing"
	"time"
)

type addJob struct {
	n int
}

type addResult struct {
	n   int
	err error
}

func (r *addResult) GetError() error { return r.err }

func (j *addJob) Execute(ctx context.Context) Result {
	return &addResult{n: j.n * 2}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	for i := 1; i <= 5; i++ {
		pool.Submit(&addJob{n: i})
	}

	results := pool.Wait()
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}

	sum := 0
	for _, r := range results {
		if err := r.GetError(); err != nil {
			t.Fatalf("unexpected job error: %v", err)
		}
		sum += r.(*addResult).n
	}
	if sum != 30 {
		t.Errorf("expected doubled sum 30, got %d", sum)
	}
}

type failJob struct{}

func (j *failJob) Execute(ctx context.Context) Result {
	return &addResult{err: errors.New("boom")}
}

func TestPool_ErrorsSurfaceInResults(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()
	pool.Submit(&failJob{})

	results := pool.Wait()
	if len(results) != 1 || results[0].GetError() == nil {
		t.Errorf("expected the job error surfaced, got %v", results)
	}
}

func TestPool_SubmitAfterShutdownDropped(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()
	pool.Shutdown()

	// Must not block or panic.
	pool.Submit(&addJob{n: 1})
}

type ctxJob struct{}

func (j *ctxJob) Execute(ctx context.Context) Result {
	return &addResult{err: ctx.Err()}
}

func TestPool_JobsSeeLiveParentContext(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()
	pool.Submit(&ctxJob{})

	results := pool.Wait()
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].GetError() != nil {
		t.Errorf("expected a live context inside the job, got %v", results[0].GetError())
	}
}

func TestPool_CancelledParentFailsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(ctx, 2)
	pool.Start()
	pool.Submit(&ctxJob{})
	pool.Submit(&ctxJob{})

	// A submission under a dead context is either dropped outright or
	// executed against the dead context; no job may see a live one.
	for _, r := range pool.Wait() {
		if r.GetError() == nil {
			t.Error("expected jobs to observe the cancelled context")
		}
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("draining the burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("expected Wait to fail once the context expires")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	l := NewLimiter(1000, 10)

	if err := l.WaitWithDelay(context.Background(), 0); err != nil {
		t.Errorf("expected zero-delay wait to pass, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if err := l.WaitWithDelay(ctx, time.Second); err == nil {
		t.Error("expected the context to cut the additional delay short")
	}
}

func TestLimiter_DefaultsOnBadInput(t *testing.T) {
	l := NewLimiter(0, 0)
	if err := l.Wait(context.Background()); err != nil {
		t.Errorf("expected a usable limiter from zero-valued config, got %v", err)
	}
}
