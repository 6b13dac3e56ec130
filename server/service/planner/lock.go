package planner

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// planLocker serializes the write phases of scheduling operations per
// plan. Two concurrent generate or replan calls for the same plan must
// never interleave their read-compute-commit cycles.
type planLocker struct {
	mu    sync.Mutex
	plans map[string]*semaphore.Weighted
}

func newPlanLocker() *planLocker {
	return &planLocker{plans: make(map[string]*semaphore.Weighted)}
}

func (l *planLocker) acquire(ctx context.Context, planUID string) error {
	l.mu.Lock()
	sem, ok := l.plans[planUID]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.plans[planUID] = sem
	}
	l.mu.Unlock()
	return sem.Acquire(ctx, 1)
}

func (l *planLocker) release(planUID string) {
	l.mu.Lock()
	sem := l.plans[planUID]
	l.mu.Unlock()
	if sem != nil {
		sem.Release(1)
	}
}
