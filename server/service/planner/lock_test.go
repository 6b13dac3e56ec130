package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPlanLockerSerializesPerPlan(t *testing.T) {
	locks := newPlanLocker()
	ctx := context.Background()

	require.NoError(t, locks.acquire(ctx, "plan-1"))

	// A second acquire on the same plan blocks until release.
	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	require.Error(t, locks.acquire(blocked, "plan-1"))

	// A different plan is unaffected.
	require.NoError(t, locks.acquire(ctx, "plan-2"))
	locks.release("plan-2")

	locks.release("plan-1")
	require.NoError(t, locks.acquire(ctx, "plan-1"))
	locks.release("plan-1")
}
