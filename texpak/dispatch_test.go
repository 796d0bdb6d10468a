package texpak_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/texturelab/texpak/texpak"
)

func TestDispatchRunsAllTasks(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 8} {
		td := texpak.NewTaskDispatch(workers)

		var n atomic.Int64
		for i := 0; i < 100; i++ {
			td.Queue(func() { n.Add(1) })
		}
		td.Sync()

		if got := n.Load(); got != 100 {
			t.Errorf("workers=%d: ran %d tasks, want 100", workers, got)
		}
		td.Stop()
	}
}

func TestDispatchReuseAfterSync(t *testing.T) {
	td := texpak.NewTaskDispatch(4)
	defer td.Stop()

	var n atomic.Int64
	for round := 0; round < 3; round++ {
		for i := 0; i < 50; i++ {
			td.Queue(func() { n.Add(1) })
		}
		td.Sync()
	}
	if got := n.Load(); got != 150 {
		t.Fatalf("ran %d tasks across rounds, want 150", got)
	}
}

func TestDispatchSyncContextCancelled(t *testing.T) {
	td := texpak.NewTaskDispatch(2)
	defer td.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := td.SyncContext(ctx)
	if err == nil {
		t.Fatalf("SyncContext returned nil for a cancelled context")
	}
	if got := texpak.ErrorCodeOf(err); got != texpak.ErrCancelled {
		t.Fatalf("ErrorCodeOf = %v, want ErrCancelled", got)
	}
}

func TestDispatchStopIdempotent(t *testing.T) {
	td := texpak.NewTaskDispatch(2)
	td.Queue(func() {})
	td.Sync()
	td.Stop()
	td.Stop()
}
