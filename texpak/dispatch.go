package texpak

import (
	"context"
	"sync"
)

// TaskDispatch runs queued closures on a fixed pool of worker
// goroutines. A worker count of zero or one degrades to synchronous
// execution: Queue runs the task inline and Sync returns immediately.
//
// The dispatcher is reusable: after a Sync completes, further Queue
// calls are valid. Stop must be called once to release the workers.
type TaskDispatch struct {
	workers int

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	pending int
	idle    chan struct{}
	stopped bool
	discard bool

	wg sync.WaitGroup
}

// NewTaskDispatch creates a dispatcher with the given number of worker
// goroutines.
func NewTaskDispatch(workers int) *TaskDispatch {
	td := &TaskDispatch{workers: workers}
	td.cond = sync.NewCond(&td.mu)
	td.idle = make(chan struct{})
	close(td.idle)

	if workers > 1 {
		for i := 0; i < workers; i++ {
			td.wg.Add(1)
			go td.worker()
		}
	}
	return td
}

// Queue submits one unit of work. It never blocks on a full queue; the
// backlog grows as needed.
func (td *TaskDispatch) Queue(task func()) {
	if td.workers <= 1 {
		task()
		return
	}

	td.mu.Lock()
	if td.stopped {
		td.mu.Unlock()
		return
	}
	if td.pending == 0 {
		td.idle = make(chan struct{})
	}
	td.pending++
	td.queue = append(td.queue, task)
	td.mu.Unlock()
	td.cond.Signal()
}

// Sync blocks until every queued task has finished.
func (td *TaskDispatch) Sync() {
	_ = td.SyncContext(context.Background())
}

// SyncContext blocks until every queued task has finished or ctx is
// cancelled. On cancellation the remaining backlog is discarded,
// already-running tasks are allowed to finish, and an ErrCancelled
// error is returned.
func (td *TaskDispatch) SyncContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return newError(ErrCancelled, "texpak: sync cancelled: "+err.Error())
	}
	if td.workers <= 1 {
		return nil
	}

	td.mu.Lock()
	idle := td.idle
	td.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		td.mu.Lock()
		td.discard = true
		td.mu.Unlock()
		<-idle
		td.mu.Lock()
		td.discard = false
		td.mu.Unlock()
		return newError(ErrCancelled, "texpak: sync cancelled: "+ctx.Err().Error())
	}
}

// Stop shuts the worker pool down. Queued tasks that have not started
// are dropped. Stop is idempotent.
func (td *TaskDispatch) Stop() {
	if td.workers <= 1 {
		return
	}

	td.mu.Lock()
	if td.stopped {
		td.mu.Unlock()
		return
	}
	td.stopped = true
	td.pending -= len(td.queue)
	td.queue = nil
	if td.pending == 0 {
		select {
		case <-td.idle:
		default:
			close(td.idle)
		}
	}
	td.mu.Unlock()
	td.cond.Broadcast()
	td.wg.Wait()
}

func (td *TaskDispatch) worker() {
	defer td.wg.Done()
	for {
		td.mu.Lock()
		for len(td.queue) == 0 && !td.stopped {
			td.cond.Wait()
		}
		if td.stopped {
			td.mu.Unlock()
			return
		}
		task := td.queue[0]
		td.queue = td.queue[1:]
		run := !td.discard
		td.mu.Unlock()

		if run {
			task()
		}

		td.mu.Lock()
		td.pending--
		if td.pending == 0 {
			close(td.idle)
		}
		td.mu.Unlock()
	}
}
