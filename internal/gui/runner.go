package gui

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrAlreadyRunning is returned when a run is started while another is active
var ErrAlreadyRunning = errors.New("a glossary run is already in progress")

// RunStatus represents the current state of the glossary run
type RunStatus int

const (
	StatusIdle RunStatus = iota
	StatusRunning
	StatusCompleted
	StatusFailed
	StatusCancelled
)

func (s RunStatus) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// RunJob describes one pipeline run started from the window
type RunJob struct {
	ID          int
	Status      RunStatus
	Error       error
	StartedAt   time.Time
	CompletedAt time.Time
}

// Runner executes at most one job at a time on a background goroutine
type Runner struct {
	mu      sync.Mutex
	current *RunJob
	cancel  context.CancelFunc
	nextID  int
	wg      sync.WaitGroup

	// onStatusUpdate is called from the worker goroutine
	onStatusUpdate func(job RunJob)
}

// NewRunner creates a runner reporting status changes to onStatusUpdate
func NewRunner(onStatusUpdate func(job RunJob)) *Runner {
	return &Runner{nextID: 1, onStatusUpdate: onStatusUpdate}
}

// Start runs fn in the background with a cancellable child of ctx
func (r *Runner) Start(ctx context.Context, fn func(ctx context.Context) error) (int, error) {
	r.mu.Lock()
	if r.current != nil && r.current.Status == StatusRunning {
		r.mu.Unlock()
		return 0, ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	job := &RunJob{ID: r.nextID, Status: StatusRunning, StartedAt: time.Now()}
	r.nextID++
	r.current = job
	r.cancel = cancel
	snapshot := *job
	r.mu.Unlock()

	r.notify(snapshot)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		err := fn(runCtx)
		r.finish(runCtx, job, err)
	}()

	return snapshot.ID, nil
}

func (r *Runner) finish(ctx context.Context, job *RunJob, err error) {
	r.mu.Lock()
	job.CompletedAt = time.Now()
	job.Error = err
	switch {
	case err == nil:
		job.Status = StatusCompleted
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		job.Status = StatusCancelled
	default:
		job.Status = StatusFailed
	}
	snapshot := *job
	r.mu.Unlock()

	r.notify(snapshot)
}

func (r *Runner) notify(job RunJob) {
	if r.onStatusUpdate != nil {
		r.onStatusUpdate(job)
	}
}

// Cancel stops the active job, if any
func (r *Runner) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil || r.current.Status != StatusRunning {
		return false
	}
	r.cancel()
	return true
}

// Current returns a copy of the latest job
func (r *Runner) Current() (RunJob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return RunJob{}, false
	}
	return *r.current, true
}

// Running reports whether a job is active
func (r *Runner) Running() bool {
	job, ok := r.Current()
	return ok && job.Status == StatusRunning
}

// Wait blocks until the active job has returned
func (r *Runner) Wait() {
	r.wg.Wait()
}
