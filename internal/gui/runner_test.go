package gui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type statusRecorder struct {
	mu       sync.Mutex
	statuses []RunStatus
}

func (r *statusRecorder) record(job RunJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, job.Status)
}

func (r *statusRecorder) all() []RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RunStatus(nil), r.statuses...)
}

func TestRunStatus_String(t *testing.T) {
	tests := []struct {
		status   RunStatus
		expected string
	}{
		{StatusIdle, "Idle"},
		{StatusRunning, "Running"},
		{StatusCompleted, "Completed"},
		{StatusFailed, "Failed"},
		{StatusCancelled, "Cancelled"},
		{RunStatus(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestRunner_Outcomes(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		fn       func(ctx context.Context) error
		expected RunStatus
	}{
		{"success", func(ctx context.Context) error { return nil }, StatusCompleted},
		{"failure", func(ctx context.Context) error { return boom }, StatusFailed},
		{"cancelled error", func(ctx context.Context) error { return context.Canceled }, StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &statusRecorder{}
			r := NewRunner(rec.record)

			id, err := r.Start(context.Background(), tt.fn)
			if err != nil {
				t.Fatalf("Start failed: %v", err)
			}
			if id != 1 {
				t.Errorf("Expected job ID 1, got %d", id)
			}
			r.Wait()

			job, ok := r.Current()
			if !ok {
				t.Fatal("Expected a current job")
			}
			if job.Status != tt.expected {
				t.Errorf("Expected status %s, got %s", tt.expected, job.Status)
			}

			statuses := rec.all()
			if len(statuses) != 2 || statuses[0] != StatusRunning || statuses[1] != tt.expected {
				t.Errorf("Expected Running then %s, got %v", tt.expected, statuses)
			}
		})
	}
}

func TestRunner_RejectsSecondRun(t *testing.T) {
	release := make(chan struct{})
	r := NewRunner(nil)

	if _, err := r.Start(context.Background(), func(ctx context.Context) error {
		<-release
		return nil
	}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := r.Start(context.Background(), func(ctx context.Context) error { return nil }); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}
	if !r.Running() {
		t.Error("Expected runner to report a running job")
	}

	close(release)
	r.Wait()

	id, err := r.Start(context.Background(), func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("Start after completion failed: %v", err)
	}
	if id != 2 {
		t.Errorf("Expected job ID 2, got %d", id)
	}
	r.Wait()
}

func TestRunner_Cancel(t *testing.T) {
	r := NewRunner(nil)

	if r.Cancel() {
		t.Error("Expected Cancel without a job to return false")
	}

	started := make(chan struct{})
	if _, err := r.Start(context.Background(), func(ctx context.Context) error {
		close(started)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return nil
		}
	}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	<-started
	if !r.Cancel() {
		t.Error("Expected Cancel to stop the running job")
	}
	r.Wait()

	job, _ := r.Current()
	if job.Status != StatusCancelled {
		t.Errorf("Expected Cancelled, got %s", job.Status)
	}
	if job.CompletedAt.IsZero() {
		t.Error("Expected CompletedAt to be set")
	}
}
