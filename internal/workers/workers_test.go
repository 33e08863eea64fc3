package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/models"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run()
}

// ─────────────────────────────────────────────
// session cleanup worker
// ─────────────────────────────────────────────

// mockSessionService counts CleanupExpired calls in a goroutine-safe way.
type mockSessionService struct {
	mu     sync.Mutex
	sweeps int
}

func (m *mockSessionService) Create(_ context.Context, _ int64, _ string) (string, error) {
	return "", nil
}

func (m *mockSessionService) Resolve(_ context.Context, _ string) (models.Session, error) {
	return models.Session{}, nil
}

func (m *mockSessionService) Invalidate(_ context.Context, _ string) error {
	return nil
}

func (m *mockSessionService) CleanupExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweeps++
	return 1, nil
}

func (m *mockSessionService) sweepCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweeps
}

func TestSessionCleanupWorker_SweepsOnTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := &mockSessionService{}
	worker := newSessionCleanupWorker(ctx, sessions, 10*time.Millisecond, logger.Nop())

	worker.Run()

	deadline := time.After(2 * time.Second)
	for sessions.sweepCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("no sweep happened within the deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSessionCleanupWorker_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	sessions := &mockSessionService{}
	worker := newSessionCleanupWorker(ctx, sessions, 10*time.Millisecond, logger.Nop())

	worker.Run()
	cancel()

	// let the goroutine observe the cancellation, then make sure the sweep
	// counter stays put
	time.Sleep(50 * time.Millisecond)
	after := sessions.sweepCount()
	time.Sleep(50 * time.Millisecond)

	if sessions.sweepCount() != after {
		t.Errorf("worker kept sweeping after context cancellation")
	}
}

func TestNewSessionCleanupWorker_DefaultsNonPositiveInterval(t *testing.T) {
	worker := newSessionCleanupWorker(context.Background(), &mockSessionService{}, 0, logger.Nop())

	if worker.interval != time.Hour {
		t.Errorf("expected default interval of 1h, got %v", worker.interval)
	}
}
