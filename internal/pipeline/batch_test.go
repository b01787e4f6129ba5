package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aqwel-ai/aion/internal/model"
)

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })

		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.concurrency != 4 {
			t.Errorf("expected default concurrency 4, got %d", bp.concurrency)
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(
			func() *Pipeline { return New() },
			WithConcurrency(5),
		)

		if bp.concurrency != 5 {
			t.Errorf("expected concurrency 5, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(
			func() *Pipeline { return New() },
			WithConcurrency(0),
		)

		if bp.concurrency != 4 { // Should keep default
			t.Errorf("expected concurrency 10, got %d", bp.concurrency)
		}
	})

	t.Run("applies WithBatchLogger option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(
			func() *Pipeline { return New() },
			WithBatchLogger(nil),
		)

		// When WithBatchLogger(nil) is passed, the logger should be set to default
		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestBatchProcessorProcessBatch tests batch processing.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("processes all targets", func(t *testing.T) {
		t.Parallel()

		var processedCount atomic.Int32

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "counter",
				doFunc: func(_ context.Context, _ *model.Report) error {
					processedCount.Add(1)
					return nil
				},
			})
			return p
		})

		targets := []string{"./proj-a", "./proj-b", "./proj-c"}

		results, err := bp.ProcessBatch(context.Background(), targets)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Errorf("expected 3 results, got %d", len(results))
		}
		if processedCount.Load() != 3 {
			t.Errorf("expected 3 processed, got %d", processedCount.Load())
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var maxConcurrent atomic.Int32
		var currentConcurrent atomic.Int32
		var mu sync.Mutex

		bp := NewBatchProcessor(
			func() *Pipeline {
				p := New()
				p.AddStep(&mockStep{
					name: "concurrent-counter",
					doFunc: func(_ context.Context, _ *model.Report) error {
						current := currentConcurrent.Add(1)

						// Update max if needed (with mutex for safety)
						mu.Lock()
						if current > maxConcurrent.Load() {
							maxConcurrent.Store(current)
						}
						mu.Unlock()

						// Simulate some work
						time.Sleep(50 * time.Millisecond)

						currentConcurrent.Add(-1)
						return nil
					},
				})
				return p
			},
			WithConcurrency(2),
		)

		targets := make([]string, 10)
		for i := range targets {
			targets[i] = "./project"
		}

		_, err := bp.ProcessBatch(context.Background(), targets)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if maxConcurrent.Load() > 2 {
			t.Errorf("max concurrent was %d, expected <= 2", maxConcurrent.Load())
		}
	})

	t.Run("maintains result order", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "noop"})
			return p
		})

		targets := []string{"./first", "./second", "./third"}

		results, err := bp.ProcessBatch(context.Background(), targets)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, result := range results {
			if result.Target != targets[i] {
				t.Errorf("result[%d]: got %q, expected %q",
					i, result.Target, targets[i])
			}
		}
	})

	t.Run("continues after individual run failure", func(t *testing.T) {
		t.Parallel()

		var processedCount atomic.Int32

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "sometimes-fails",
				doFunc: func(_ context.Context, report *model.Report) error {
					processedCount.Add(1)
					// Fail for the second target only
					if report.Target == "./fail" {
						return errors.New("simulated analysis failure")
					}
					return nil
				},
			})
			return p
		})

		targets := []string{"./first", "./fail", "./third"}

		results, err := bp.ProcessBatch(context.Background(), targets)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if processedCount.Load() != 3 {
			t.Errorf("expected 3 processed, got %d", processedCount.Load())
		}
		// Check that the failed run has an error recorded
		if results[1].Error == nil {
			t.Error("expected error in second result")
		}
	})

	t.Run("handles context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var startedCount atomic.Int32

		bp := NewBatchProcessor(
			func() *Pipeline {
				p := New()
				p.AddStep(&mockStep{
					name: "slow-step",
					doFunc: func(ctx context.Context, _ *model.Report) error {
						startedCount.Add(1)
						select {
						case <-ctx.Done():
							return ctx.Err()
						case <-time.After(time.Second):
							return nil
						}
					},
				})
				return p
			},
			WithConcurrency(2),
		)

		targets := make([]string, 10)
		for i := range targets {
			targets[i] = "./project"
		}

		// Cancel after a short delay
		go func() {
			time.Sleep(100 * time.Millisecond)
			cancel()
		}()

		_, err := bp.ProcessBatch(ctx, targets)

		// Should return context.Canceled
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		// Not all targets should have started
		//nolint:gosec // len(targets) is small, no overflow risk
		if startedCount.Load() >= int32(len(targets)) {
			t.Error("expected some targets to not start due to cancellation")
		}
	})
}

// TestBatchProcessorProcessBatchWithCallback tests callback-based processing.
func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	t.Run("calls callback for each result", func(t *testing.T) {
		t.Parallel()

		var callbackCount atomic.Int32
		var mu sync.Mutex
		receivedTargets := make(map[string]bool)

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "noop"})
			return p
		})

		targets := []string{"./first", "./second", "./third"}

		err := bp.ProcessBatchWithCallback(
			context.Background(),
			targets,
			func(report *model.Report, _ int) {
				callbackCount.Add(1)
				mu.Lock()
				receivedTargets[report.Target] = true
				mu.Unlock()
			},
		)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if callbackCount.Load() != 3 {
			t.Errorf("expected 3 callbacks, got %d", callbackCount.Load())
		}
		for _, target := range targets {
			if !receivedTargets[target] {
				t.Errorf("missing callback for %q", target)
			}
		}
	})
}
