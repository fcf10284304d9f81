package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/stackchart/pkg/observability"
)

// syncBuffer lets the spinner goroutine and the test share a buffer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, "Loading sales.csv...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Loading sales.csv...") {
		t.Errorf("output %q does not contain the message", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("line not cleared after Stop: %q", got)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop")
	}
}

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerTo(ctx, &syncBuffer{}, "Building column chart...")
			s.Start()
			time.Sleep(100 * time.Millisecond)

			if !s.Cancelled() {
				t.Error("Cancelled() = false after the parent context ended")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerTo(context.Background(), &syncBuffer{}, "Rendering svg...")
	s.Stop() // before Start
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerElapsed(t *testing.T) {
	s := newSpinnerTo(context.Background(), &syncBuffer{}, "x")
	if s.Elapsed() != 0 {
		t.Errorf("Elapsed() before Start = %v, want 0", s.Elapsed())
	}
	s.Start()
	defer s.Stop()
	time.Sleep(10 * time.Millisecond)
	if s.Elapsed() <= 0 {
		t.Error("Elapsed() after Start should be positive")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	loads int
}

func (h *countingHooks) OnLoadStart(context.Context, string) { h.loads++ }

func TestTrackStages(t *testing.T) {
	defer observability.Reset()

	prev := &countingHooks{}
	observability.SetPipelineHooks(prev)

	s := newSpinnerTo(context.Background(), &syncBuffer{}, "Preparing...")
	restore := trackStages(s)

	ctx := context.Background()
	hooks := observability.Pipeline()

	hooks.OnLoadStart(ctx, "sales.csv")
	if got := s.Message(); got != "Loading sales.csv..." {
		t.Errorf("after load start: %q", got)
	}
	if prev.loads != 1 {
		t.Errorf("previous hooks saw %d load starts, want 1", prev.loads)
	}

	hooks.OnBuildStart(ctx, "column")
	if got := s.Message(); got != "Building column chart..." {
		t.Errorf("after build start: %q", got)
	}

	hooks.OnRenderStart(ctx, []string{"svg", "png"})
	if got := s.Message(); got != "Rendering svg, png..." {
		t.Errorf("after render start: %q", got)
	}

	restore()
	if observability.Pipeline() != observability.PipelineHooks(prev) {
		t.Error("restore did not reinstate the previous hooks")
	}
}
