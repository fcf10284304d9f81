package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stackchart/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner draws a one-line progress indicator on a terminal. The message
// can change while it spins, so a single spinner follows a pipeline run
// through its load, build and render stages.
type Spinner struct {
	w     io.Writer
	start time.Time

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	exited chan struct{}

	mu      sync.Mutex
	message string
	width   int // visible width of the last drawn line
	stopped bool
}

// newSpinner returns an idle spinner writing to stderr. It stops by
// itself when ctx is done.
func newSpinner(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		ctx:     sctx,
		cancel:  cancel,
		exited:  make(chan struct{}),
		message: message,
	}
}

// Start begins drawing frames until Stop or cancellation.
func (s *Spinner) Start() {
	s.start = time.Now()
	go func() {
		defer close(s.exited)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the text shown next to the frame.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Elapsed is the time since Start.
func (s *Spinner) Elapsed() time.Duration {
	if s.start.IsZero() {
		return 0
	}
	return time.Since(s.start)
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := fmt.Sprintf("%.1fs", s.Elapsed().Seconds())
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message) + "  " + StyleDim.Render(elapsed)
	pad := max(s.width-lipgloss.Width(line), 0)
	fmt.Fprintf(s.w, "\r%s%s", line, strings.Repeat(" ", pad))
	s.width = lipgloss.Width(line)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}

// Stop halts the spinner and clears its line. It is safe to call more
// than once and before Start.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		started := !s.start.IsZero()
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		s.cancel()
		if started {
			<-s.exited
		}
	})
}

// StopWithError stops the spinner and prints message as an error.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended the spinner rather
// than Stop.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped && s.ctx.Err() != nil
}

// =============================================================================
// Stage tracking
// =============================================================================

// stageHooks relays pipeline stage starts to a spinner and forwards every
// event to the hooks registered before it.
type stageHooks struct {
	observability.PipelineHooks
	spinner *Spinner
}

func (h stageHooks) OnLoadStart(ctx context.Context, source string) {
	h.spinner.SetMessage("Loading " + source + "...")
	h.PipelineHooks.OnLoadStart(ctx, source)
}

func (h stageHooks) OnBuildStart(ctx context.Context, recipe string) {
	h.spinner.SetMessage("Building " + recipe + " chart...")
	h.PipelineHooks.OnBuildStart(ctx, recipe)
}

func (h stageHooks) OnRenderStart(ctx context.Context, formats []string) {
	h.spinner.SetMessage("Rendering " + strings.Join(formats, ", ") + "...")
	h.PipelineHooks.OnRenderStart(ctx, formats)
}

// trackStages routes pipeline stage events to s until the returned
// function restores the previous hooks.
func trackStages(s *Spinner) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(stageHooks{PipelineHooks: prev, spinner: s})
	return func() { observability.SetPipelineHooks(prev) }
}
