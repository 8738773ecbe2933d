package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/hierview/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// Spinner draws a progress line on stderr until it is stopped or its context
// ends. The message may change while it runs.
type Spinner struct {
	ctx     context.Context
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once

	mu      sync.Mutex
	message string
	start   time.Time
	started bool
	width   int
	restore func()
}

// newSpinner creates a new spinner with the given message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that stops when ctx is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		ctx:     ctx,
		message: message,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// SetMessage replaces the text shown next to the frame.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// FollowStages points the message at the running pipeline stage until the
// spinner stops. Events still reach the hooks registered before.
func (s *Spinner) FollowStages() *Spinner {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(stageHooks{PipelineHooks: prev, s: s})
	s.restore = func() { observability.SetPipelineHooks(prev) }
	return s
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.start, s.started = time.Now(), true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := time.Since(s.start).Truncate(100 * time.Millisecond)
	plain := fmt.Sprintf("%s %s %s", frame, s.message, elapsed)
	s.width = max(s.width, len([]rune(plain)))
	fmt.Fprintf(os.Stderr, "\r%s %s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), StyleDim.Render(elapsed.String()))
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Stop ends the animation and clears the line. It is safe to call more
// than once, and without Start.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.stopped
		}
		s.clearLine()
		if s.restore != nil {
			s.restore()
		}
	})
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the context of the spinner ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// stageHooks relays the start of each pipeline stage to a spinner.
type stageHooks struct {
	observability.PipelineHooks
	s *Spinner
}

func (h stageHooks) OnBuildStart(ctx context.Context, source string) {
	h.s.SetMessage("Building tree from " + source)
	h.PipelineHooks.OnBuildStart(ctx, source)
}

func (h stageHooks) OnLayoutStart(ctx context.Context, vizType string, nodeCount int) {
	h.s.SetMessage(fmt.Sprintf("Laying out %s (%d nodes)", vizType, nodeCount))
	h.PipelineHooks.OnLayoutStart(ctx, vizType, nodeCount)
}

func (h stageHooks) OnRenderStart(ctx context.Context, formats []string) {
	h.s.SetMessage("Rendering " + strings.Join(formats, ", "))
	h.PipelineHooks.OnRenderStart(ctx, formats)
}
