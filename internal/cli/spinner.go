package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a one-line status on w until stopped or ctx ends.
type spinner struct {
	w    io.Writer
	ctx  context.Context
	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once

	mu    sync.Mutex
	msg   string
	drawn int // widest line drawn so far
}

// startSpinner starts a spinner on stderr.
func startSpinner(ctx context.Context, msg string) *spinner {
	return startSpinnerTo(ctx, os.Stderr, msg)
}

func startSpinnerTo(ctx context.Context, w io.Writer, msg string) *spinner {
	s := &spinner{w: w, ctx: ctx, msg: msg, stop: make(chan struct{})}
	s.wg.Add(1)
	go s.loop()
	return s
}

func (s *spinner) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

// Update replaces the message shown next to the spinner.
func (s *spinner) Update(format string, args ...any) {
	s.mu.Lock()
	s.msg = fmt.Sprintf(format, args...)
	s.mu.Unlock()
}

// Stop halts the animation and clears the line. Repeated calls are no-ops.
func (s *spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		s.wg.Wait()
		s.clear()
	})
}

// Interrupted reports whether ctx ended while the spinner was running.
func (s *spinner) Interrupted() bool {
	select {
	case <-s.stop:
		return false
	default:
		return s.ctx.Err() != nil
	}
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.msg))
	s.drawn = max(s.drawn, len(s.msg)+2)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.drawn))
	}
}
