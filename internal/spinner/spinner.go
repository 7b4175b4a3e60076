// Package spinner provides a simple terminal spinner utility for indicating progress.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// frames cycle on a fixed delay; kept package-level since every spinner
// shares the same animation.
var frames = []string{"⠋", "⠙", "⠸", "⠴", "⠦", "⠇"}

const frameDelay = 120 * time.Millisecond

// Spinner animates a message on a writer until stopped.
type Spinner struct {
	writer  io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// New creates a spinner that writes to w.
// ctx allows for cancellation of the spinner goroutine.
func New(ctx context.Context, w io.Writer, message string) *Spinner {
	spinCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		writer:  w,
		message: message,
		ctx:     spinCtx,
		cancel:  cancel,
	}
}

// Start begins the animation; a second Start while running is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	s.wg.Add(1)
	go s.spin()
}

// Stop ends the animation and clears the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	// erase the line on real terminals; carriage return is enough elsewhere
	if f, ok := s.writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// Running reports whether the spinner is currently animating.
func (s *Spinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Spinner) spin() {
	defer s.wg.Done()

	ticker := time.NewTicker(frameDelay)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprintf(s.writer, "\r%s %s", frames[i%len(frames)], s.message)
		}
	}
}
