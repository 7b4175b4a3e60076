package spinner

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncWriter guards a buffer against concurrent writes from the spin goroutine.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestSpinnerStartStop(t *testing.T) {
	w := &syncWriter{}
	s := New(context.Background(), w, "Fetching...")

	if s.Running() {
		t.Error("spinner should not be running before Start")
	}

	s.Start()
	if !s.Running() {
		t.Error("spinner should be running after Start")
	}

	// let a few frames render
	time.Sleep(300 * time.Millisecond)

	s.Stop()
	if s.Running() {
		t.Error("spinner should not be running after Stop")
	}

	out := w.String()
	if !strings.Contains(out, "Fetching...") {
		t.Errorf("expected message in output, got %q", out)
	}

	found := false
	for _, frame := range frames {
		if strings.Contains(out, frame) {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected a spinner frame in output, got %q", out)
	}
}

func TestSpinnerDoubleStartAndStop(t *testing.T) {
	w := &syncWriter{}
	s := New(context.Background(), w, "working")

	s.Start()
	s.Start() // no-op
	s.Stop()
	s.Stop() // no-op

	if s.Running() {
		t.Error("spinner should not be running after Stop")
	}
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &syncWriter{}
	s := New(ctx, w, "working")

	s.Start()
	cancel()

	// the goroutine exits on cancellation; Stop must not hang
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}
