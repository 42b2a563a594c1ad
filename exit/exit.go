package exit

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

var GlobalExitHandler = NewExitHandler()

// ExitHandler runs the registered closers on shutdown, newest first, so a
// database opened after the metrics server is closed before it.
type ExitHandler struct {
	mu               sync.Mutex
	ClosingFunctions []func() error
}

func NewExitHandler() *ExitHandler {
	e := new(ExitHandler)

	return e
}

func (e *ExitHandler) AddExit(f func() error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ClosingFunctions = append(e.ClosingFunctions, f)
}

func (e *ExitHandler) AddCancel(cancel context.CancelFunc) {
	e.AddExit(func() error {
		cancel()
		return nil
	})
}

// Close runs every closer once. Later calls are no-ops.
func (e *ExitHandler) Close() {
	e.mu.Lock()
	fs := e.ClosingFunctions
	e.ClosingFunctions = nil
	e.mu.Unlock()

	for i := len(fs) - 1; i >= 0; i-- {
		if err := fs[i](); err != nil {
			log.WithError(err).Errorf("failed to close")
		}
	}
}

func (e *ExitHandler) CloseWithTimeout(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		// If something is taking too long to close
		return context.DeadlineExceeded
	}
}
