// Package task runs one remote operation off the prompt goroutine and lets
// the caller poll it for completion while a progress indicator is drawn.
package task

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// PollInterval is how often Run checks the handle and redraws the spinner.
var PollInterval = 50 * time.Millisecond

// Handle tracks a single in-flight operation. The result is readable once
// Done is closed.
type Handle[T any] struct {
	id   string
	name string
	done chan struct{}
	g    errgroup.Group
	res  T
	err  error
}

// Start launches fn and returns without waiting for it.
func Start[T any](ctx context.Context, name string, fn func(ctx context.Context) (T, error)) *Handle[T] {
	h := &Handle[T]{id: uuid.NewString(), name: name, done: make(chan struct{})}

	h.g.Go(func() error {
		res, err := fn(ctx)
		h.res = res
		return err
	})
	go func() {
		h.err = h.g.Wait()
		close(h.done)
	}()

	return h
}

func (h *Handle[T]) ID() string   { return h.id }
func (h *Handle[T]) Name() string { return h.name }

// Done is closed when the operation has finished.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the operation finishes and returns its outcome.
func (h *Handle[T]) Wait() (T, error) {
	<-h.done
	return h.res, h.err
}

var frames = []string{"|", "/", "-", `\`}

// Run starts fn and draws a spinner on w until it completes. The spinner
// line is erased before Run returns.
func Run[T any](ctx context.Context, w io.Writer, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	h := Start(ctx, name, fn)

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	line := ""
	for i := 0; ; i++ {
		line = fmt.Sprintf("\r%s %s", frames[i%len(frames)], h.Name())
		fmt.Fprint(w, line)

		select {
		case <-h.Done():
			fmt.Fprint(w, "\r"+strings.Repeat(" ", len(line)-1)+"\r")
			return h.Wait()
		case <-ticker.C:
		}
	}
}
