// Package token implements the cooperative cancellation primitive shared by
// every in-flight task executor and process runner in a single nur run.
package token

import "sync"

// Cancellation is a broadcast-once flag: any number of goroutines may wait on
// it concurrently via Done, and Cancel is safe to call from any of them,
// any number of times.
//
// The zero value is not usable; construct one with New.
type Cancellation struct {
	mu        sync.Mutex
	done      chan struct{}
	cancelled bool
}

// New returns a fresh, uncancelled token.
func New() *Cancellation {
	return &Cancellation{done: make(chan struct{})}
}

// Cancel transitions the token from unset to set. It is idempotent: calling
// it more than once has no additional effect and never panics.
func (c *Cancellation) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled {
		return
	}
	c.cancelled = true
	close(c.done)
}

// IsCancelled reports whether Cancel has been called.
func (c *Cancellation) IsCancelled() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once Cancel has been called. It is
// safe to select on from many goroutines at once.
func (c *Cancellation) Done() <-chan struct{} {
	return c.done
}
