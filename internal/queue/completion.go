package queue

import (
	"sync"

	"github.com/oriys/novasched/internal/domain"
)

// Result is what a Completion resolves with: a usable server handle, or the
// error the client should see.
type Result struct {
	Server *domain.Server
	Err    error
}

// Completion is the one-shot continuation attached to every LaunchRequest.
// It resolves exactly once, either with a placed server or by being
// cancelled: a single buffered channel plus a guard so a second
// resolve/cancel is a silent no-op rather than a panic.
type Completion struct {
	mu   sync.Mutex
	done bool
	ch   chan Result

	cancelled bool
}

// NewCompletion returns a completion ready to be resolved or cancelled once.
func NewCompletion() *Completion {
	return &Completion{ch: make(chan Result, 1)}
}

// Resolve delivers server (and err, if the placement ultimately failed) to
// the waiting caller. Returns false if the completion was already resolved
// or cancelled.
func (c *Completion) Resolve(server *domain.Server, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return false
	}
	c.done = true
	c.ch <- Result{Server: server, Err: err}
	return true
}

// Cancel marks the completion as settled without ever sending a value.
// Callers still waiting on C() observe this only via their own context
// cancellation.
func (c *Completion) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return false
	}
	c.done = true
	c.cancelled = true
	return true
}

// Cancelled reports whether the completion was settled without a value.
func (c *Completion) Cancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

// C returns the channel the caller should select on alongside ctx.Done().
func (c *Completion) C() <-chan Result {
	return c.ch
}
