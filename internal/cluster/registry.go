package cluster

import (
	"sync"

	"github.com/oriys/novasched/internal/domain"
)

// Registry tracks every host the service has ever registered (views) and
// the subset currently available for placement. Host up/down membership is
// driven entirely by explicit OnHostStateChanged callbacks, not polling.
type Registry struct {
	mu        sync.RWMutex
	views     map[string]*HostView
	available map[string]*HostView

	maxCores  int
	maxMemory int64
}

// NewRegistry returns an empty host registry.
func NewRegistry() *Registry {
	return &Registry{
		views:     make(map[string]*HostView),
		available: make(map[string]*HostView),
	}
}

// AddHost registers host idempotently, growing maxCores/maxMemory as needed.
// Returns the view (existing or freshly created) and whether this call
// actually created it.
func (r *Registry) AddHost(h domain.Host) (view *HostView, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.views[h.UID()]; ok {
		return existing, false
	}

	view = NewHostView(h)
	r.views[h.UID()] = view

	model := h.Model()
	if model.CPUCount > r.maxCores {
		r.maxCores = model.CPUCount
	}
	if model.MemorySize > r.maxMemory {
		r.maxMemory = model.MemorySize
	}

	if h.State() == domain.HostUp {
		r.available[h.UID()] = view
	}
	return view, true
}

// Get returns the view for a host UID, if registered.
func (r *Registry) Get(uid string) (*HostView, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[uid]
	return v, ok
}

// MarkAvailable inserts the host's view into the available set.
func (r *Registry) MarkAvailable(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.views[uid]; ok {
		r.available[uid] = v
	}
}

// MarkUnavailable removes the host's view from the available set. The view
// itself, and any accounting it holds, is untouched.
func (r *Registry) MarkUnavailable(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.available, uid)
}

// Available returns a snapshot slice of the currently available host views,
// suitable for handing to an AllocationPolicy.
func (r *Registry) Available() []*HostView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*HostView, 0, len(r.available))
	for _, v := range r.available {
		out = append(out, v)
	}
	return out
}

// HostCount returns the number of ever-registered hosts.
func (r *Registry) HostCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// AvailableCount returns the number of hosts currently available.
func (r *Registry) AvailableCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.available)
}

// MaxCores returns the largest cpuCount across all ever-registered hosts.
func (r *Registry) MaxCores() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxCores
}

// MaxMemory returns the largest memorySize across all ever-registered hosts.
func (r *Registry) MaxMemory() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxMemory
}
