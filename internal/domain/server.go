// Package domain holds the data model shared by the scheduler core: the
// Server a client asked to launch, the Host contract the core consumes, and
// the flavor/state types that tie the two together.
package domain

import "sync"

// Flavor is the resource shape requested by a VM.
type Flavor struct {
	CPUCount   int   `json:"cpu_count"`
	MemorySize int64 `json:"memory_size"`
}

// ServerState is the lifecycle state of a Server.
type ServerState string

const (
	ServerBuild   ServerState = "BUILD"
	ServerActive  ServerState = "ACTIVE"
	ServerShutoff ServerState = "SHUTOFF"
	ServerError   ServerState = "ERROR"
)

// Image is an opaque workload descriptor. The core never inspects it; it is
// passed through to Host.Spawn verbatim.
type Image any

// ServerWatcher is notified synchronously, in registration order, whenever a
// Server's state changes. Watchers must not mutate the scheduler's queue or
// host bookkeeping.
type ServerWatcher func(s *Server, from, to ServerState)

// Server is both the identity of a launch request and, once placed, the
// runtime handle a client holds.
type Server struct {
	UID    string
	Name   string
	Flavor Flavor
	Image  Image

	mu       sync.Mutex
	state    ServerState
	watchers []ServerWatcher
}

// NewServer constructs a Server in its initial BUILD state.
func NewServer(uid, name string, image Image, flavor Flavor) *Server {
	return &Server{
		UID:    uid,
		Name:   name,
		Flavor: flavor,
		Image:  image,
		state:  ServerBuild,
	}
}

// State returns the server's current lifecycle state.
func (s *Server) State() ServerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Watch registers a watcher invoked on every subsequent state transition.
func (s *Server) Watch(w ServerWatcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, w)
}

// SetState transitions the server and notifies watchers in registration
// order. Only the host listener reconciliation path should call this.
func (s *Server) SetState(to ServerState) {
	s.mu.Lock()
	from := s.state
	s.state = to
	watchers := append([]ServerWatcher(nil), s.watchers...)
	s.mu.Unlock()

	if from == to {
		return
	}
	for _, w := range watchers {
		w(s, from, to)
	}
}
