package domain

import "context"

// HostState is the observable up/down state of a Host.
type HostState string

const (
	HostUp   HostState = "UP"
	HostDown HostState = "DOWN"
)

// HostModel describes a host's total resource shape.
type HostModel struct {
	CPUCount   int
	MemorySize int64
}

// Host is the external hypervisor contract the core consumes. Its internal
// execution model (how a host actually runs a workload) is out of scope —
// the core only ever calls the methods below.
type Host interface {
	UID() string
	Name() string
	Model() HostModel
	State() HostState

	// CanFit is advisory: the policy's view of available capacity may be
	// stale, so the scheduler core re-checks it before committing a
	// placement.
	CanFit(server *Server) bool

	// Spawn starts server on this host. The call may block — the core
	// invokes it from its own goroutine so the drain loop is not blocked —
	// and its returned error is the only synchronous signal the core acts
	// on; subsequent lifecycle transitions (ACTIVE, SHUTOFF, ERROR) arrive
	// through the registered HostListener instead.
	Spawn(ctx context.Context, server *Server) error

	AddListener(l HostListener)
	RemoveListener(l HostListener)
}

// HostListener receives host and VM lifecycle callbacks. Implementations
// must be total: no error may propagate out of either method.
type HostListener interface {
	// OnHostStateChanged fires when the host itself transitions UP/DOWN.
	OnHostStateChanged(h Host, newState HostState)

	// OnServerStateChanged fires when a VM placed on h changes state.
	OnServerStateChanged(h Host, s *Server, newState ServerState)
}
