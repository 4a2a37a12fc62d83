// Package cluster owns the service's bookkeeping of registered hosts: the
// mutable per-host accounting (HostView) and the set of hosts currently
// available for placement (Registry).
package cluster

import "github.com/oriys/novasched/internal/domain"

// HostView is the service's mutable, per-host accounting. It is keyed off a
// domain.Host back-reference instead of owning the resource numbers itself
// — the host's true capacity lives on domain.Host.Model().
type HostView struct {
	Host domain.Host

	NumberOfActiveServers int
	ProvisionedCores      int
	AvailableMemory       int64
}

// NewHostView creates the initial accounting for a freshly registered host.
func NewHostView(h domain.Host) *HostView {
	return &HostView{
		Host:            h,
		AvailableMemory: h.Model().MemorySize,
	}
}

// Reserve applies the speculative accounting deltas for a placement decided
// in the current scheduling cycle, before the asynchronous spawn has even
// started. Later entries drained in the same cycle must see this delta so
// they don't race the same free capacity.
func (v *HostView) Reserve(f domain.Flavor) {
	v.NumberOfActiveServers++
	v.ProvisionedCores += f.CPUCount
	v.AvailableMemory -= f.MemorySize
}

// Release reverses a Reserve, either because spawn failed (rollback) or
// because the placed server reached SHUTOFF.
func (v *HostView) Release(f domain.Flavor) {
	v.NumberOfActiveServers--
	v.ProvisionedCores -= f.CPUCount
	v.AvailableMemory += f.MemorySize
}

// Snapshot returns a value copy of the current accounting, for comparing
// a later state (e.g. after a rolled-back reservation) against it.
func (v *HostView) Snapshot() HostView {
	return HostView{
		Host:                  v.Host,
		NumberOfActiveServers: v.NumberOfActiveServers,
		ProvisionedCores:      v.ProvisionedCores,
		AvailableMemory:       v.AvailableMemory,
	}
}

// Fits reports whether server fits within this host's own model, ignoring
// any speculative oversubscription a policy might otherwise allow. All three
// built-in policies (FirstFit, ActiveBalanced, MemoryBalanced) use it as
// their capacity test.
func (v *HostView) Fits(server *domain.Server) bool {
	model := v.Host.Model()
	return v.ProvisionedCores+server.Flavor.CPUCount <= model.CPUCount &&
		v.AvailableMemory >= server.Flavor.MemorySize
}
