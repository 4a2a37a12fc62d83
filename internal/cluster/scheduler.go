package cluster

import "github.com/oriys/novasched/internal/domain"

// AllocationPolicy selects a candidate host for a server out of the
// currently available hosts. Implementations must be pure with respect to
// the core's state: they read HostView/host fields but never mutate them.
type AllocationPolicy interface {
	Select(available []*HostView, server *domain.Server) *HostView
}

// FirstFit returns the first available host (in iteration order) with
// enough unprovisioned cores and memory: scan, test, return on first hit.
type FirstFit struct{}

func (FirstFit) Select(available []*HostView, server *domain.Server) *HostView {
	for _, hv := range available {
		if hv.Fits(server) {
			return hv
		}
	}
	return nil
}

// ActiveBalanced selects the fitting host with the fewest active servers.
type ActiveBalanced struct{}

func (ActiveBalanced) Select(available []*HostView, server *domain.Server) *HostView {
	var best *HostView
	for _, hv := range available {
		if !hv.Fits(server) {
			continue
		}
		if best == nil || hv.NumberOfActiveServers < best.NumberOfActiveServers {
			best = hv
		}
	}
	return best
}

// MemoryBalanced selects the fitting host with the most available memory.
type MemoryBalanced struct{}

func (MemoryBalanced) Select(available []*HostView, server *domain.Server) *HostView {
	var best *HostView
	for _, hv := range available {
		if !hv.Fits(server) {
			continue
		}
		if best == nil || hv.AvailableMemory > best.AvailableMemory {
			best = hv
		}
	}
	return best
}
