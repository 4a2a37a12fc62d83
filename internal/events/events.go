// Package events defines the scheduler core's emitted event stream and the
// lazy, multi-subscriber bus that broadcasts it.
package events

import "github.com/oriys/novasched/internal/domain"

// Event is the common interface for every event the core emits. It carries
// no behavior; switch on the concrete type to handle one.
type Event interface {
	eventMarker()
}

// MetricsAvailable is emitted on every counter mutation, carrying a full
// snapshot rather than a delta.
type MetricsAvailable struct {
	Service            string
	HostCount          int
	AvailableHostCount int
	Submitted          int64
	Running            int64
	Finished           int64
	Queued             int64
	Unscheduled        int64
}

func (MetricsAvailable) eventMarker() {}

// HypervisorAvailable is emitted when a host transitions to UP and is
// inserted into the available set.
type HypervisorAvailable struct {
	HostUID string
}

func (HypervisorAvailable) eventMarker() {}

// HypervisorUnavailable is emitted when a host transitions to DOWN and is
// removed from the available set.
type HypervisorUnavailable struct {
	HostUID string
}

func (HypervisorUnavailable) eventMarker() {}

// VmSubmission is the trace event emitted when a newServer call is accepted
// into the queue.
type VmSubmission struct {
	Name   string
	Image  domain.Image
	Flavor domain.Flavor
}

func (VmSubmission) eventMarker() {}

// VmSubmissionInvalid is emitted when a request is permanently rejected for
// being infeasible on every known host.
type VmSubmissionInvalid struct {
	Name string
}

func (VmSubmissionInvalid) eventMarker() {}

// VmScheduled is emitted once a placed server's spawn call succeeds.
type VmScheduled struct {
	Name string
}

func (VmScheduled) eventMarker() {}

// VmStopped is emitted when a placed server reaches SHUTOFF.
type VmStopped struct {
	Name string
}

func (VmStopped) eventMarker() {}
