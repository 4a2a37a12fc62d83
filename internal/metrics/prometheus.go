package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors wraps the Prometheus mirror of the scheduler core's counters
// and host bookkeeping: a registry-per-process, Namespace-qualified set of
// gauges and counters covering VM lifecycle and host availability.
type Collectors struct {
	registry *prometheus.Registry

	submittedVms   prometheus.Counter
	queuedVms      prometheus.Gauge
	runningVms     prometheus.Gauge
	finishedVms    prometheus.Counter
	unscheduledVms prometheus.Gauge

	hostCount          prometheus.Gauge
	availableHostCount prometheus.Gauge

	vmSubmissionInvalidTotal prometheus.Counter
	spawnRollbacksTotal      prometheus.Counter
}

// NewCollectors constructs and registers a fresh set of collectors under
// namespace.
func NewCollectors(namespace string) *Collectors {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	c := &Collectors{
		registry: registry,

		submittedVms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submitted_vms_total",
			Help:      "Total VM launch requests accepted into the queue.",
		}),
		queuedVms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queued_vms",
			Help:      "VM launch requests currently waiting in the queue.",
		}),
		runningVms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "running_vms",
			Help:      "VMs currently placed and active.",
		}),
		finishedVms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finished_vms_total",
			Help:      "Total VMs that reached SHUTOFF.",
		}),
		unscheduledVms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unscheduled_vms",
			Help:      "VM launch requests permanently rejected as infeasible.",
		}),
		hostCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_count",
			Help:      "Total hosts ever registered.",
		}),
		availableHostCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "available_host_count",
			Help:      "Hosts currently in the available set.",
		}),
		vmSubmissionInvalidTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vm_submission_invalid_total",
			Help:      "Total VmSubmissionInvalid rejections.",
		}),
		spawnRollbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spawn_rollbacks_total",
			Help:      "Total speculative reservations rolled back after a failed spawn.",
		}),
	}

	registry.MustRegister(
		c.submittedVms,
		c.queuedVms,
		c.runningVms,
		c.finishedVms,
		c.unscheduledVms,
		c.hostCount,
		c.availableHostCount,
		c.vmSubmissionInvalidTotal,
		c.spawnRollbacksTotal,
	)
	return c
}

// Observe mirrors a counters snapshot plus host bookkeeping into the
// Prometheus gauges, matching the fields carried by a MetricsAvailable
// event.
func (c *Collectors) Observe(snap Snapshot, hostCount, availableHostCount int) {
	c.queuedVms.Set(float64(snap.Queued))
	c.runningVms.Set(float64(snap.Running))
	c.unscheduledVms.Set(float64(snap.Unscheduled))
	c.hostCount.Set(float64(hostCount))
	c.availableHostCount.Set(float64(availableHostCount))
}

// IncSubmitted records one accepted launch request.
func (c *Collectors) IncSubmitted() { c.submittedVms.Inc() }

// IncFinished records one server reaching SHUTOFF.
func (c *Collectors) IncFinished() { c.finishedVms.Inc() }

// IncVmSubmissionInvalid records one permanent infeasibility rejection.
func (c *Collectors) IncVmSubmissionInvalid() { c.vmSubmissionInvalidTotal.Inc() }

// IncSpawnRollback records one rolled-back reservation.
func (c *Collectors) IncSpawnRollback() { c.spawnRollbacksTotal.Inc() }

// Handler returns an HTTP handler for Prometheus scraping.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry, for tests or a
// caller that wants to register additional collectors.
func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}
