// Package scheduler implements the provisioning service's scheduler core:
// the per-cycle drain, the host listener / lifecycle reconciliation, and the
// client surface (NewServer/Close), all serialized onto a single owning
// goroutine.
package scheduler

import (
	"context"
	"sync/atomic"

	"github.com/oriys/novasched/internal/cluster"
	"github.com/oriys/novasched/internal/config"
	"github.com/oriys/novasched/internal/domain"
	"github.com/oriys/novasched/internal/events"
	"github.com/oriys/novasched/internal/logging"
	"github.com/oriys/novasched/internal/metrics"
	"github.com/oriys/novasched/internal/quantum"
	"github.com/oriys/novasched/internal/queue"
	"github.com/oriys/novasched/internal/tracing"
)

// Core is the scheduler core. All of its mutable state — the queue, host
// views, counters, and the active-server set — is owned by a single
// goroutine; every public method funnels its mutation through the commands
// channel rather than taking a lock.
type Core struct {
	cfg      *config.Config
	registry *cluster.Registry
	queue    *queue.Queue
	timer    *quantum.Timer
	counters *metrics.Counters
	collect  *metrics.Collectors
	bus      *events.Bus
	tracer   *tracing.Tracer
	idgen    *domain.IDGenerator
	service  string

	commands chan func()
	closed   atomic.Bool
	closeCtx context.Context
	cancel   context.CancelFunc

	active map[string]*domain.Server
}

// New constructs and starts a Core. A nil cfg uses config.DefaultConfig().
func New(cfg *config.Config) *Core {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := &Core{
		cfg:      cfg,
		registry: cluster.NewRegistry(),
		queue:    queue.New(),
		counters: metrics.NewCounters(),
		bus:      events.NewBus(),
		tracer:   tracing.New(cfg.Tracer),
		idgen:    domain.NewIDGenerator(1),
		service:  "novasched",
		commands: make(chan func(), 64),
		closeCtx: ctx,
		cancel:   cancel,
		active:   make(map[string]*domain.Server),
	}
	if cfg.Metrics.Enabled {
		c.collect = metrics.NewCollectors(cfg.Metrics.Namespace)
	}
	logging.Default().SetClock(cfg.Clock)
	c.timer = quantum.New(cfg.Clock, cfg.SchedulingQuantum, func() {
		c.async(c.drainCycle)
	})

	go c.run()
	return c
}

func (c *Core) run() {
	for cmd := range c.commands {
		cmd()
	}
}

// call runs fn on the core goroutine and blocks until it has executed,
// returning false instead if the core was closed first.
func (c *Core) call(fn func()) bool {
	done := make(chan struct{})
	select {
	case c.commands <- func() { fn(); close(done) }:
	case <-c.closeCtx.Done():
		return false
	}
	select {
	case <-done:
		return true
	case <-c.closeCtx.Done():
		return false
	}
}

// async enqueues fn to run on the core goroutine without waiting.
func (c *Core) async(fn func()) {
	select {
	case c.commands <- fn:
	case <-c.closeCtx.Done():
	}
}

// Bus returns the event stream subscribers attach to.
func (c *Core) Bus() *events.Bus { return c.bus }

// Collectors returns the Prometheus mirror, or nil if metrics are disabled.
func (c *Core) Collectors() *metrics.Collectors { return c.collect }

// NewServer constructs a Server, enqueues it, requests a scheduling cycle,
// and suspends until it is placed or the call is cancelled.
func (c *Core) NewServer(ctx context.Context, name string, image domain.Image, flavor domain.Flavor) (*domain.Server, error) {
	if c.closed.Load() {
		return nil, domain.ErrClientClosed
	}

	server := domain.NewServer(c.idgen.NewUID(), name, image, flavor)
	completion := queue.NewCompletion()
	req := &queue.LaunchRequest{Server: server, Completion: completion}

	ok := c.call(func() {
		c.queue.Push(req)
		c.counters.Submit()
		if c.collect != nil {
			c.collect.IncSubmitted()
		}
		_, span := c.tracer.StartSubmission(context.Background(), name, flavor.CPUCount, flavor.MemorySize)
		c.bus.Publish(events.VmSubmission{Name: name, Image: image, Flavor: flavor})
		c.tracer.Finish(span, nil)
		c.publishMetrics()
		c.timer.RequestCycle()
	})
	if !ok {
		return nil, domain.ErrClientClosed
	}

	select {
	case res := <-completion.C():
		return res.Server, res.Err
	case <-ctx.Done():
		completion.Cancel()
		c.async(func() { c.queue.Remove(server.UID) })
		return nil, ctx.Err()
	case <-c.closeCtx.Done():
		completion.Cancel()
		return nil, domain.ErrClientClosed
	}
}

// Close marks the client closed: future NewServer calls fail immediately,
// every still-suspended NewServer cancels its completion and returns
// ErrClientClosed, and the quantum timer is disarmed. Requests already
// sitting in the queue are not removed from it.
func (c *Core) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	c.timer.Disarm()
	c.cancel()
}

// AddHost registers host, idempotent on identity.
func (c *Core) AddHost(h domain.Host) {
	c.call(func() {
		_, created := c.registry.AddHost(h)
		if created {
			h.AddListener(c)
			c.publishMetrics()
		}
	})
}

// RemoveHost deregisters the listener only; placed servers remain tracked
// and their eventual status is left undefined — the core does not evict
// or reassign work from a removed host.
func (c *Core) RemoveHost(h domain.Host) {
	c.call(func() {
		h.RemoveListener(c)
	})
}

// OnHostStateChanged implements domain.HostListener.
func (c *Core) OnHostStateChanged(h domain.Host, newState domain.HostState) {
	c.call(func() {
		switch newState {
		case domain.HostUp:
			c.registry.MarkAvailable(h.UID())
			c.bus.Publish(events.HypervisorAvailable{HostUID: h.UID()})
		case domain.HostDown:
			c.registry.MarkUnavailable(h.UID())
			c.bus.Publish(events.HypervisorUnavailable{HostUID: h.UID()})
		}
		c.publishMetrics()
		if c.queue.Len() > 0 {
			c.timer.RequestCycle()
		}
	})
}

// OnServerStateChanged implements domain.HostListener.
func (c *Core) OnServerStateChanged(h domain.Host, s *domain.Server, newState domain.ServerState) {
	c.call(func() {
		s.SetState(newState)
		if newState != domain.ServerShutoff {
			return
		}

		view, ok := c.registry.Get(h.UID())
		if !ok {
			logging.OpForHost(h.UID()).Error(domain.ErrUnknownHost.Error(), "server", s.Name)
			return
		}

		view.Release(s.Flavor)
		c.counters.Finish()
		delete(c.active, s.UID)
		if c.collect != nil {
			c.collect.IncFinished()
		}
		c.bus.Publish(events.VmStopped{Name: s.Name})
		c.publishMetrics()
		if c.queue.Len() > 0 {
			c.timer.RequestCycle()
		}
	})
}

// drainCycle repeatedly inspects the head of the queue, placing or
// permanently rejecting requests until the head can't be resolved either
// way, at which point head-of-line blocking stops the cycle. It runs on the
// core goroutine, invoked by the quantum timer's fire callback.
func (c *Core) drainCycle() {
	_, span := c.tracer.StartCycle(context.Background())
	defer c.tracer.Finish(span, nil)

	for {
		req := c.queue.Front()
		if req == nil {
			return
		}
		server := req.Server

		candidate := c.cfg.AllocationPolicy.Select(c.registry.Available(), server)
		if candidate != nil && candidate.Host.CanFit(server) {
			c.queue.PopFront()
			candidate.Reserve(server.Flavor)
			c.spawn(candidate, req)
			continue
		}

		if server.Flavor.MemorySize > c.registry.MaxMemory() || server.Flavor.CPUCount > c.registry.MaxCores() {
			c.queue.PopFront()
			c.counters.RejectInfeasible()
			if c.collect != nil {
				c.collect.IncVmSubmissionInvalid()
			}
			c.bus.Publish(events.VmSubmissionInvalid{Name: server.Name})
			c.logPlacement(server, "", "rejected", nil)
			c.publishMetrics()
			continue
		}

		// Head-of-line blocking: a feasible-but-not-currently-placeable head
		// stops the whole cycle rather than letting a later request skip ahead.
		return
	}
}

// spawn applies the speculative reservation's async continuation: resolve
// the client, invoke host.Spawn, and on success or failure update
// bookkeeping back on the core goroutine.
func (c *Core) spawn(view *cluster.HostView, req *queue.LaunchRequest) {
	server := req.Server
	host := view.Host
	req.Completion.Resolve(server, nil)

	go func() {
		ctx, span := c.tracer.StartSpawn(context.Background(), server.Name, host.UID())
		err := host.Spawn(ctx, server)
		c.tracer.Finish(span, err)

		c.async(func() {
			if err != nil {
				view.Release(server.Flavor)
				if c.collect != nil {
					c.collect.IncSpawnRollback()
				}
				logging.OpForServer(server.UID).Error("spawn failed, reservation rolled back", "host", host.UID(), "error", err)
				c.logPlacement(server, host.UID(), "rolled_back", err)
				return
			}

			c.active[server.UID] = server
			c.counters.Schedule()
			c.bus.Publish(events.VmScheduled{Name: server.Name})
			c.logPlacement(server, host.UID(), "placed", nil)
			c.publishMetrics()
		})
	}()
}

// publishMetrics snapshots the counters and host bookkeeping into both the
// Prometheus mirror and a MetricsAvailable event, in that order.
func (c *Core) publishMetrics() {
	snap := c.counters.Snapshot()
	hostCount := c.registry.HostCount()
	availableHostCount := c.registry.AvailableCount()

	if c.collect != nil {
		c.collect.Observe(snap, hostCount, availableHostCount)
	}
	c.bus.Publish(events.MetricsAvailable{
		Service:            c.service,
		HostCount:          hostCount,
		AvailableHostCount: availableHostCount,
		Submitted:          snap.Submitted,
		Running:            snap.Running,
		Finished:           snap.Finished,
		Queued:             snap.Queued,
		Unscheduled:        snap.Unscheduled,
	})
}

func (c *Core) logPlacement(server *domain.Server, hostUID, outcome string, err error) {
	entry := &logging.PlacementLog{
		ServerUID:  server.UID,
		ServerName: server.Name,
		HostUID:    hostUID,
		Outcome:    outcome,
		CPUCount:   server.Flavor.CPUCount,
		MemorySize: server.Flavor.MemorySize,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	logging.Default().Log(entry)
}
