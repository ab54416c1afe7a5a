// Package health probes the liveness of the API backend and the local model
// runner. A failed probe degrades to a boolean, never an error: consumers
// branch on state, the user hears about transitions once via a notification.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"procure-ai/client/internal/interfaces"
	"procure-ai/client/internal/model"
	"procure-ai/client/internal/notify"
	"procure-ai/client/internal/transport"
)

// DefaultInterval is the poll period between health checks.
const DefaultInterval = 30 * time.Second

// runnerProbeTimeout bounds the local runner probe, which bypasses the
// transport client and its retry machinery entirely.
const runnerProbeTimeout = 2 * time.Second

// Monitor periodically checks the backend and the local runner and keeps the
// last observed state. Notifications are edge-triggered: one per transition,
// not one per poll.
type Monitor struct {
	transport interfaces.Transport
	runnerURL string
	probe     *http.Client
	notifier  notify.Notifier
	interval  time.Duration

	mu    sync.RWMutex
	state model.HealthState

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMonitor creates a Monitor polling every interval. A zero interval uses
// DefaultInterval. runnerURL is the local runner's own base address; it is
// deliberately not routed through the transport client.
func NewMonitor(t interfaces.Transport, runnerURL string, notifier notify.Notifier, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		transport: t,
		runnerURL: runnerURL,
		probe:     &http.Client{Timeout: runnerProbeTimeout},
		notifier:  notifier,
		interval:  interval,
		// Assume healthy until the first observation so the initial
		// offline check produces a notification.
		state: model.HealthState{BackendOnline: true, RunnerOnline: true},
		stop:  make(chan struct{}),
	}
}

// CheckBackend probes GET /health through the transport client. Retries are
// capped at 1 so a dead backend cannot cascade delay into the poll loop.
// Any failure resolves to false.
func (m *Monitor) CheckBackend(ctx context.Context) bool {
	var resp struct {
		Status string `json:"status"`
	}
	opts := transport.Options{Retries: transport.RetryCount(1)}
	if err := m.transport.Request(ctx, http.MethodGet, "/health", nil, opts, &resp); err != nil {
		slog.Debug("Backend health check failed", "error", err)
		return false
	}
	return resp.Status == "ok"
}

// CheckRunner probes the local model runner's own health endpoint.
func (m *Monitor) CheckRunner(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.runnerURL+"/api/health", nil)
	if err != nil {
		slog.Debug("Runner health probe could not be built", "error", err)
		return false
	}
	resp, err := m.probe.Do(req)
	if err != nil {
		slog.Debug("Runner health check failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

// Start performs an immediate check, then re-checks on the configured
// interval until ctx is cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		m.poll(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stop:
				return
			case <-ticker.C:
				m.poll(ctx)
			}
		}
	}()
}

// Stop cancels the poll loop. Safe to call more than once.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Snapshot returns the last observed state.
func (m *Monitor) Snapshot() model.HealthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Monitor) poll(ctx context.Context) {
	backend := m.CheckBackend(ctx)
	runner := m.CheckRunner(ctx)
	m.observe(model.HealthState{BackendOnline: backend, RunnerOnline: runner})
}

// observe records a new state and notifies on each transition.
func (m *Monitor) observe(next model.HealthState) {
	m.mu.Lock()
	prev := m.state
	m.state = next
	m.mu.Unlock()

	if prev.BackendOnline && !next.BackendOnline {
		m.notifier.Notify(notify.Notification{
			Level:   notify.LevelWarning,
			Message: "API server is not running. Please start the server to enable all features.",
		})
	}
	if !prev.BackendOnline && next.BackendOnline {
		m.notifier.Notify(notify.Notification{
			Level:   notify.LevelInfo,
			Message: "API server is back online.",
		})
	}
	if prev.RunnerOnline && !next.RunnerOnline {
		m.notifier.Notify(notify.Notification{
			Level:   notify.LevelWarning,
			Message: "Ollama service is not available. Local models will be unavailable until it is restarted.",
		})
	}
	if !prev.RunnerOnline && next.RunnerOnline {
		m.notifier.Notify(notify.Notification{
			Level:   notify.LevelInfo,
			Message: "Ollama service is back online.",
		})
	}
}
