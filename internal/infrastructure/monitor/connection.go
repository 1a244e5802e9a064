package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Probe checks one dependency.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// Monitor periodically runs probes against the configured backends and caches
// the result for the health endpoint.
type Monitor struct {
	probes   []Probe
	interval time.Duration

	mu     sync.RWMutex
	status Status

	stopCh chan struct{}
	logger *zap.Logger
}

func New(probes []Probe, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		probes:   probes,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	components := make(map[string]bool, len(m.probes))
	healthy := true

	for _, probe := range m.probes {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := probe.Check(ctx)
		cancel()

		ok := err == nil
		if !ok {
			healthy = false
			m.logger.Warn("health probe failed", zap.String("component", probe.Name), zap.Error(err))
		}
		components[probe.Name] = ok
	}

	m.mu.Lock()
	m.status = Status{
		Healthy:    healthy,
		Components: components,
		LastCheck:  time.Now(),
	}
	m.mu.Unlock()
}
