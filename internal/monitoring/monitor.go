package monitoring

import (
	"sync"
	"time"
)

// Monitor keeps an in-process snapshot of service counters, served on the
// stats endpoint alongside the prometheus exposition.
type Monitor struct {
	metrics      map[string]interface{}
	queryCounts  map[string]int64
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:     make(map[string]interface{}),
		queryCounts: make(map[string]int64),
		startTime:   time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// RecordQuery counts one query against an endpoint with its outcome
// ("ok", "not_found", "invalid", "error")
func (m *Monitor) RecordQuery(endpoint, outcome string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.queryCounts[endpoint+"_"+outcome]++
	m.metrics[endpoint+"_last_query"] = time.Now().Format(time.RFC3339)
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns a copy of all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	metrics := make(map[string]interface{}, len(m.metrics)+len(m.queryCounts)+1)
	for k, v := range m.metrics {
		metrics[k] = v
	}
	for k, v := range m.queryCounts {
		metrics[k] = v
	}

	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
	m.queryCounts = make(map[string]int64)
}
