package service

import (
	"sync"
	"time"
)

// Metrics accumulates query counters shared by the advisory and system
// services. The running average avoids storing per-query samples.
type Metrics struct {
	mu              sync.Mutex
	totalQueries    int64
	watsonxQueries  int64
	fallbackQueries int64
	avgResponseMs   float64
	intents         map[string]int64
	started         time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		intents: make(map[string]int64),
		started: time.Now(),
	}
}

func (m *Metrics) RecordQuery(intent string, watsonxUsed bool, responseMs float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalQueries++
	if watsonxUsed {
		m.watsonxQueries++
	} else {
		m.fallbackQueries++
	}
	m.intents[intent]++
	m.avgResponseMs += (responseMs - m.avgResponseMs) / float64(m.totalQueries)
}

type MetricsSnapshot struct {
	TotalQueries       int64
	WatsonxQueries     int64
	FallbackQueries    int64
	AvgResponseTimeMs  float64
	IntentDistribution map[string]int64
	UptimeSeconds      float64
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	intents := make(map[string]int64, len(m.intents))
	for k, v := range m.intents {
		intents[k] = v
	}
	return MetricsSnapshot{
		TotalQueries:       m.totalQueries,
		WatsonxQueries:     m.watsonxQueries,
		FallbackQueries:    m.fallbackQueries,
		AvgResponseTimeMs:  m.avgResponseMs,
		IntentDistribution: intents,
		UptimeSeconds:      time.Since(m.started).Seconds(),
	}
}
