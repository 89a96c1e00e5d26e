// Package metrics provides metrics collection and reporting functionality.
package metrics

import (
	"sync"
	"time"
)

// Metrics holds pipeline processing counters.
type Metrics struct {
	// FetchCount is the number of storefront fetches attempted.
	FetchCount int64
	// FetchErrors is the number of fetches that failed after retries.
	FetchErrors int64
	// CacheHits is the number of profile cache hits.
	CacheHits int64
	// CacheMisses is the number of profile cache misses.
	CacheMisses int64
	// AnalysisCount is the number of analyzer runs served.
	AnalysisCount int64
	// LastFetchTime is the time of the last successful fetch.
	LastFetchTime time.Time
	// StartTime is when metrics collection began.
	StartTime time.Time

	mu sync.Mutex
}

// New creates a Metrics instance with the start time set.
func New() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// RecordFetch updates fetch counters based on outcome.
func (m *Metrics) RecordFetch(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCount++
	if success {
		m.LastFetchTime = time.Now()
	} else {
		m.FetchErrors++
	}
}

// RecordCacheHit increments the cache hit counter.
func (m *Metrics) RecordCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

// RecordCacheMiss increments the cache miss counter.
func (m *Metrics) RecordCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

// RecordAnalysis increments the analysis counter.
func (m *Metrics) RecordAnalysis() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalysisCount++
}

// Snapshot is a point-in-time copy of the counters for reporting.
type Snapshot struct {
	FetchCount    int64     `json:"fetch_count"`
	FetchErrors   int64     `json:"fetch_errors"`
	CacheHits     int64     `json:"cache_hits"`
	CacheMisses   int64     `json:"cache_misses"`
	AnalysisCount int64     `json:"analysis_count"`
	LastFetchTime time.Time `json:"last_fetch_time"`
	UptimeSeconds float64   `json:"uptime_seconds"`
}

// GetSnapshot returns a consistent copy of the current counters.
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		FetchCount:    m.FetchCount,
		FetchErrors:   m.FetchErrors,
		CacheHits:     m.CacheHits,
		CacheMisses:   m.CacheMisses,
		AnalysisCount: m.AnalysisCount,
		LastFetchTime: m.LastFetchTime,
		UptimeSeconds: time.Since(m.StartTime).Seconds(),
	}
}
