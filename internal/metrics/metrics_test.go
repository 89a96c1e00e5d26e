package metrics_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/storescope/internal/metrics"
)

func TestNew(t *testing.T) {
	m := metrics.New()
	assert.NotNil(t, m)
	assert.False(t, m.StartTime.IsZero())
}

func TestRecordFetch(t *testing.T) {
	m := metrics.New()

	m.RecordFetch(true)
	snap := m.GetSnapshot()
	assert.Equal(t, int64(1), snap.FetchCount)
	assert.Equal(t, int64(0), snap.FetchErrors)
	assert.False(t, snap.LastFetchTime.IsZero())

	m.RecordFetch(false)
	snap = m.GetSnapshot()
	assert.Equal(t, int64(2), snap.FetchCount)
	assert.Equal(t, int64(1), snap.FetchErrors)
}

func TestCacheCounters(t *testing.T) {
	m := metrics.New()

	m.RecordCacheMiss()
	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordAnalysis()

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.CacheHits)
	assert.Equal(t, int64(1), snap.CacheMisses)
	assert.Equal(t, int64(1), snap.AnalysisCount)
}

func TestConcurrentRecording(t *testing.T) {
	m := metrics.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordFetch(true)
			m.RecordCacheHit()
		}()
	}
	wg.Wait()

	snap := m.GetSnapshot()
	assert.Equal(t, int64(50), snap.FetchCount)
	assert.Equal(t, int64(50), snap.CacheHits)
}
