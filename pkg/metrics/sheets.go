package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SheetFetchMetrics records the outcome of spreadsheet reads.
type SheetFetchMetrics struct {
	duration  *prometheus.HistogramVec
	fetches   *prometheus.CounterVec
	cacheHits *prometheus.CounterVec
}

// NewSheetFetchMetrics registers the sheet fetch metrics on the provided registerer.
func NewSheetFetchMetrics(reg prometheus.Registerer) *SheetFetchMetrics {
	if reg == nil {
		return &SheetFetchMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sheet_fetch_duration_seconds",
		Help:    "Duration of spreadsheet range reads in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"table"})
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_fetches_total",
		Help: "Spreadsheet range reads by outcome.",
	}, []string{"table", "outcome"})
	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_cache_hits_total",
		Help: "Spreadsheet reads served from the revalidation cache.",
	}, []string{"table"})
	reg.MustRegister(duration, fetches, cacheHits)
	return &SheetFetchMetrics{
		duration:  duration,
		fetches:   fetches,
		cacheHits: cacheHits,
	}
}

// ObserveDuration records the duration for the named table.
func (m *SheetFetchMetrics) ObserveDuration(table string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(table)).Observe(duration.Seconds())
}

// IncFetch counts one upstream read with its outcome ("success", "error",
// "bad_range").
func (m *SheetFetchMetrics) IncFetch(table, outcome string) {
	if m == nil || m.fetches == nil {
		return
	}
	m.fetches.WithLabelValues(normalizeLabel(table), normalizeLabel(outcome)).Inc()
}

// IncCacheHit counts one read answered from cache.
func (m *SheetFetchMetrics) IncCacheHit(table string) {
	if m == nil || m.cacheHits == nil {
		return
	}
	m.cacheHits.WithLabelValues(normalizeLabel(table)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
