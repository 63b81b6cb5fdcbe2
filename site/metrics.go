package site

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "wecelebrate"

const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInactive = "inactive"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// Metrics counts cache traffic and backend fetches. A nil *Metrics records nothing.
type Metrics struct {
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
}

// NewMetrics creates the site collectors and registers them with reg when it is not nil
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "site",
			Name:      "cache_hits_total",
			Help:      "Site configuration lookups served from cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "site",
			Name:      "cache_misses_total",
			Help:      "Site configuration lookups that required a fetch.",
		}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "site",
			Name:      "fetch_total",
			Help:      "Site configuration fetches by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "site",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of site configuration fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.cacheHits, m.cacheMisses, m.fetches, m.fetchDuration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *Metrics) cacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

func (m *Metrics) observeFetch(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(fetchOutcome(err)).Inc()
	m.fetchDuration.Observe(elapsed.Seconds())
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrSiteNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrSiteInactive):
		return outcomeInactive
	case errors.Is(err, ErrInvalidSiteData):
		return outcomeInvalid
	default:
		return outcomeError
	}
}
