package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// APIRequests counts backend calls by resource and outcome (ok, error,
	// unauthorized).
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "posadmin_api_requests_total",
		Help: "Backend API requests issued by the client.",
	}, []string{"resource", "outcome"})

	// SessionTeardowns counts full session teardowns triggered by a 401.
	SessionTeardowns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "posadmin_session_teardowns_total",
		Help: "Forced session teardowns after an unauthorized response.",
	})

	// CacheHits / CacheMisses track the read-through caches (dashboard,
	// permissions).
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "posadmin_cache_hits_total",
		Help: "Cache reads served without a network call.",
	}, []string{"cache"})

	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "posadmin_cache_misses_total",
		Help: "Cache reads that required a network call.",
	}, []string{"cache"})

	// StaleFetches counts list responses discarded because a newer fetch for
	// the same resource+filter key was issued while they were in flight.
	StaleFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "posadmin_stale_fetches_discarded_total",
		Help: "List responses discarded by the fetch sequence guard.",
	}, []string{"resource"})
)

func init() {
	prometheus.MustRegister(APIRequests, SessionTeardowns, CacheHits, CacheMisses, StaleFetches)
}
