package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planmytrip",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "planmytrip",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// External geo services
	GeocodeLookups = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planmytrip",
		Subsystem: "geo",
		Name:      "geocode_lookups_total",
		Help:      "Total geocoding lookups issued",
	})

	GeocodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planmytrip",
		Subsystem: "geo",
		Name:      "geocode_errors_total",
		Help:      "Total geocoding upstream failures",
	})

	DiscoveryLookups = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planmytrip",
		Subsystem: "geo",
		Name:      "discovery_lookups_total",
		Help:      "Total POI discovery queries issued",
	})

	DiscoveryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planmytrip",
		Subsystem: "geo",
		Name:      "discovery_errors_total",
		Help:      "Total POI discovery upstream failures",
	})

	// Trip operations
	TripsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planmytrip",
		Subsystem: "trips",
		Name:      "created_total",
		Help:      "Total trips created",
	})

	RoutesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planmytrip",
		Subsystem: "trips",
		Name:      "routes_saved_total",
		Help:      "Total route save operations",
	})

	InvalidStopNames = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planmytrip",
		Subsystem: "trips",
		Name:      "invalid_stop_names_total",
		Help:      "Total candidate stop names that failed geocoding",
	})

	// Cache
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planmytrip",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planmytrip",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	// Database pool
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "planmytrip",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "planmytrip",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "planmytrip",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// UpdateDBPoolMetrics updates pool gauges from pgx pool stats.
func UpdateDBPoolMetrics(stat interface{}) {
	type poolStat interface {
		AcquiredConns() int32
		IdleConns() int32
		TotalConns() int32
	}

	if s, ok := stat.(poolStat); ok {
		DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
		DBPoolConnsIdle.Set(float64(s.IdleConns()))
		DBPoolConnsOpen.Set(float64(s.TotalConns()))
	}
}
