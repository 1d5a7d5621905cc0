package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds the instruments for the SDS pipeline.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Generation pipeline
	GenerationsTotal   CounterVec
	GenerationDuration HistogramVec
	SectionRequests    CounterVec
	ExportsTotal       CounterVec

	// Property gathering
	PropertyLookupsTotal   CounterVec
	PropertyLookupDuration HistogramVec
	PropertiesUnavailable  CounterVec

	// Infrastructure
	DBQueryDuration   HistogramVec
	CacheHitsTotal    CounterVec
	CacheMissesTotal  CounterVec
	EventsPublished   CounterVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

var (
	httpDurationBuckets       = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	generationDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}
	lookupDurationBuckets     = []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10}
	dbDurationBuckets         = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers every instrument on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total",
		"Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds",
		"HTTP request duration", httpDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests",
		"In-flight HTTP requests", "method")

	m.GenerationsTotal = collector.RegisterCounter("sds_generations_total",
		"SDS generations", "mode", "status")
	m.GenerationDuration = collector.RegisterHistogram("sds_generation_duration_seconds",
		"SDS generation duration", generationDurationBuckets, "mode")
	m.SectionRequests = collector.RegisterCounter("sds_section_requests_total",
		"Per-section view requests", "section")
	m.ExportsTotal = collector.RegisterCounter("sds_exports_total",
		"Document exports", "format", "status")

	m.PropertyLookupsTotal = collector.RegisterCounter("property_lookups_total",
		"Property source lookups", "source", "status")
	m.PropertyLookupDuration = collector.RegisterHistogram("property_lookup_duration_seconds",
		"Property source lookup duration", lookupDurationBuckets, "source")
	m.PropertiesUnavailable = collector.RegisterCounter("properties_unavailable_total",
		"Properties that resolved to unavailable", "key")

	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds",
		"Database query duration", dbDurationBuckets, "operation")
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.EventsPublished = collector.RegisterCounter("events_published_total",
		"Published events", "topic", "status")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status",
		"Component health (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total",
		"Total errors", "component", "code")

	return m
}

// RecordHTTPRequest observes one completed HTTP request.
func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGeneration observes one SDS generation attempt. Mode is
// "computed" or "fetched" depending on whether remote lookups ran.
func RecordGeneration(m *AppMetrics, fetch bool, err error, duration time.Duration) {
	mode := "computed"
	if fetch {
		mode = "fetched"
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.GenerationsTotal.WithLabelValues(mode, status).Inc()
	m.GenerationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordSectionRequest counts one per-section view request.
func RecordSectionRequest(m *AppMetrics, section int) {
	m.SectionRequests.WithLabelValues(strconv.Itoa(section)).Inc()
}

// RecordExport counts one export attempt per format.
func RecordExport(m *AppMetrics, format string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.ExportsTotal.WithLabelValues(format, status).Inc()
}

// RecordPropertyLookup observes one source lookup.
func RecordPropertyLookup(m *AppMetrics, source string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.PropertyLookupsTotal.WithLabelValues(source, status).Inc()
	m.PropertyLookupDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordCacheAccess counts a cache hit or miss.
func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

// RecordError counts one error by component and code.
func RecordError(m *AppMetrics, component, code string) {
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}

//Personal.AI order the ending
