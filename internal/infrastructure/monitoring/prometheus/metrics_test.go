package prometheus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	t.Helper()
	collector := newTestCollector(t)
	return NewAppMetrics(collector), collector
}

func TestNewAppMetrics_RegistersInstruments(t *testing.T) {
	metrics, collector := newTestAppMetrics(t)
	require.NotNil(t, metrics)

	metrics.GenerationsTotal.WithLabelValues("computed", "success").Inc()
	metrics.HealthCheckStatus.WithLabelValues("postgres").Set(1)

	output := scrape(t, collector)
	assert.Contains(t, output, `chemsds_test_sds_generations_total{mode="computed",status="success"} 1`)
	assert.Contains(t, output, `chemsds_test_health_check_status{component="postgres"} 1`)
}

func TestRecordHTTPRequest(t *testing.T) {
	metrics, collector := newTestAppMetrics(t)

	RecordHTTPRequest(metrics, "POST", "/api/v1/sds/generate", 200, 150*time.Millisecond)
	RecordHTTPRequest(metrics, "POST", "/api/v1/sds/generate", 400, 5*time.Millisecond)

	output := scrape(t, collector)
	assert.Contains(t, output, `chemsds_test_http_requests_total{method="POST",path="/api/v1/sds/generate",status_code="200"} 1`)
	assert.Contains(t, output, `chemsds_test_http_requests_total{method="POST",path="/api/v1/sds/generate",status_code="400"} 1`)
	assert.Contains(t, output, `chemsds_test_http_request_duration_seconds_count{method="POST",path="/api/v1/sds/generate"} 2`)
}

func TestRecordGeneration(t *testing.T) {
	metrics, collector := newTestAppMetrics(t)

	RecordGeneration(metrics, false, nil, 100*time.Millisecond)
	RecordGeneration(metrics, true, assert.AnError, 2*time.Second)

	output := scrape(t, collector)
	assert.Contains(t, output, `chemsds_test_sds_generations_total{mode="computed",status="success"} 1`)
	assert.Contains(t, output, `chemsds_test_sds_generations_total{mode="fetched",status="failure"} 1`)
}

func TestRecordSectionRequest(t *testing.T) {
	metrics, collector := newTestAppMetrics(t)

	RecordSectionRequest(metrics, 9)
	RecordSectionRequest(metrics, 9)

	output := scrape(t, collector)
	assert.Contains(t, output, `chemsds_test_sds_section_requests_total{section="9"} 2`)
}

func TestRecordExport(t *testing.T) {
	metrics, collector := newTestAppMetrics(t)

	RecordExport(metrics, "pdf", nil)
	RecordExport(metrics, "json", assert.AnError)

	output := scrape(t, collector)
	assert.Contains(t, output, `chemsds_test_sds_exports_total{format="pdf",status="success"} 1`)
	assert.Contains(t, output, `chemsds_test_sds_exports_total{format="json",status="failure"} 1`)
}

func TestRecordPropertyLookup(t *testing.T) {
	metrics, collector := newTestAppMetrics(t)

	RecordPropertyLookup(metrics, "pubchem", nil, 50*time.Millisecond)
	RecordPropertyLookup(metrics, "pubchem", assert.AnError, time.Second)

	output := scrape(t, collector)
	assert.Contains(t, output, `chemsds_test_property_lookups_total{source="pubchem",status="success"} 1`)
	assert.Contains(t, output, `chemsds_test_property_lookups_total{source="pubchem",status="failure"} 1`)
	assert.Contains(t, output, `chemsds_test_property_lookup_duration_seconds_count{source="pubchem"} 2`)
}

func TestRecordCacheAccess(t *testing.T) {
	metrics, collector := newTestAppMetrics(t)

	RecordCacheAccess(metrics, "document", true)
	RecordCacheAccess(metrics, "document", true)
	RecordCacheAccess(metrics, "document", false)

	output := scrape(t, collector)
	assert.Contains(t, output, `chemsds_test_cache_hits_total{cache="document"} 2`)
	assert.Contains(t, output, `chemsds_test_cache_misses_total{cache="document"} 1`)
}

func TestRecordError(t *testing.T) {
	metrics, collector := newTestAppMetrics(t)

	RecordError(metrics, "http", "COMMON_002")

	output := scrape(t, collector)
	assert.Contains(t, output, `chemsds_test_errors_total{code="COMMON_002",component="http"} 1`)
}

//Personal.AI order the ending
