package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemSDS/internal/interfaces/http/handlers"
	"github.com/turtacn/ChemSDS/internal/interfaces/http/middleware"
)

func newTestRouterConfig(t *testing.T) RouterConfig {
	t.Helper()
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: "chemsds",
	}, logging.NewNopLogger())
	require.NoError(t, err)

	return RouterConfig{
		HealthHandler:     handlers.NewHealthHandler("test"),
		LoggingMiddleware: middleware.NewLoggingMiddleware(logging.NewNopLogger(), middleware.DefaultLoggingConfig()),
		CORSMiddleware:    middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()),
		Logger:            logging.NewNopLogger(),
		MetricsCollector:  collector,
	}
}

func TestNewRouter_HealthEndpoints(t *testing.T) {
	router := NewRouter(newTestRouterConfig(t))

	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	router := NewRouter(newTestRouterConfig(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	router := NewRouter(newTestRouterConfig(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewRouter_NilHandlersDoNotPanic(t *testing.T) {
	router := NewRouter(RouterConfig{Logger: logging.NewNopLogger()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_HandlerExposed(t *testing.T) {
	router := NewRouter(newTestRouterConfig(t))
	server := NewServer(ServerConfig{Port: 0}, router, logging.NewNopLogger())
	assert.NotNil(t, server.Handler())
}

//Personal.AI order the ending
