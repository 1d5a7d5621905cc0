// Package middleware holds the HTTP middleware chain: CORS, request
// logging, rate limiting and metrics.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig controls cross-origin request handling.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the API. "*" allows
	// every origin but is incompatible with credentials.
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int `mapstructure:"max_age"`
}

// DefaultCORSConfig denies all cross-origin callers until origins are
// configured explicitly.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
			"Content-Disposition",
		},
		MaxAge: 86400,
	}
}

// CORSMiddleware applies the configured CORS policy.
type CORSMiddleware struct {
	config         CORSConfig
	originSet      map[string]bool
	allowAll       bool
	allowedMethods string
	allowedHeaders string
	exposedHeaders string
	maxAge         string
}

// NewCORSMiddleware precomputes the origin set and joined header values.
func NewCORSMiddleware(config CORSConfig) *CORSMiddleware {
	m := &CORSMiddleware{
		config:         config,
		originSet:      make(map[string]bool, len(config.AllowedOrigins)),
		allowedMethods: strings.Join(config.AllowedMethods, ", "),
		allowedHeaders: strings.Join(config.AllowedHeaders, ", "),
		exposedHeaders: strings.Join(config.ExposedHeaders, ", "),
		maxAge:         strconv.Itoa(config.MaxAge),
	}
	for _, origin := range config.AllowedOrigins {
		if origin == "*" {
			m.allowAll = true
			continue
		}
		m.originSet[strings.ToLower(origin)] = true
	}
	return m
}

func (m *CORSMiddleware) allowed(origin string) bool {
	return m.allowAll || m.originSet[strings.ToLower(origin)]
}

// Handler applies CORS headers; disallowed origins pass through without
// them so the browser blocks the response.
func (m *CORSMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" || !m.allowed(origin) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Add("Vary", "Origin")
		if m.allowAll && !m.config.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		if m.config.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", m.allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", m.allowedHeaders)
			if m.config.MaxAge > 0 {
				w.Header().Set("Access-Control-Max-Age", m.maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if m.exposedHeaders != "" {
			w.Header().Set("Access-Control-Expose-Headers", m.exposedHeaders)
		}
		next.ServeHTTP(w, r)
	})
}

//Personal.AI order the ending
