package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig controls the per-client limiter.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained allowance per client IP.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	// Burst is the instantaneous allowance per client IP.
	Burst int `mapstructure:"burst"`

	// IdleTTL evicts limiters for clients idle longer than this.
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
}

// DefaultRateLimitConfig allows 10 req/s with a burst of 20 per client.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		Burst:             20,
		IdleTTL:           10 * time.Minute,
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles requests per client IP with a token
// bucket, answering 429 with a Retry-After hint when exhausted.
type RateLimitMiddleware struct {
	config  RateLimitConfig
	mu      sync.Mutex
	clients map[string]*clientLimiter
	now     func() time.Time
}

func NewRateLimitMiddleware(config RateLimitConfig) *RateLimitMiddleware {
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = DefaultRateLimitConfig().RequestsPerSecond
	}
	if config.Burst <= 0 {
		config.Burst = DefaultRateLimitConfig().Burst
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = DefaultRateLimitConfig().IdleTTL
	}
	return &RateLimitMiddleware{
		config:  config,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

func (m *RateLimitMiddleware) limiterFor(clientIP string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if client, ok := m.clients[clientIP]; ok {
		client.lastSeen = now
		return client.limiter
	}

	// Evict idle clients on insertion so the map stays bounded.
	for ip, client := range m.clients {
		if now.Sub(client.lastSeen) > m.config.IdleTTL {
			delete(m.clients, ip)
		}
	}

	limiter := rate.NewLimiter(rate.Limit(m.config.RequestsPerSecond), m.config.Burst)
	m.clients[clientIP] = &clientLimiter{limiter: limiter, lastSeen: now}
	return limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := m.limiterFor(clientIP(r))
		if !limiter.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(1))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    "COMMON_006",
				"message": "rate limit exceeded",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

//Personal.AI order the ending
