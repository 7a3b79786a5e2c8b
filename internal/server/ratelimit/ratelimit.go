// Package ratelimit provides a token-bucket rate limiter keyed by client IP.
package ratelimit

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// Config controls the limiter's global policy.
type Config struct {
	Enabled           bool
	RequestsPerMinute int
	Burst             int
}

// LoadConfig reads the limiter policy from the environment.
func LoadConfig() Config {
	cfg := Config{
		Enabled:           true,
		RequestsPerMinute: 300,
		Burst:             30,
	}
	if v := os.Getenv("HRDASH_RATE_LIMIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := os.Getenv("HRDASH_RATE_LIMIT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestsPerMinute = n
		}
	}
	if v := os.Getenv("HRDASH_RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Burst = n
		}
	}
	return cfg
}

// Info reports the limit state for response headers.
type Info struct {
	Limit     int
	Remaining int
	ResetTime time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// Limiter is a per-client token bucket with background eviction of idle
// clients.
type Limiter struct {
	cfg     Config
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	now     func() time.Time
}

// NewLimiter creates a limiter and starts its cleanup goroutine.
func NewLimiter(cfg Config) *Limiter {
	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	if cfg.Enabled {
		go l.janitor()
	}
	return l
}

// Allow reports whether the client may proceed and the current limit state.
func (l *Limiter) Allow(clientID string) (bool, Info) {
	if !l.cfg.Enabled {
		return true, Info{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.Burst), last: now}
		l.buckets[clientID] = b
	}

	refillPerSecond := float64(l.cfg.RequestsPerMinute) / 60.0
	b.tokens += now.Sub(b.last).Seconds() * refillPerSecond
	if b.tokens > float64(l.cfg.Burst) {
		b.tokens = float64(l.cfg.Burst)
	}
	b.last = now

	info := Info{
		Limit:     l.cfg.RequestsPerMinute,
		ResetTime: now.Add(time.Duration(1.0 / refillPerSecond * float64(time.Second))),
	}

	if b.tokens < 1 {
		info.Remaining = 0
		return false, info
	}
	b.tokens--
	info.Remaining = int(b.tokens)
	return true, info
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cfg.Enabled {
		close(l.stop)
	}
}

// janitor evicts buckets idle long enough to be fully refilled anyway.
func (l *Limiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := l.now().Add(-10 * time.Minute)
			l.mu.Lock()
			for id, b := range l.buckets {
				if b.last.Before(cutoff) {
					delete(l.buckets, id)
				}
			}
			l.mu.Unlock()
		}
	}
}
