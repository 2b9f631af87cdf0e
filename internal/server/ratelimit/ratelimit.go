// Package ratelimit limits requests per client with token buckets.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	PerMinute       int
	Burst           int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
}

// clientEntry is the bucket of one client plus its last use.
type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages one token bucket per client ID.
type Limiter struct {
	mu          sync.Mutex
	clients     map[string]*clientEntry
	config      Config
	cleanupStop chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewLimiter creates a new rate limiter. A zero Burst defaults to
// PerMinute; a zero IdleTimeout to one hour.
func NewLimiter(config Config) *Limiter {
	if config.Burst <= 0 {
		config.Burst = config.PerMinute
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = time.Hour
	}

	l := &Limiter{
		clients: make(map[string]*clientEntry),
		config:  config,
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}

	return l
}

// Allow consumes a token for clientID and reports the resulting state.
func (l *Limiter) Allow(clientID string) Info {
	if !l.config.Enabled || l.config.PerMinute <= 0 || l.config.Whitelist[clientID] {
		return Info{Allowed: true}
	}

	now := l.now()

	l.mu.Lock()
	entry, ok := l.clients[clientID]
	if !ok {
		entry = &clientEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(l.config.PerMinute)/60.0), l.config.Burst),
		}
		l.clients[clientID] = entry
	}
	entry.lastSeen = now
	l.mu.Unlock()

	allowed := entry.limiter.AllowN(now, 1)
	tokens := entry.limiter.TokensAt(now)

	info := Info{
		Allowed:   allowed,
		Limit:     l.config.Burst,
		Remaining: max(0, int(math.Floor(tokens))),
		ResetTime: now.Add(l.untilTokens(float64(l.config.Burst)-tokens, entry.limiter)),
	}
	if !allowed {
		info.RetryAfter = l.untilTokens(1-tokens, entry.limiter)
	}
	return info
}

// untilTokens is how long the bucket needs to refill n tokens.
func (l *Limiter) untilTokens(n float64, limiter *rate.Limiter) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n / float64(limiter.Limit()) * float64(time.Second))
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupClients()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupClients drops buckets idle for longer than IdleTimeout.
func (l *Limiter) cleanupClients() {
	cutoff := l.now().Add(-l.config.IdleTimeout)

	l.mu.Lock()
	defer l.mu.Unlock()
	for id, entry := range l.clients {
		if entry.lastSeen.Before(cutoff) {
			delete(l.clients, id)
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
