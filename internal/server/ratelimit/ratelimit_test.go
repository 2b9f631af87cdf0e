package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter driven by a fake clock.
func newTestLimiter(cfg Config) (*Limiter, *time.Time) {
	cfg.Enabled = true
	l := NewLimiter(cfg)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(Config{PerMinute: 60, Burst: 3})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		info := l.Allow("1.2.3.4")
		require.True(t, info.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	info := l.Allow("1.2.3.4")
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
}

func TestLimiter_Refill(t *testing.T) {
	l, now := newTestLimiter(Config{PerMinute: 60, Burst: 1})
	defer l.Stop()

	require.True(t, l.Allow("c").Allowed)
	require.False(t, l.Allow("c").Allowed)

	*now = now.Add(time.Second)
	assert.True(t, l.Allow("c").Allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Config{PerMinute: 60, Burst: 1})
	defer l.Stop()

	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
}

func TestLimiter_DisabledAndWhitelist(t *testing.T) {
	disabled := NewLimiter(Config{Enabled: false, PerMinute: 1, Burst: 1})
	for i := 0; i < 5; i++ {
		assert.True(t, disabled.Allow("a").Allowed)
	}

	l, _ := newTestLimiter(Config{PerMinute: 1, Burst: 1, Whitelist: map[string]bool{"127.0.0.1": true}})
	defer l.Stop()
	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("127.0.0.1").Allowed)
	}
}

func TestLimiter_BurstDefaultsToPerMinute(t *testing.T) {
	l, _ := newTestLimiter(Config{PerMinute: 5})
	defer l.Stop()

	assert.Equal(t, 5, l.Allow("a").Limit)
}

func TestLimiter_CleanupIdleClients(t *testing.T) {
	l, now := newTestLimiter(Config{PerMinute: 60, Burst: 1, IdleTimeout: time.Minute})
	defer l.Stop()

	l.Allow("old")
	*now = now.Add(2 * time.Minute)
	l.Allow("fresh")

	l.cleanupClients()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.clients, "old")
	assert.Contains(t, l.clients, "fresh")
}

func TestLimiter_ConcurrentAccess(t *testing.T) {
	l := NewLimiter(Config{Enabled: true, PerMinute: 6000, Burst: 100, CleanupInterval: time.Millisecond})
	defer l.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Allow("shared")
		}()
	}
	wg.Wait()

	l.Stop()
}
