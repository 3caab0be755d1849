// Package ratelimit provides per-client rate limiting using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// idleBucketTTL is how long an untouched bucket is kept before cleanup.
const idleBucketTTL = time.Hour

// TokenBucket holds up to capacity tokens and refills at a steady rate.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func newTokenBucket(capacity int, refillRate float64, now time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
	}
}

// take refills the bucket up to now and consumes one token when available.
func (tb *TokenBucket) take(now time.Time) Info {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if elapsed := now.Sub(tb.lastRefill); elapsed > 0 {
		tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
		tb.lastRefill = now
	}

	info := Info{Allowed: tb.tokens >= 1.0, ResetTime: now}
	if info.Allowed {
		tb.tokens--
	} else if tb.refillRate > 0 {
		info.RetryAfter = tb.timeToFill(1 - tb.tokens)
	}
	info.Remaining = int(tb.tokens)
	if missing := float64(tb.capacity) - tb.tokens; missing > 0 && tb.refillRate > 0 {
		info.ResetTime = now.Add(tb.timeToFill(missing))
	}
	return info
}

func (tb *TokenBucket) timeToFill(tokens float64) time.Duration {
	return time.Duration(tokens / tb.refillRate * float64(time.Second))
}

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
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

type trackedBucket struct {
	bucket     *TokenBucket
	lastAccess time.Time
}

// Limiter manages token buckets per client, endpoint and method.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*trackedBucket
	config  *Config
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
// A nil config enables limiting with the package defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    DefaultLimit,
			DefaultWindow:   DefaultWindow,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*trackedBucket),
		config:  config,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow checks whether a request from clientID to the endpoint may proceed.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	info := l.bucket(clientID+":"+endpoint+":"+method, ec, now).take(now)
	info.Limit = ec.Limit
	return info.Allowed, info
}

func (l *Limiter) bucket(key string, ec *EndpointConfig, now time.Time) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tracked, ok := l.buckets[key]; ok {
		tracked.lastAccess = now
		return tracked.bucket
	}

	capacity := ec.Burst
	if capacity <= 0 {
		capacity = ec.Limit
	}
	window := ec.Window
	if window <= 0 {
		window = DefaultWindow
	}
	tracked := &trackedBucket{
		bucket:     newTokenBucket(capacity, float64(ec.Limit)/window.Seconds(), now),
		lastAccess: now,
	}
	l.buckets[key] = tracked
	return tracked.bucket
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets()
		case <-l.stop:
			return
		}
	}
}

// cleanupBuckets removes buckets that have been idle for longer than idleBucketTTL.
func (l *Limiter) cleanupBuckets() int {
	cutoff := l.now().Add(-idleBucketTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, tracked := range l.buckets {
		if tracked.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
