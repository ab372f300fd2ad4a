// Package ratelimiter implements the keyed token-bucket limiter behind the
// per-IP, per-email and global HTTP rate limits.
package ratelimiter

import (
	"sync"
	"time"
)

// bucket is the token state of one identity. Tokens refill continuously at
// the limiter's rate, up to its capacity.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// Limiter hands out tokens per identity (an IP, an email address, or the
// fixed "global" key). Identities idle for longer than the expiration window
// are dropped during sweeps, so one-off callers do not accumulate forever.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rate       float64 // tokens per second
	capacity   float64
	expiration time.Duration
	lastSweep  time.Time
}

func New(rate float64, capacity float64, expiration time.Duration) *Limiter {
	return &Limiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
		lastSweep:  time.Now(),
	}
}

// Allow reports whether identity may proceed, consuming one token if so.
func (l *Limiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[identity] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.lastSeen = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// sweep evicts idle buckets. It runs at most once per expiration window, so
// the cost stays amortized across requests instead of needing a timer per
// identity.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.expiration {
		return
	}
	l.lastSweep = now

	for identity, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.expiration {
			delete(l.buckets, identity)
		}
	}
}

// Len reports the number of tracked identities, stale entries included until
// the next sweep.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Common presets

func OnceInSecond() *Limiter { return New(1, 1, 1*time.Hour) }

func OnceInMinute() *Limiter { return New(1.0/60.0, 1, 1*time.Hour) }

func Rps10() *Limiter { return New(10, 10, 1*time.Hour) }

func Rps100() *Limiter { return New(100, 100, 1*time.Hour) }
