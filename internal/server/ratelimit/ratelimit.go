// Package ratelimit throttles requests per client and route with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// idleTTL is how long an untouched bucket survives a sweep
const idleTTL = time.Hour

// bucket holds fractional tokens that refill continuously at rate per second.
// It is not safe for concurrent use; the Limiter serializes access.
type bucket struct {
	capacity float64
	rate     float64
	tokens   float64
	updated  time.Time
	lastSeen time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		updated:  now,
		lastSeen: now,
	}
}

func (b *bucket) refill(now time.Time) {
	if elapsed := now.Sub(b.updated).Seconds(); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	}
	b.updated = now
}

// take spends one token if one is available
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	b.lastSeen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// remaining reports the whole tokens left and when the bucket is full again
func (b *bucket) remaining(now time.Time) (int, time.Time) {
	b.refill(now)
	missing := b.capacity - b.tokens
	if missing <= 0 || b.rate <= 0 {
		return int(b.tokens), now
	}
	return int(b.tokens), now.Add(seconds(missing / b.rate))
}

// nextToken is the wait until one whole token is available
func (b *bucket) nextToken() time.Duration {
	if b.tokens >= 1 || b.rate <= 0 {
		return 0
	}
	return seconds((1 - b.tokens) / b.rate)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Info describes the outcome of one Allow call. Limit is zero when the
// request was not metered.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter keeps one bucket per client, route and method.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewLimiter starts a limiter. A nil config meters every client at 1000
// requests a minute.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		cfg:     *cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
	if l.cfg.DefaultWindow <= 0 {
		l.cfg.DefaultWindow = time.Minute
	}

	if l.cfg.Enabled && l.cfg.CleanupInterval > 0 {
		l.stop = make(chan struct{})
		l.done = make(chan struct{})
		go l.sweepLoop(l.cfg.CleanupInterval)
	}
	return l
}

// Allow meters one request. Routes matched by a pattern share a bucket per
// client, so a fresh session id does not buy a fresh allowance.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	switch {
	case !l.cfg.Enabled, l.cfg.Whitelist[clientID]:
		return true, Info{Allowed: true}
	case l.cfg.Blacklist[clientID]:
		return false, Info{}
	}

	rule := l.ruleFor(endpoint, method)
	if rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}
	key := clientID + ":" + rule.Path + ":" + method

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(rule.capacity(), float64(rule.Limit)/rule.Window.Seconds(), now)
		l.buckets[key] = b
	}

	allowed := b.take(now)
	left, reset := b.remaining(now)
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: left,
		ResetTime: reset,
	}
	if !allowed {
		info.RetryAfter = b.nextToken()
	}
	return allowed, info
}

// ruleFor resolves the endpoint rule, falling back to the default limit.
// The returned Path is the bucket's route key.
func (l *Limiter) ruleFor(endpoint, method string) EndpointConfig {
	if match := MatchEndpoint(endpoint, method, l.cfg.EndpointConfigs); match != nil {
		rule := *match
		if rule.Path == "" {
			rule.Path = endpoint
		}
		if rule.Window <= 0 {
			rule.Window = l.cfg.DefaultWindow
		}
		return rule
	}
	return EndpointConfig{
		Path:   endpoint,
		Method: method,
		Limit:  l.cfg.DefaultLimit,
		Window: l.cfg.DefaultWindow,
	}
}

func (l *Limiter) sweepLoop(every time.Duration) {
	defer close(l.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets nobody has touched within idleTTL
func (l *Limiter) sweep() {
	cutoff := l.now().Add(-idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the sweeper and waits for it to exit. Calling it again is a no-op.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.stop == nil {
			return
		}
		close(l.stop)
		<-l.done
	})
}
