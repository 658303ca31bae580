package httpx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rate-limit buckets. Each logical host gets its own minimum
// inter-request spacing; waiters are served FIFO.
const (
	BucketEDGAR          = "edgar"
	BucketEDINET         = "edinet"
	BucketEDINETDownload = "edinet-download"
)

// Limiter enforces per-bucket minimum spacing between requests.
// A caller arriving before the next permitted instant is suspended
// until it; the spacing is non-jittered.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*rate.Limiter
}

// NewLimiter creates an empty limiter; buckets are registered with
// AddBucket before use.
func NewLimiter() *Limiter {
	return &Limiter{buckets: make(map[string]*rate.Limiter)}
}

// AddBucket registers a bucket with the given minimum spacing.
// A burst of 1 makes the limiter a pure spacer.
func (l *Limiter) AddBucket(name string, spacing time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buckets[name] = rate.NewLimiter(rate.Every(spacing), 1)
}

// Wait suspends the caller until the bucket permits the next request.
// An unregistered bucket is a programming error and fails loudly.
func (l *Limiter) Wait(ctx context.Context, name string) error {
	l.mu.RLock()
	b, ok := l.buckets[name]
	l.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown rate-limit bucket %q", name)
	}
	return b.Wait(ctx)
}
