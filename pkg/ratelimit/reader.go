// Package ratelimit provides bandwidth-limited readers for comparing
// directories that live on network shares.
package ratelimit

import (
	"io"
	"sync"
	"time"
)

// minBucketSize keeps small limits from degenerating into byte-sized reads
const minBucketSize = 64 * 1024

// Limiter controls the aggregate read rate across multiple readers
// using a token bucket
type Limiter struct {
	bytesPerSecond int64
	bucketSize     int64

	mu         sync.Mutex
	tokens     int64
	lastUpdate time.Time
}

// NewLimiter creates a rate limiter allowing bytesPerSecond with bursts
// up to one second of data. A non-positive limit returns nil, meaning
// no limiting.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}
	bucketSize := bytesPerSecond
	if bucketSize < minBucketSize {
		bucketSize = minBucketSize
	}
	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		bucketSize:     bucketSize,
		tokens:         bucketSize,
		lastUpdate:     time.Now(),
	}
}

// Reader wraps an io.Reader with rate limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
}

// NewReader wraps r so that reads respect the limiter. A nil limiter
// returns r unchanged.
func NewReader(r io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return r
	}
	return &Reader{reader: r, limiter: limiter}
}

// Read implements io.Reader, blocking until the bucket holds enough
// tokens for the request
func (r *Reader) Read(p []byte) (int, error) {
	toRead := int64(len(p))
	if toRead > r.limiter.bucketSize {
		toRead = r.limiter.bucketSize
	}

	r.limiter.wait(toRead)

	n, err := r.reader.Read(p[:toRead])
	if n > 0 {
		r.limiter.consume(int64(n))
	}
	return n, err
}

// wait blocks until at least needed tokens are available
func (l *Limiter) wait(needed int64) {
	for {
		l.mu.Lock()
		l.refill()
		if l.tokens >= needed {
			l.mu.Unlock()
			return
		}
		deficit := needed - l.tokens
		l.mu.Unlock()

		sleep := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
		if sleep < time.Millisecond {
			sleep = time.Millisecond
		}
		time.Sleep(sleep)
	}
}

// refill adds tokens for the elapsed time; must be called with the lock held
func (l *Limiter) refill() {
	now := time.Now()
	added := int64(now.Sub(l.lastUpdate).Seconds() * float64(l.bytesPerSecond))
	if added > 0 {
		l.tokens += added
		if l.tokens > l.bucketSize {
			l.tokens = l.bucketSize
		}
		l.lastUpdate = now
	}
}

// consume removes tokens after a completed read
func (l *Limiter) consume(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens -= n
	if l.tokens < 0 {
		l.tokens = 0
	}
}
