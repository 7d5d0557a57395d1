package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedStore caps the byte throughput of Put and of blob reads.
// Open, Delete and List are passed through unthrottled.
type RateLimitedStore struct {
	inner   Store
	limiter *rate.Limiter
}

// NewRateLimitedStore wraps inner with a limit of bytesPerSec.
// The burst equals one second of throughput. A non-positive bytesPerSec
// disables throttling.
func NewRateLimitedStore(inner Store, bytesPerSec int) *RateLimitedStore {
	if bytesPerSec <= 0 {
		return &RateLimitedStore{inner: inner, limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &RateLimitedStore{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec),
	}
}

// wait blocks until n bytes may be transferred. Requests larger than the
// burst are split into burst-sized waits.
func (s *RateLimitedStore) wait(ctx context.Context, n int) error {
	burst := s.limiter.Burst()
	if s.limiter.Limit() == rate.Inf || burst <= 0 {
		return ctx.Err()
	}
	for n > 0 {
		chunk := min(n, burst)
		if err := s.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Open opens a blob whose reads are throttled.
func (s *RateLimitedStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &rateLimitedBlob{Blob: b, store: s}, nil
}

// Put waits for len(data) bytes of budget, then writes.
func (s *RateLimitedStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.wait(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

// Delete removes a blob.
func (s *RateLimitedStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List returns all blobs matching the prefix.
func (s *RateLimitedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type rateLimitedBlob struct {
	Blob
	store *RateLimitedStore
}

func (b *rateLimitedBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := b.store.wait(ctx, len(p)); err != nil {
		return 0, err
	}
	return b.Blob.ReadAt(ctx, p, off)
}
