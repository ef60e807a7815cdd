package queue

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgl-groceries/produce-api/internal/api/metrics"
	"github.com/kgl-groceries/produce-api/internal/core/ports"
)

const channelBuffer = 64

// HashPool runs password hashing on a fixed set of workers so bcrypt's CPU
// cost is bounded regardless of how many logins arrive at once. It wraps a
// ports.PasswordHasher and implements the same interface.
type HashPool struct {
	jobs    chan func()
	hasher  ports.PasswordHasher
	workers int
	log     zerolog.Logger
}

// NewHashPool creates a pool with numWorkers workers.
// If numWorkers <= 0, runtime.NumCPU() is used.
func NewHashPool(numWorkers int, hasher ports.PasswordHasher, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &HashPool{
		jobs:    make(chan func(), channelBuffer),
		hasher:  hasher,
		workers: numWorkers,
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// jobs still queued at that point are abandoned and their callers see ctx.Err.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	p.log.Debug().Int("workers", p.workers).Msg("hash pool started")
}

func (p *HashPool) Hash(ctx context.Context, secret string) (string, error) {
	var digest string
	err := p.submit(ctx, "hash", func(ctx context.Context) (err error) {
		digest, err = p.hasher.Hash(ctx, secret)
		return err
	})
	return digest, err
}

func (p *HashPool) Verify(ctx context.Context, secret, digest string) (bool, error) {
	var ok bool
	err := p.submit(ctx, "verify", func(ctx context.Context) (err error) {
		ok, err = p.hasher.Verify(ctx, secret, digest)
		return err
	})
	return ok, err
}

// submit enqueues fn and waits for it. The caller's ctx bounds both the wait
// for a free slot and the wait for the result.
func (p *HashPool) submit(ctx context.Context, op string, fn func(context.Context) error) error {
	done := make(chan error, 1)
	job := func() {
		if ctx.Err() != nil {
			done <- ctx.Err()
			return
		}
		start := time.Now()
		err := fn(ctx)
		metrics.PasswordHashDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		done <- err
	}

	select {
	case p.jobs <- job:
		metrics.HashQueueDepth.Set(float64(len(p.jobs)))
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			p.log.Debug().Int("worker_id", id).Msg("hash worker stopped")
			return
		case job := <-p.jobs:
			metrics.HashQueueDepth.Set(float64(len(p.jobs)))
			job()
		}
	}
}
