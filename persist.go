package cosmeans

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/cosmeans/blobstore"
	"github.com/hupe1980/cosmeans/internal/kmeans"
	"github.com/hupe1980/cosmeans/snapshot"
)

// SaveModel writes m to store under name using the default Clusterer.
func SaveModel(ctx context.Context, store blobstore.Store, name string, m *Model, opts ...snapshot.Option) error {
	return New().SaveModel(ctx, store, name, m, opts...)
}

// LoadModel reads a model written by SaveModel using the default Clusterer.
func LoadModel(ctx context.Context, store blobstore.Store, name string) (*Model, error) {
	return New().LoadModel(ctx, store, name)
}

// SaveModel encodes m as a snapshot and writes it to store under name.
func (c *Clusterer) SaveModel(ctx context.Context, store blobstore.Store, name string, m *Model, opts ...snapshot.Option) error {
	start := time.Now()
	err := c.saveModel(ctx, store, name, m, opts)
	c.opts.metricsCollector.RecordModelIO("save", time.Since(start), err)
	c.opts.logger.LogModelIO(ctx, "save", name, err)
	return err
}

func (c *Clusterer) saveModel(ctx context.Context, store blobstore.Store, name string, m *Model, opts []snapshot.Option) error {
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrInvalidInput)
	}
	data, err := snapshot.Encode(&snapshot.Record{
		Centroids:  m.centroids,
		Status:     statusName(m.status),
		Iterations: m.iterations,
		Cohesion:   m.cohesion,
		Normalized: m.normalized,
		CreatedAt:  time.Now().UTC(),
	}, opts...)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// LoadModel reads and validates the snapshot stored under name.
// A missing blob yields an error matching blobstore.ErrNotFound.
func (c *Clusterer) LoadModel(ctx context.Context, store blobstore.Store, name string) (*Model, error) {
	start := time.Now()
	m, err := c.loadModel(ctx, store, name)
	c.opts.metricsCollector.RecordModelIO("load", time.Since(start), err)
	c.opts.logger.LogModelIO(ctx, "load", name, err)
	return m, err
}

func (c *Clusterer) loadModel(ctx context.Context, store blobstore.Store, name string) (*Model, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	rec, err := snapshot.Decode(data)
	if err != nil {
		return nil, err
	}

	m, err := NewModel(rec.Centroids)
	if err != nil {
		return nil, err
	}
	m.status = parseStatus(rec.Status)
	m.iterations = rec.Iterations
	m.cohesion = rec.Cohesion
	m.normalized = rec.Normalized
	return m, nil
}

func statusName(s Status) string {
	if s == 0 {
		return ""
	}
	return s.String()
}

func parseStatus(s string) Status {
	switch s {
	case kmeans.StatusConverged.String():
		return StatusConverged
	case kmeans.StatusExhausted.String():
		return StatusExhausted
	default:
		return 0
	}
}
