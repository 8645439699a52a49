package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DefaultBatchSize bounds how many documents travel to the sink per call.
const DefaultBatchSize = 1000

// Source lazily produces every record to be reconciled, calling yield once
// per record. It must read the underlying store in a single pass without
// materializing the full set, and stop when yield returns an error.
type Source[T any] func(ctx context.Context, yield func(T) error) error

// Sink receives fixed-size batches of translated documents. Sinks must be
// idempotent: the engine is an at-least-once repair path and re-running it on
// a consistent state must be a no-op in effect.
type Sink[T any] func(ctx context.Context, batch []T) error

// Engine streams records from a source into a sink in bounded batches. It is
// the bulk-resynchronization primitive behind the search index rebuilds: the
// relational store is scanned once and the derived index overwritten
// wholesale.
type Engine[T any] struct {
	// BatchSize caps each sink call; zero falls back to DefaultBatchSize.
	BatchSize int
	Logger    *zap.Logger
}

// Run performs the full pass and returns the number of records pushed.
func (e Engine[T]) Run(ctx context.Context, name string, source Source[T], sink Sink[T]) (int, error) {
	batchSize := e.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	batch := make([]T, 0, batchSize)
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := sink(ctx, batch); err != nil {
			return fmt.Errorf("reconcile %s: sink failed after %d records: %w", name, total, err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	err := source(ctx, func(record T) error {
		batch = append(batch, record)
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return total, fmt.Errorf("reconcile %s: source failed: %w", name, err)
	}

	if err := flush(); err != nil {
		return total, err
	}

	if e.Logger != nil {
		e.Logger.Info("Reconciliation pass complete",
			zap.String("target", name),
			zap.Int("records", total),
		)
	}
	return total, nil
}
