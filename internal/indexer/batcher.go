package indexer

import (
	"context"

	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/store"
)

// batcher drives the conditional-transaction strategy: below
// config.TransactionThreshold successful upserts, every write runs outside
// a transaction; at the threshold a transaction opens; once inside a
// transaction, reaching batchSize rotates it (commit, then immediately
// reopen) and resets the counter to the threshold, not zero — resetting to
// zero would re-trigger the threshold-open on the very next upsert, since
// the transaction never actually closed.
type batcher struct {
	s             *store.Store
	batchSize     int
	threshold     int
	batchCount    int
	commitsIssued int
}

func newBatcher(s *store.Store, batchSize int) *batcher {
	return &batcher{s: s, batchSize: batchSize, threshold: config.TransactionThreshold}
}

// recordUpsert is called after every successful upsert and opens or rotates
// the transaction as needed.
func (b *batcher) recordUpsert(ctx context.Context) error {
	b.batchCount++
	if b.batchCount == b.threshold && !b.s.InTransaction() {
		if err := b.s.BeginImmediate(ctx); err != nil {
			return err
		}
	}
	if b.s.InTransaction() && b.batchCount >= b.batchSize {
		if err := b.s.Commit(ctx); err != nil {
			return err
		}
		b.commitsIssued++
		if err := b.s.BeginImmediate(ctx); err != nil {
			return err
		}
		b.batchCount = b.threshold
	}
	return nil
}

// finalize commits any still-open transaction. Called once at the end of a
// run, regardless of how many rotations happened mid-run.
func (b *batcher) finalize(ctx context.Context) error {
	if b.s.InTransaction() {
		if err := b.s.Commit(ctx); err != nil {
			return err
		}
		b.commitsIssued++
	}
	return nil
}
