package testutil

import (
	"context"
	"sync"
)

// RecordingTransactor runs fn directly and records whether it committed.
// It does not undo store writes; tests assert the reported rollback.
type RecordingTransactor struct {
	mu        sync.Mutex
	Commits   int
	Rollbacks int
}

func (t *RecordingTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}
