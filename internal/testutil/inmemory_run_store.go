package testutil

import (
	"context"
	"sort"
	"sync"

	"revenda-service/internal/domain/settlement"
	xerrors "revenda-service/internal/pkg/errors"
)

type InMemoryRunStore struct {
	mu     sync.RWMutex
	runs   map[string]*settlement.Run
	faults *Faults
}

func NewInMemoryRunStore(faults *Faults) *InMemoryRunStore {
	return &InMemoryRunStore{
		runs:   make(map[string]*settlement.Run),
		faults: faults,
	}
}

func (s *InMemoryRunStore) Save(ctx context.Context, run *settlement.Run) error {
	if err := s.faults.check(OpSaveRun); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *run
	s.runs[run.ID] = &clone
	return nil
}

func (s *InMemoryRunStore) FindByID(ctx context.Context, id string) (*settlement.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	clone := *run
	return &clone, nil
}

func (s *InMemoryRunStore) ListByStatus(ctx context.Context, status settlement.RunStatus, limit int) ([]settlement.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []settlement.Run
	for _, run := range s.runs {
		if run.Status == status {
			result = append(result, *run)
		}
	}
	// ULIDs sort by creation time.
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// All returns every journaled run in creation order.
func (s *InMemoryRunStore) All() []settlement.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]settlement.Run, 0, len(s.runs))
	for _, run := range s.runs {
		result = append(result, *run)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
