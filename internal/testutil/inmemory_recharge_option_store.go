package testutil

import (
	"context"
	"sync"

	"revenda-service/internal/domain/recharge"
	xerrors "revenda-service/internal/pkg/errors"
)

type InMemoryRechargeOptionStore struct {
	mu      sync.RWMutex
	options map[int64]*recharge.Option
	faults  *Faults
}

func NewInMemoryRechargeOptionStore(faults *Faults) *InMemoryRechargeOptionStore {
	return &InMemoryRechargeOptionStore{
		options: make(map[int64]*recharge.Option),
		faults:  faults,
	}
}

func (s *InMemoryRechargeOptionStore) Add(opt recharge.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[opt.ID] = &opt
}

func (s *InMemoryRechargeOptionStore) FindByID(ctx context.Context, id int64) (*recharge.Option, error) {
	if err := s.faults.check(OpFindOption); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	opt, ok := s.options[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	clone := *opt
	return &clone, nil
}
