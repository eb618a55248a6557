package testutil

import (
	"context"
	"sync"
	"time"

	"revenda-service/internal/domain/reseller"
)

type InMemoryResellerStore struct {
	mu        sync.RWMutex
	recharges []reseller.Recharge
	balances  map[int64]int64
	faults    *Faults
}

func NewInMemoryResellerStore(faults *Faults) *InMemoryResellerStore {
	return &InMemoryResellerStore{
		balances: make(map[int64]int64),
		faults:   faults,
	}
}

func (s *InMemoryResellerStore) AppendRecharge(ctx context.Context, recharge *reseller.Recharge) error {
	if err := s.faults.check(OpAppendRecharge); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recharge.ID = int64(len(s.recharges) + 1)
	recharge.CreatedAt = time.Now()
	s.recharges = append(s.recharges, *recharge)
	return nil
}

func (s *InMemoryResellerStore) IncrementBalance(ctx context.Context, resellerID int64, quantity int64) (*reseller.Balance, error) {
	if err := s.faults.check(OpIncrementBalance); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[resellerID] += quantity
	return &reseller.Balance{
		ResellerID:    resellerID,
		CreditBalance: s.balances[resellerID],
		UpdatedAt:     time.Now(),
	}, nil
}

func (s *InMemoryResellerStore) Recharges() []reseller.Recharge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]reseller.Recharge(nil), s.recharges...)
}

func (s *InMemoryResellerStore) Balance(resellerID int64) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[resellerID]
}
