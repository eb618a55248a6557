package testutil

import (
	"context"
	"sync"
	"time"

	"revenda-service/internal/domain/ledger"
)

type InMemoryLedgerStore struct {
	mu          sync.RWMutex
	cash        []ledger.CashEntry
	creditsSold []ledger.CreditsSoldEntry
	faults      *Faults
}

func NewInMemoryLedgerStore(faults *Faults) *InMemoryLedgerStore {
	return &InMemoryLedgerStore{faults: faults}
}

func (s *InMemoryLedgerStore) AppendCash(ctx context.Context, entry *ledger.CashEntry) error {
	if err := s.faults.check(OpAppendCash); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = int64(len(s.cash) + 1)
	entry.CreatedAt = time.Now()
	s.cash = append(s.cash, *entry)
	return nil
}

func (s *InMemoryLedgerStore) AppendCreditsSold(ctx context.Context, entry *ledger.CreditsSoldEntry) error {
	if err := s.faults.check(OpAppendCreditsSold); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = int64(len(s.creditsSold) + 1)
	entry.CreatedAt = time.Now()
	s.creditsSold = append(s.creditsSold, *entry)
	return nil
}

func (s *InMemoryLedgerStore) Cash() []ledger.CashEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ledger.CashEntry(nil), s.cash...)
}

func (s *InMemoryLedgerStore) CreditsSold() []ledger.CreditsSoldEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ledger.CreditsSoldEntry(nil), s.creditsSold...)
}
