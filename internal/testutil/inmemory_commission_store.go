package testutil

import (
	"context"
	"sync"
	"time"

	"revenda-service/internal/domain/customer"
	xerrors "revenda-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
)

type InMemoryCommissionStore struct {
	mu       sync.RWMutex
	balances map[int64]decimal.Decimal
	faults   *Faults
}

func NewInMemoryCommissionStore(faults *Faults) *InMemoryCommissionStore {
	return &InMemoryCommissionStore{
		balances: make(map[int64]decimal.Decimal),
		faults:   faults,
	}
}

func (s *InMemoryCommissionStore) SetBalance(customerID int64, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[customerID] = amount
}

// Balance returns the stored balance, zero when the customer has none.
func (s *InMemoryCommissionStore) Balance(customerID int64) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[customerID]
}

// GetBalance returns xerrors.ErrNotFound for a customer without a balance row.
func (s *InMemoryCommissionStore) GetBalance(ctx context.Context, customerID int64) (*customer.CommissionBalance, error) {
	if err := s.faults.check(OpGetBalance); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	balance, ok := s.balances[customerID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &customer.CommissionBalance{
		CustomerID:      customerID,
		TotalCommission: balance,
	}, nil
}

func (s *InMemoryCommissionStore) Debit(ctx context.Context, customerID int64, amount decimal.Decimal) (*customer.CommissionBalance, error) {
	if err := s.faults.check(OpDebitCommission); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.balances[customerID]
	if current.LessThan(amount) {
		return nil, xerrors.Validation(xerrors.CodeInsufficientBalance,
			"requested %s exceeds commission balance %s", amount.StringFixed(2), current.StringFixed(2))
	}

	next := current.Sub(amount)
	s.balances[customerID] = next
	return &customer.CommissionBalance{
		CustomerID:      customerID,
		TotalCommission: next,
		UpdatedAt:       time.Now(),
	}, nil
}
