package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"revenda-service/internal/domain/customer"
	xerrors "revenda-service/internal/pkg/errors"
)

type InMemorySubscriptionStore struct {
	mu            sync.RWMutex
	subscriptions map[int64]*customer.Subscription
	faults        *Faults
}

func NewInMemorySubscriptionStore(faults *Faults) *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		subscriptions: make(map[int64]*customer.Subscription),
		faults:        faults,
	}
}

func (s *InMemorySubscriptionStore) Add(sub customer.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.Status == "" {
		sub.Status = customer.SubscriptionStatusActive
	}
	s.subscriptions[sub.ID] = &sub
}

func (s *InMemorySubscriptionStore) ListActiveByCustomer(ctx context.Context, customerID int64) ([]customer.Subscription, error) {
	if err := s.faults.check(OpListSubscriptions); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []customer.Subscription
	for _, sub := range s.subscriptions {
		if sub.CustomerID == customerID && sub.IsActive() {
			result = append(result, *sub)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *InMemorySubscriptionStore) UpdateExpiration(ctx context.Context, subscriptionID int64, expiresAt time.Time) error {
	if err := s.faults.check(OpUpdateExpiration); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscriptions[subscriptionID]
	if !ok {
		return xerrors.ErrNotFound
	}
	sub.ExpirationDate = expiresAt
	sub.UpdatedAt = time.Now()
	return nil
}

// Get returns a copy of a stored subscription.
func (s *InMemorySubscriptionStore) Get(id int64) (customer.Subscription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subscriptions[id]
	if !ok {
		return customer.Subscription{}, false
	}
	return *sub, true
}
