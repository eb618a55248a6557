package testutil

import (
	"context"
	"sort"
	"sync"

	"revenda-service/internal/domain/pricing"
)

type InMemoryPricingBandStore struct {
	mu     sync.RWMutex
	bands  []pricing.Band
	nextID int64
	faults *Faults
}

func NewInMemoryPricingBandStore(faults *Faults) *InMemoryPricingBandStore {
	return &InMemoryPricingBandStore{faults: faults}
}

// Add stores an active band and returns it with its id.
func (s *InMemoryPricingBandStore) Add(band pricing.Band) pricing.Band {
	s.mu.Lock()
	defer s.mu.Unlock()
	if band.ID == 0 {
		s.nextID++
		band.ID = s.nextID
	}
	band.Active = true
	s.bands = append(s.bands, band)
	return band
}

func (s *InMemoryPricingBandStore) ListActiveByPanel(ctx context.Context, panel string) ([]pricing.Band, error) {
	if err := s.faults.check(OpListBands); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []pricing.Band
	for _, b := range s.bands {
		if b.Panel == panel && b.Active {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MinQuantity < result[j].MinQuantity })
	return result, nil
}
