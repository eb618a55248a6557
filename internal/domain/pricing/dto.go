package pricing

import "github.com/shopspring/decimal"

// BandCandidate is a new or edited band submitted for validation.
type BandCandidate struct {
	ID             int64           `json:"id"`
	MinQuantity    int64           `json:"min_quantity"`
	MaxQuantity    *int64          `json:"max_quantity"`
	PricePerCredit decimal.Decimal `json:"price_per_credit"`
}

func (c BandCandidate) Band(panel string) Band {
	return Band{
		ID:             c.ID,
		Panel:          panel,
		MinQuantity:    c.MinQuantity,
		MaxQuantity:    c.MaxQuantity,
		PricePerCredit: c.PricePerCredit,
		Active:         true,
	}
}

type Quote struct {
	Panel          string          `json:"panel"`
	Quantity       int64           `json:"quantity"`
	PricePerCredit decimal.Decimal `json:"price_per_credit"`
	Total          decimal.Decimal `json:"total"`
}
