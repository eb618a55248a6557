// internal/domain/pricing/entity.go
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places a band price may carry.
const PriceScale = 4

// Band prices every credit of a reseller purchase whose quantity falls in
// [MinQuantity, MaxQuantity]. A nil MaxQuantity means "and above".
type Band struct {
	ID             int64           `json:"id" db:"id"`
	Panel          string          `json:"panel" db:"panel"`
	MinQuantity    int64           `json:"min_quantity" db:"min_quantity"`
	MaxQuantity    *int64          `json:"max_quantity,omitempty" db:"max_quantity"`
	PricePerCredit decimal.Decimal `json:"price_per_credit" db:"price_per_credit"`
	Active         bool            `json:"active" db:"active"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

func (b Band) Unbounded() bool {
	return b.MaxQuantity == nil
}

// Contains reports whether quantity falls inside the band, both ends inclusive.
func (b Band) Contains(quantity int64) bool {
	if quantity < b.MinQuantity {
		return false
	}
	return b.Unbounded() || quantity <= *b.MaxQuantity
}

// Overlaps reports whether the two integer ranges share at least one quantity.
func (b Band) Overlaps(other Band) bool {
	if b.MaxQuantity != nil && other.MinQuantity > *b.MaxQuantity {
		return false
	}
	if other.MaxQuantity != nil && b.MinQuantity > *other.MaxQuantity {
		return false
	}
	return true
}

func (b Band) String() string {
	if b.MaxQuantity == nil {
		return fmt.Sprintf("[%d, +inf)", b.MinQuantity)
	}
	return fmt.Sprintf("[%d, %d]", b.MinQuantity, *b.MaxQuantity)
}

// Gap is a quantity range not priced by any active band.
type Gap struct {
	From int64  `json:"from"`
	To   *int64 `json:"to,omitempty"`
}
