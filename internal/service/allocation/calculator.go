// internal/service/allocation/calculator.go
package allocation

import (
	"time"

	"revenda-service/internal/domain/customer"
	"revenda-service/internal/domain/recharge"
	xerrors "revenda-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Extension is the new expiration computed for one subscription.
type Extension struct {
	SubscriptionID int64
	Panel          string
	From           time.Time
	To             time.Time
}

// Allocation is the credits granted by a recharge and the per-point
// expiration extensions.
type Allocation struct {
	PointCount     int
	DurationMonths int
	Credits        int64
	Extensions     []Extension
}

// Allocate grants duration_months credits per active point. Each subscription
// extends from its own stored expiration, lapsed or not.
func Allocate(subscriptions []customer.Subscription, option *recharge.Option) (*Allocation, error) {
	if option == nil {
		return nil, xerrors.Validation(xerrors.CodeMissingOption, "recharge option is required")
	}
	if option.DurationMonths <= 0 {
		return nil, xerrors.Validation(xerrors.CodeInvalidRequest,
			"recharge option %d has invalid duration %d", option.ID, option.DurationMonths)
	}

	active := make([]customer.Subscription, 0, len(subscriptions))
	for _, s := range subscriptions {
		if s.IsActive() {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return nil, xerrors.Validation(xerrors.CodeNoActiveSubscriptions, "customer has no active subscriptions")
	}

	alloc := &Allocation{
		PointCount:     len(active),
		DurationMonths: option.DurationMonths,
		Credits:        Credits(len(active), option.DurationMonths),
		Extensions:     make([]Extension, 0, len(active)),
	}
	for _, s := range active {
		alloc.Extensions = append(alloc.Extensions, Extension{
			SubscriptionID: s.ID,
			Panel:          s.PanelName,
			From:           s.ExpirationDate,
			To:             AddMonths(s.ExpirationDate, option.DurationMonths),
		})
	}

	return alloc, nil
}

// Credits is points × months.
func Credits(activePoints, durationMonths int) int64 {
	return int64(activePoints) * int64(durationMonths)
}

// AddMonths moves t forward by calendar months keeping the day of month,
// clamped to the last day when the target month is shorter
// (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap year).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	hh, mm, ss := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// FinalPrice applies a promotion to a base price. Non-positive discount
// values leave the price unchanged and the result never goes below zero.
func FinalPrice(basePrice decimal.Decimal, kind recharge.DiscountKind, value decimal.Decimal) decimal.Decimal {
	if !value.IsPositive() {
		return basePrice
	}

	var price decimal.Decimal
	switch kind {
	case recharge.DiscountKindPercentage:
		price = basePrice.Mul(decimal.NewFromInt(1).Sub(value.Div(hundred)))
	case recharge.DiscountKindFixedAmount:
		price = basePrice.Sub(value)
	default:
		return basePrice
	}

	return decimal.Max(decimal.Zero, price).Round(2)
}
