// internal/service/pricing/resolver.go
package pricing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"revenda-service/internal/domain/pricing"
	xerrors "revenda-service/internal/pkg/errors"
	"revenda-service/internal/pkg/metrics"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Resolver prices reseller credit purchases from quantity bands.
type Resolver struct {
	bandRepo pricing.Repository
	logger   *zap.Logger
}

func NewResolver(bandRepo pricing.Repository, logger *zap.Logger) *Resolver {
	return &Resolver{
		bandRepo: bandRepo,
		logger:   logger,
	}
}

// Resolve returns the price per credit of the band containing quantity.
func (r *Resolver) Resolve(ctx context.Context, panel string, quantity int64) (decimal.Decimal, error) {
	bands, err := r.activeBands(ctx, panel)
	if err != nil {
		return decimal.Zero, err
	}

	band, ok := lo.Find(bands, func(b pricing.Band) bool {
		return b.Contains(quantity)
	})
	if !ok {
		return decimal.Zero, xerrors.Validation(xerrors.CodeNoPricingBand,
			"no pricing band for %d credits on panel %s", quantity, panel)
	}

	return band.PricePerCredit, nil
}

// MinimumQuantity is the smallest purchase a panel accepts: the lowest
// min_quantity among its active bands.
func (r *Resolver) MinimumQuantity(ctx context.Context, panel string) (int64, error) {
	bands, err := r.activeBands(ctx, panel)
	if err != nil {
		return 0, err
	}
	if len(bands) == 0 {
		return 0, xerrors.Validation(xerrors.CodeNoPricingBand, "no pricing band configured for panel %s", panel)
	}

	return lo.MinBy(bands, func(a, b pricing.Band) bool {
		return a.MinQuantity < b.MinQuantity
	}).MinQuantity, nil
}

// Quote resolves the price and total for a purchase, enforcing the panel
// minimum first. The total is exact; it is not rounded to cents.
func (r *Resolver) Quote(ctx context.Context, panel string, quantity int64) (*pricing.Quote, error) {
	panel = strings.TrimSpace(panel)
	if quantity <= 0 {
		return nil, xerrors.Validation(xerrors.CodeBelowMinimumQuantity, "quantity must be positive, got %d", quantity)
	}

	minimum, err := r.MinimumQuantity(ctx, panel)
	if err != nil {
		return nil, err
	}
	if quantity < minimum {
		return nil, xerrors.Validation(xerrors.CodeBelowMinimumQuantity,
			"panel %s requires at least %d credits, got %d", panel, minimum, quantity)
	}

	price, err := r.Resolve(ctx, panel, quantity)
	if err != nil {
		return nil, err
	}

	return &pricing.Quote{
		Panel:          panel,
		Quantity:       quantity,
		PricePerCredit: price,
		Total:          price.Mul(decimal.NewFromInt(quantity)),
	}, nil
}

// ValidateBand checks a new or edited band against every other active band
// of the panel. Nothing is written.
func (r *Resolver) ValidateBand(ctx context.Context, panel string, candidate pricing.BandCandidate) error {
	err := r.validateBand(ctx, panel, candidate)

	var overlap *pricing.OverlapError
	switch {
	case err == nil:
		metrics.IncBandValidation("accepted")
	case errors.As(err, &overlap):
		metrics.IncBandValidation("overlap")
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		metrics.IncBandValidation("invalid")
	default:
		metrics.IncBandValidation("error")
	}
	return err
}

func (r *Resolver) validateBand(ctx context.Context, panel string, candidate pricing.BandCandidate) error {
	panel = strings.TrimSpace(panel)
	if panel == "" {
		return xerrors.Validation(xerrors.CodeInvalidBand, "panel is required")
	}

	band := candidate.Band(panel)
	if err := checkShape(band); err != nil {
		return err
	}

	bands, err := r.activeBands(ctx, panel)
	if err != nil {
		return err
	}

	others := lo.Reject(bands, func(b pricing.Band, _ int) bool {
		return band.ID != 0 && b.ID == band.ID
	})
	for _, existing := range others {
		if band.Overlaps(existing) {
			r.logger.Info("pricing band rejected",
				zap.String("panel", panel),
				zap.String("candidate", band.String()),
				zap.Int64("existing_band_id", existing.ID),
				zap.String("existing", existing.String()),
			)
			return &pricing.OverlapError{Panel: panel, Candidate: band, Existing: existing}
		}
	}

	return nil
}

// CoverageGaps lists quantity ranges above the panel minimum that no active
// band prices, including a missing unbounded top band.
func (r *Resolver) CoverageGaps(ctx context.Context, panel string) ([]pricing.Gap, error) {
	bands, err := r.activeBands(ctx, panel)
	if err != nil {
		return nil, err
	}
	if len(bands) == 0 {
		return nil, xerrors.Validation(xerrors.CodeNoPricingBand, "no pricing band configured for panel %s", panel)
	}

	var gaps []pricing.Gap
	next := bands[0].MinQuantity
	for _, b := range bands {
		if b.MinQuantity > next {
			to := b.MinQuantity - 1
			gaps = append(gaps, pricing.Gap{From: next, To: &to})
		}
		if b.MaxQuantity == nil {
			return gaps, nil
		}
		if *b.MaxQuantity+1 > next {
			next = *b.MaxQuantity + 1
		}
	}

	return append(gaps, pricing.Gap{From: next}), nil
}

func (r *Resolver) activeBands(ctx context.Context, panel string) ([]pricing.Band, error) {
	bands, err := r.bandRepo.ListActiveByPanel(ctx, strings.TrimSpace(panel))
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing bands: %w", err)
	}

	bands = lo.Filter(bands, func(b pricing.Band, _ int) bool { return b.Active })
	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].MinQuantity < bands[j].MinQuantity
	})
	return bands, nil
}

func checkShape(b pricing.Band) error {
	if b.MinQuantity < 1 {
		return xerrors.Validation(xerrors.CodeInvalidBand, "min_quantity must be at least 1, got %d", b.MinQuantity)
	}
	if b.MaxQuantity != nil && *b.MaxQuantity < b.MinQuantity {
		return xerrors.Validation(xerrors.CodeInvalidBand,
			"max_quantity %d is below min_quantity %d", *b.MaxQuantity, b.MinQuantity)
	}
	if !b.PricePerCredit.IsPositive() {
		return xerrors.Validation(xerrors.CodeInvalidBand, "price_per_credit must be positive")
	}
	if !b.PricePerCredit.Equal(b.PricePerCredit.Truncate(pricing.PriceScale)) {
		return xerrors.Validation(xerrors.CodeInvalidBand,
			"price_per_credit %s has more than %d decimal places", b.PricePerCredit, pricing.PriceScale)
	}
	return nil
}
