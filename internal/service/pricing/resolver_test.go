package pricing

import (
	"context"
	"errors"
	"testing"

	"revenda-service/internal/domain/pricing"
	xerrors "revenda-service/internal/pkg/errors"
	"revenda-service/internal/testutil"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const panel = "P2BRAS"

func newResolver(t *testing.T, bands ...pricing.Band) (*Resolver, *testutil.InMemoryPricingBandStore) {
	store := testutil.NewInMemoryPricingBandStore(nil)
	for _, b := range bands {
		b.Panel = panel
		store.Add(b)
	}
	return NewResolver(store, zaptest.NewLogger(t)), store
}

func band(min int64, max *int64, price string) pricing.Band {
	return pricing.Band{
		MinQuantity:    min,
		MaxQuantity:    max,
		PricePerCredit: decimal.RequireFromString(price),
	}
}

func TestResolve_BoundaryBelongsToUpperBand(t *testing.T) {
	r, _ := newResolver(t,
		band(10, lo.ToPtr[int64](49), "1.00"),
		band(50, nil, "0.80"),
	)
	ctx := context.Background()

	price, err := r.Resolve(ctx, panel, 49)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("1.00")), "got %s", price)

	price, err = r.Resolve(ctx, panel, 50)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("0.80")), "got %s", price)

	price, err = r.Resolve(ctx, panel, 100000)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("0.80")))
}

func TestResolve_NoBand(t *testing.T) {
	r, _ := newResolver(t, band(10, lo.ToPtr[int64](49), "1.00"))

	_, err := r.Resolve(context.Background(), panel, 50)
	require.Error(t, err)
	assert.Equal(t, xerrors.CodeNoPricingBand, xerrors.ValidationCode(err))

	_, err = r.Resolve(context.Background(), "OTHER", 20)
	assert.Equal(t, xerrors.CodeNoPricingBand, xerrors.ValidationCode(err))
}

func TestMinimumQuantity(t *testing.T) {
	r, _ := newResolver(t,
		band(50, nil, "0.80"),
		band(10, lo.ToPtr[int64](49), "1.00"),
	)

	minimum, err := r.MinimumQuantity(context.Background(), panel)
	require.NoError(t, err)
	assert.Equal(t, int64(10), minimum)

	_, err = r.MinimumQuantity(context.Background(), "OTHER")
	assert.Equal(t, xerrors.CodeNoPricingBand, xerrors.ValidationCode(err))
}

func TestQuote(t *testing.T) {
	r, _ := newResolver(t,
		band(10, lo.ToPtr[int64](49), "1.00"),
		band(50, nil, "0.80"),
	)

	tests := []struct {
		name     string
		quantity int64
		wantCode string
		wantUnit string
		wantSum  string
	}{
		{name: "below minimum", quantity: 9, wantCode: xerrors.CodeBelowMinimumQuantity},
		{name: "zero", quantity: 0, wantCode: xerrors.CodeBelowMinimumQuantity},
		{name: "negative", quantity: -5, wantCode: xerrors.CodeBelowMinimumQuantity},
		{name: "at minimum", quantity: 10, wantUnit: "1.00", wantSum: "10.00"},
		{name: "upper band", quantity: 125, wantUnit: "0.80", wantSum: "100.00"},
		{name: "many credits", quantity: 333, wantUnit: "0.80", wantSum: "266.40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := r.Quote(context.Background(), panel, tt.quantity)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, xerrors.ValidationCode(err))
				assert.Nil(t, quote)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.quantity, quote.Quantity)
			assert.True(t, quote.PricePerCredit.Equal(decimal.RequireFromString(tt.wantUnit)))
			assert.True(t, quote.Total.Equal(decimal.RequireFromString(tt.wantSum)), "got %s", quote.Total)
		})
	}
}

func TestQuote_SubCentPriceKeepsExactTotal(t *testing.T) {
	r, _ := newResolver(t,
		band(10, lo.ToPtr[int64](49), "0.3333"),
		band(50, nil, "0.125"),
	)
	ctx := context.Background()

	quote, err := r.Quote(ctx, panel, 10)
	require.NoError(t, err)
	assert.Equal(t, "3.333", quote.Total.String())

	quote, err = r.Quote(ctx, panel, 53)
	require.NoError(t, err)
	assert.Equal(t, "6.625", quote.Total.String())
	assert.True(t, quote.Total.Equal(quote.PricePerCredit.Mul(decimal.NewFromInt(53))))
}

func TestQuote_TrimsPanel(t *testing.T) {
	r, _ := newResolver(t, band(10, nil, "1.00"))
	ctx := context.Background()

	quote, err := r.Quote(ctx, "  "+panel+" ", 12)
	require.NoError(t, err)
	assert.Equal(t, panel, quote.Panel)
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(12)))

	minimum, err := r.MinimumQuantity(ctx, " "+panel)
	require.NoError(t, err)
	assert.Equal(t, int64(10), minimum)
}

func TestValidateBand_Overlap(t *testing.T) {
	r, store := newResolver(t, band(10, lo.ToPtr[int64](50), "1.00"))
	ctx := context.Background()
	price := decimal.RequireFromString("0.90")

	err := r.ValidateBand(ctx, panel, pricing.BandCandidate{MinQuantity: 40, MaxQuantity: lo.ToPtr[int64](100), PricePerCredit: price})
	var overlap *pricing.OverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, int64(10), overlap.Existing.MinQuantity)
	assert.True(t, errors.Is(err, xerrors.ErrConflict))

	// Touching the existing maximum is an overlap.
	err = r.ValidateBand(ctx, panel, pricing.BandCandidate{MinQuantity: 50, PricePerCredit: price})
	assert.True(t, errors.As(err, &overlap))

	require.NoError(t, r.ValidateBand(ctx, panel, pricing.BandCandidate{MinQuantity: 51, PricePerCredit: price}))

	require.NoError(t, r.ValidateBand(ctx, panel, pricing.BandCandidate{MinQuantity: 51, MaxQuantity: lo.ToPtr[int64](100), PricePerCredit: price}))
	accepted := band(51, lo.ToPtr[int64](100), "0.90")
	accepted.Panel = panel
	store.Add(accepted)
	require.NoError(t, r.ValidateBand(ctx, panel, pricing.BandCandidate{MinQuantity: 101, PricePerCredit: decimal.RequireFromString("0.80")}))
}

func TestValidateBand_UnboundedExisting(t *testing.T) {
	r, _ := newResolver(t, band(100, nil, "0.70"))

	err := r.ValidateBand(context.Background(), panel, pricing.BandCandidate{
		MinQuantity:    5000,
		MaxQuantity:    lo.ToPtr[int64](6000),
		PricePerCredit: decimal.RequireFromString("0.60"),
	})
	var overlap *pricing.OverlapError
	assert.True(t, errors.As(err, &overlap))

	require.NoError(t, r.ValidateBand(context.Background(), panel, pricing.BandCandidate{
		MinQuantity:    1,
		MaxQuantity:    lo.ToPtr[int64](99),
		PricePerCredit: decimal.RequireFromString("1.20"),
	}))
}

func TestValidateBand_EditExcludesItself(t *testing.T) {
	r, store := newResolver(t)
	existing := store.Add(pricing.Band{Panel: panel, MinQuantity: 10, MaxQuantity: lo.ToPtr[int64](50), PricePerCredit: decimal.NewFromInt(1)})

	err := r.ValidateBand(context.Background(), panel, pricing.BandCandidate{
		ID:             existing.ID,
		MinQuantity:    10,
		MaxQuantity:    lo.ToPtr[int64](60),
		PricePerCredit: decimal.RequireFromString("0.95"),
	})
	assert.NoError(t, err)
}

func TestValidateBand_Shape(t *testing.T) {
	r, _ := newResolver(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		panel     string
		candidate pricing.BandCandidate
	}{
		{name: "blank panel", panel: "  ", candidate: pricing.BandCandidate{MinQuantity: 1, PricePerCredit: decimal.NewFromInt(1)}},
		{name: "zero min", panel: panel, candidate: pricing.BandCandidate{MinQuantity: 0, PricePerCredit: decimal.NewFromInt(1)}},
		{name: "max below min", panel: panel, candidate: pricing.BandCandidate{MinQuantity: 10, MaxQuantity: lo.ToPtr[int64](9), PricePerCredit: decimal.NewFromInt(1)}},
		{name: "zero price", panel: panel, candidate: pricing.BandCandidate{MinQuantity: 1}},
		{name: "five decimal price", panel: panel, candidate: pricing.BandCandidate{MinQuantity: 1, PricePerCredit: decimal.RequireFromString("0.33333")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateBand(ctx, tt.panel, tt.candidate)
			assert.Equal(t, xerrors.CodeInvalidBand, xerrors.ValidationCode(err))
		})
	}
}

func TestValidateBand_FourDecimalPrice(t *testing.T) {
	r, _ := newResolver(t)

	err := r.ValidateBand(context.Background(), panel, pricing.BandCandidate{
		MinQuantity:    1,
		PricePerCredit: decimal.RequireFromString("0.33330"),
	})
	assert.NoError(t, err)
}

func TestCoverageGaps(t *testing.T) {
	r, _ := newResolver(t,
		band(10, lo.ToPtr[int64](49), "1.00"),
		band(60, lo.ToPtr[int64](99), "0.90"),
	)

	gaps, err := r.CoverageGaps(context.Background(), panel)
	require.NoError(t, err)
	require.Len(t, gaps, 2)
	assert.Equal(t, int64(50), gaps[0].From)
	assert.Equal(t, int64(59), *gaps[0].To)
	assert.Equal(t, int64(100), gaps[1].From)
	assert.Nil(t, gaps[1].To)

	full, _ := newResolver(t,
		band(10, lo.ToPtr[int64](49), "1.00"),
		band(50, nil, "0.80"),
	)
	gaps, err = full.CoverageGaps(context.Background(), panel)
	require.NoError(t, err)
	assert.Empty(t, gaps)
}

func TestResolve_StoreError(t *testing.T) {
	faults := testutil.NewFaults()
	store := testutil.NewInMemoryPricingBandStore(faults)
	r := NewResolver(store, zaptest.NewLogger(t))
	boom := errors.New("connection reset")
	faults.FailOn(testutil.OpListBands, boom)

	_, err := r.Resolve(context.Background(), panel, 10)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, xerrors.ValidationCode(err))
}
