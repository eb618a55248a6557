// internal/service/settlement/coordinator.go
package settlement

import (
	"context"
	"fmt"
	"time"

	"revenda-service/internal/domain/customer"
	"revenda-service/internal/domain/ledger"
	"revenda-service/internal/domain/pricing"
	"revenda-service/internal/domain/recharge"
	"revenda-service/internal/domain/reseller"
	"revenda-service/internal/domain/settlement"
	xerrors "revenda-service/internal/pkg/errors"
	"revenda-service/internal/pkg/lock"
	commissionsvc "revenda-service/internal/service/commission"
	pricingsvc "revenda-service/internal/service/pricing"

	"go.uber.org/zap"
)

// Transactor runs fn inside one store transaction. Repositories pick the
// transaction up from the context passed to fn.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Option func(*Coordinator)

// WithLocker serialises settlements of the same customer or reseller.
func WithLocker(l lock.Locker) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.locker = l
		}
	}
}

// WithTransactor makes the write steps of each workflow atomic.
func WithTransactor(t Transactor) Option {
	return func(c *Coordinator) {
		c.tx = t
	}
}

// WithClock overrides the time source used for ledger dates.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// Coordinator applies the ledger writes of one business event in a fixed
// order. It stops at the first failed write and never undoes earlier ones.
type Coordinator struct {
	subscriptionRepo customer.SubscriptionRepository
	optionRepo       recharge.Repository
	ledgerRepo       ledger.Repository
	resellerRepo     reseller.Repository
	runRepo          settlement.RunRepository
	resolver         *pricingsvc.Resolver
	commissions      *commissionsvc.Ledger
	locker           lock.Locker
	tx               Transactor
	now              func() time.Time
	logger           *zap.Logger
}

func NewCoordinator(
	subscriptionRepo customer.SubscriptionRepository,
	optionRepo recharge.Repository,
	ledgerRepo ledger.Repository,
	resellerRepo reseller.Repository,
	runRepo settlement.RunRepository,
	resolver *pricingsvc.Resolver,
	commissions *commissionsvc.Ledger,
	logger *zap.Logger,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		subscriptionRepo: subscriptionRepo,
		optionRepo:       optionRepo,
		ledgerRepo:       ledgerRepo,
		resellerRepo:     resellerRepo,
		runRepo:          runRepo,
		resolver:         resolver,
		commissions:      commissions,
		locker:           lock.NopLocker{},
		now:              time.Now,
		logger:           logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settle dispatches a request to its workflow.
func (c *Coordinator) Settle(ctx context.Context, req settlement.Request) (settlement.Result, error) {
	switch r := req.(type) {
	case settlement.RechargeRequest:
		return c.settle(ctx, r, c.recharge(r))
	case *settlement.RechargeRequest:
		return c.settle(ctx, *r, c.recharge(*r))
	case settlement.RedemptionRequest:
		return c.settle(ctx, r, c.redemption(r))
	case *settlement.RedemptionRequest:
		return c.settle(ctx, *r, c.redemption(*r))
	case settlement.ResellerPurchaseRequest:
		return c.settle(ctx, r, c.resellerPurchase(r))
	case *settlement.ResellerPurchaseRequest:
		return c.settle(ctx, *r, c.resellerPurchase(*r))
	default:
		return nil, fmt.Errorf("unsupported settlement request %T", req)
	}
}

// SettleRecharge extends every active point of a customer and records the
// sale.
func (c *Coordinator) SettleRecharge(ctx context.Context, req settlement.RechargeRequest) (*settlement.RechargeResult, error) {
	res, err := c.settle(ctx, req, c.recharge(req))
	if err != nil {
		return nil, err
	}
	return res.(*settlement.RechargeResult), nil
}

// SettleCommissionRedemption converts commission balance into months or a
// cash payout. The commission debit is always the last write.
func (c *Coordinator) SettleCommissionRedemption(ctx context.Context, req settlement.RedemptionRequest) (*settlement.RedemptionResult, error) {
	res, err := c.settle(ctx, req, c.redemption(req))
	if err != nil {
		return nil, err
	}
	return res.(*settlement.RedemptionResult), nil
}

// SettleResellerPurchase sells a block of credits to a reseller at the
// panel's tiered price.
func (c *Coordinator) SettleResellerPurchase(ctx context.Context, req settlement.ResellerPurchaseRequest) (*settlement.ResellerPurchaseResult, error) {
	res, err := c.settle(ctx, req, c.resellerPurchase(req))
	if err != nil {
		return nil, err
	}
	return res.(*settlement.ResellerPurchaseResult), nil
}

// ValidatePricingBand checks a candidate band without writing it.
func (c *Coordinator) ValidatePricingBand(ctx context.Context, panel string, candidate pricing.BandCandidate) error {
	return c.resolver.ValidateBand(ctx, panel, candidate)
}

// Run returns one journal entry.
func (c *Coordinator) Run(ctx context.Context, id string) (*settlement.Run, error) {
	run, err := c.runRepo.FindByID(ctx, id)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to load settlement run "+id)
	}
	return run, nil
}

// Runs lists journal entries by status, newest first.
func (c *Coordinator) Runs(ctx context.Context, filters settlement.RunListFilters) ([]settlement.Run, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	if filters.Status == "" {
		filters.Status = settlement.RunFailed
	}
	runs, err := c.runRepo.ListByStatus(ctx, filters.Status, filters.Limit)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to list settlement runs")
	}
	return runs, nil
}
