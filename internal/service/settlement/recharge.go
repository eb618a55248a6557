package settlement

import (
	"context"
	"fmt"

	"revenda-service/internal/domain/customer"
	"revenda-service/internal/domain/ledger"
	"revenda-service/internal/domain/recharge"
	"revenda-service/internal/domain/settlement"
	xerrors "revenda-service/internal/pkg/errors"
	"revenda-service/internal/service/allocation"

	"go.uber.org/zap"
)

func (c *Coordinator) recharge(req settlement.RechargeRequest) func(context.Context, *run) (settlement.Result, error) {
	return func(ctx context.Context, r *run) (settlement.Result, error) {
		if req.AmountPaid.IsNegative() {
			return nil, xerrors.Validation(xerrors.CodeInvalidAmount, "amount_paid cannot be negative")
		}
		if req.Discount != nil && !req.Discount.Kind.Valid() {
			return nil, xerrors.Validation(xerrors.CodeInvalidRequest, "unknown discount kind %q", req.Discount.Kind)
		}

		option, err := c.optionRepo.FindByID(ctx, req.RechargeOptionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load recharge option %d: %w", req.RechargeOptionID, err)
		}

		alloc, subs, err := c.allocate(ctx, req.CustomerID, option)
		if err != nil {
			return nil, err
		}
		r.complete(settlement.StepAllocateCredits)

		panel := subs[0].PanelName
		description := fmt.Sprintf("Recharge customer #%d: %d point(s) x %d month(s) (%s)",
			req.CustomerID, alloc.PointCount, alloc.DurationMonths, option.Period)

		writes := []write{c.extendSubscriptions(alloc)}
		if req.AmountPaid.IsPositive() {
			writes = append(writes, write{
				name: settlement.StepRecordCashInflow,
				fn: func(ctx context.Context) error {
					return c.ledgerRepo.AppendCash(ctx, &ledger.CashEntry{
						Reference:   r.reference(settlement.StepRecordCashInflow),
						Date:        c.now(),
						Description: description,
						Inflow:      req.AmountPaid,
					})
				},
			})
		} else {
			r.skip(settlement.StepRecordCashInflow)
		}
		writes = append(writes, c.recordCreditsSold(r, panel, alloc.Credits, description))

		if err := c.execute(ctx, r, writes); err != nil {
			return nil, err
		}

		result := &settlement.RechargeResult{
			RunID:          r.id,
			CustomerID:     req.CustomerID,
			Credits:        alloc.Credits,
			Panel:          panel,
			NewExpirations: extensions(alloc),
			AmountPaid:     req.AmountPaid,
			ListPrice:      option.Price,
			QuotedPrice:    option.Price,
			Steps:          r.report(),
		}
		if req.Discount != nil {
			result.QuotedPrice = allocation.FinalPrice(option.Price, req.Discount.Kind, req.Discount.Value)
		}

		c.logger.Info("recharge settled",
			zap.String("run_id", r.id),
			zap.Int64("customer_id", req.CustomerID),
			zap.Int64("recharge_option_id", option.ID),
			zap.Int("points", alloc.PointCount),
			zap.Int64("credits", alloc.Credits),
			zap.String("amount_paid", req.AmountPaid.String()),
		)

		return result, nil
	}
}

// allocate loads the customer's active points and computes the extension.
// Subscriptions come back ordered by id; the first is the primary point.
func (c *Coordinator) allocate(ctx context.Context, customerID int64, option *recharge.Option) (*allocation.Allocation, []customer.Subscription, error) {
	subs, err := c.subscriptionRepo.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load subscriptions for customer %d: %w", customerID, err)
	}

	alloc, err := allocation.Allocate(subs, option)
	if err != nil {
		return nil, nil, err
	}

	active := make([]customer.Subscription, 0, len(subs))
	for _, s := range subs {
		if s.IsActive() {
			active = append(active, s)
		}
	}
	return alloc, active, nil
}

// extendSubscriptions writes every new expiration. Any single failure fails
// the whole step.
func (c *Coordinator) extendSubscriptions(alloc *allocation.Allocation) write {
	return write{
		name: settlement.StepExtendSubscriptions,
		fn: func(ctx context.Context) error {
			for _, ext := range alloc.Extensions {
				if err := c.subscriptionRepo.UpdateExpiration(ctx, ext.SubscriptionID, ext.To); err != nil {
					return fmt.Errorf("failed to extend subscription %d: %w", ext.SubscriptionID, err)
				}
			}
			return nil
		},
	}
}

func (c *Coordinator) recordCreditsSold(r *run, panel string, credits int64, description string) write {
	return write{
		name: settlement.StepRecordCreditsSold,
		fn: func(ctx context.Context) error {
			return c.ledgerRepo.AppendCreditsSold(ctx, &ledger.CreditsSoldEntry{
				Reference:   r.reference(settlement.StepRecordCreditsSold),
				Date:        c.now(),
				Description: description,
				Panel:       panel,
				Credits:     credits,
			})
		},
	}
}

func extensions(alloc *allocation.Allocation) []settlement.SubscriptionExtension {
	out := make([]settlement.SubscriptionExtension, 0, len(alloc.Extensions))
	for _, ext := range alloc.Extensions {
		out = append(out, settlement.SubscriptionExtension{
			SubscriptionID:     ext.SubscriptionID,
			Panel:              ext.Panel,
			PreviousExpiration: ext.From,
			NewExpiration:      ext.To,
		})
	}
	return out
}
