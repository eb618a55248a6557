package settlement

import (
	"context"
	"fmt"

	"revenda-service/internal/domain/commission"
	"revenda-service/internal/domain/ledger"
	"revenda-service/internal/domain/settlement"
	"revenda-service/internal/service/allocation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (c *Coordinator) redemption(req settlement.RedemptionRequest) func(context.Context, *run) (settlement.Result, error) {
	return func(ctx context.Context, r *run) (settlement.Result, error) {
		red := req.Redemption()
		if _, err := c.commissions.Evaluate(ctx, red); err != nil {
			return nil, err
		}

		var (
			alloc  *allocation.Allocation
			writes []write
		)

		switch red.Kind {
		case commission.RedemptionToCredit:
			option, err := c.optionRepo.FindByID(ctx, *red.RechargeOptionID)
			if err != nil {
				return nil, fmt.Errorf("failed to load recharge option %d: %w", *red.RechargeOptionID, err)
			}

			a, subs, err := c.allocate(ctx, red.CustomerID, option)
			if err != nil {
				return nil, err
			}
			alloc = a
			panel := subs[0].PanelName
			r.complete(settlement.StepAllocateCredits)

			description := fmt.Sprintf("Commission redemption customer #%d: %s converted to %d point(s) x %d month(s)",
				red.CustomerID, red.Amount.StringFixed(2), alloc.PointCount, alloc.DurationMonths)

			writes = append(writes,
				c.extendSubscriptions(alloc),
				c.recordCreditsSold(r, panel, alloc.Credits, description),
			)
			r.skip(settlement.StepRecordCashOutflow)

		case commission.RedemptionToCash:
			r.skip(settlement.StepAllocateCredits)
			r.skip(settlement.StepExtendSubscriptions)
			r.skip(settlement.StepRecordCreditsSold)

			writes = append(writes, write{
				name: settlement.StepRecordCashOutflow,
				fn: func(ctx context.Context) error {
					return c.ledgerRepo.AppendCash(ctx, &ledger.CashEntry{
						Reference:   r.reference(settlement.StepRecordCashOutflow),
						Date:        c.now(),
						Description: fmt.Sprintf("Commission payout customer #%d", red.CustomerID),
						Outflow:     red.Amount,
					})
				},
			})
		}

		var remaining decimal.Decimal
		writes = append(writes, write{
			name: settlement.StepDebitCommission,
			fn: func(ctx context.Context) error {
				balance, err := c.commissions.Debit(ctx, red)
				if err != nil {
					return err
				}
				remaining = balance.TotalCommission
				return nil
			},
		})

		if err := c.execute(ctx, r, writes); err != nil {
			return nil, err
		}

		result := &settlement.RedemptionResult{
			RunID:            r.id,
			CustomerID:       red.CustomerID,
			Kind:             red.Kind,
			Amount:           red.Amount,
			State:            red.State,
			RemainingBalance: remaining,
			Steps:            r.report(),
		}
		if alloc != nil {
			result.Credits = alloc.Credits
			result.NewExpirations = extensions(alloc)
		}

		c.logger.Info("commission redemption settled",
			zap.String("run_id", r.id),
			zap.Int64("customer_id", red.CustomerID),
			zap.String("kind", string(red.Kind)),
			zap.String("amount", red.Amount.String()),
			zap.String("remaining_balance", remaining.String()),
		)

		return result, nil
	}
}
