package settlement

import (
	"context"
	"fmt"
	"strings"

	"revenda-service/internal/domain/ledger"
	"revenda-service/internal/domain/reseller"
	"revenda-service/internal/domain/settlement"
	xerrors "revenda-service/internal/pkg/errors"

	"go.uber.org/zap"
)

func (c *Coordinator) resellerPurchase(req settlement.ResellerPurchaseRequest) func(context.Context, *run) (settlement.Result, error) {
	return func(ctx context.Context, r *run) (settlement.Result, error) {
		panel := strings.TrimSpace(req.Panel)
		if panel == "" {
			return nil, xerrors.Validation(xerrors.CodeInvalidRequest, "panel is required")
		}

		quote, err := c.resolver.Quote(ctx, panel, req.Quantity)
		if err != nil {
			return nil, err
		}
		r.complete(settlement.StepResolvePrice)
		r.complete(settlement.StepComputeTotal)

		description := fmt.Sprintf("Reseller #%d purchase: %d credit(s) on %s at %s",
			req.ResellerID, quote.Quantity, panel, quote.PricePerCredit.String())

		var balance *reseller.Balance
		writes := []write{
			{
				name: settlement.StepRecordResellerRecharge,
				fn: func(ctx context.Context) error {
					return c.resellerRepo.AppendRecharge(ctx, &reseller.Recharge{
						Reference:      r.reference(settlement.StepRecordResellerRecharge),
						ResellerID:     req.ResellerID,
						Panel:          panel,
						Quantity:       quote.Quantity,
						PricePerCredit: quote.PricePerCredit,
						Total:          quote.Total,
						Status:         reseller.RechargeStatusCompleted,
					})
				},
			},
			{
				name: settlement.StepRecordCashInflow,
				fn: func(ctx context.Context) error {
					return c.ledgerRepo.AppendCash(ctx, &ledger.CashEntry{
						Reference:   r.reference(settlement.StepRecordCashInflow),
						Date:        c.now(),
						Description: description,
						Inflow:      quote.Total,
					})
				},
			},
			c.recordCreditsSold(r, panel, quote.Quantity, description),
			{
				name: settlement.StepCreditResellerBalance,
				fn: func(ctx context.Context) error {
					b, err := c.resellerRepo.IncrementBalance(ctx, req.ResellerID, quote.Quantity)
					if err != nil {
						return err
					}
					balance = b
					return nil
				},
			},
		}

		if err := c.execute(ctx, r, writes); err != nil {
			return nil, err
		}

		c.logger.Info("reseller purchase settled",
			zap.String("run_id", r.id),
			zap.Int64("reseller_id", req.ResellerID),
			zap.String("panel", panel),
			zap.Int64("quantity", quote.Quantity),
			zap.String("price_per_credit", quote.PricePerCredit.String()),
			zap.String("total", quote.Total.String()),
		)

		return &settlement.ResellerPurchaseResult{
			RunID:          r.id,
			ResellerID:     req.ResellerID,
			Panel:          panel,
			Quantity:       quote.Quantity,
			PricePerCredit: quote.PricePerCredit,
			Total:          quote.Total,
			CreditBalance:  balance.CreditBalance,
			Steps:          r.report(),
		}, nil
	}
}
