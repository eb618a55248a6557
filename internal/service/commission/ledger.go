// internal/service/commission/ledger.go
package commission

import (
	"context"
	"fmt"

	"revenda-service/internal/domain/commission"
	"revenda-service/internal/domain/customer"
	xerrors "revenda-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ledger validates redemptions against a customer's commission balance and
// performs the final debit.
type Ledger struct {
	commissionRepo customer.CommissionRepository
	logger         *zap.Logger
}

func NewLedger(commissionRepo customer.CommissionRepository, logger *zap.Logger) *Ledger {
	return &Ledger{
		commissionRepo: commissionRepo,
		logger:         logger,
	}
}

// Validate checks a redemption against the business minimums and the
// current balance. Amounts equal to the minimum are accepted.
func Validate(r *commission.Redemption, balance decimal.Decimal) error {
	if !r.Kind.Valid() {
		return xerrors.Validation(xerrors.CodeInvalidRequest, "unknown redemption kind %q", r.Kind)
	}

	minimum := commission.Minimum(r.Kind)
	if r.Amount.LessThan(minimum) {
		return xerrors.Validation(xerrors.CodeBelowMinimum,
			"%s redemption requires at least %s, got %s", r.Kind, minimum.StringFixed(2), r.Amount.StringFixed(2))
	}

	if r.Kind == commission.RedemptionToCredit && (r.RechargeOptionID == nil || *r.RechargeOptionID <= 0) {
		return xerrors.Validation(xerrors.CodeMissingOption, "credit redemption requires a recharge option")
	}

	if r.Amount.GreaterThan(balance) {
		return xerrors.Validation(xerrors.CodeInsufficientBalance,
			"requested %s exceeds commission balance %s", r.Amount.StringFixed(2), balance.StringFixed(2))
	}

	return nil
}

// Evaluate loads the customer's balance and moves the redemption to
// validated or rejected. The returned error is the rejection reason.
func (l *Ledger) Evaluate(ctx context.Context, r *commission.Redemption) (*customer.CommissionBalance, error) {
	if r.State != commission.StateRequested {
		return nil, fmt.Errorf("redemption is %s, expected %s", r.State, commission.StateRequested)
	}

	balance, err := l.commissionRepo.GetBalance(ctx, r.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load commission balance: %w", err)
	}

	if err := Validate(r, balance.TotalCommission); err != nil {
		r.State = commission.StateRejected
		r.RejectReason = xerrors.ValidationCode(err)

		l.logger.Info("commission redemption rejected",
			zap.Int64("customer_id", r.CustomerID),
			zap.String("kind", string(r.Kind)),
			zap.String("amount", r.Amount.String()),
			zap.String("reason", r.RejectReason),
		)
		return balance, err
	}

	r.State = commission.StateValidated
	return balance, nil
}

// Debit subtracts a validated redemption from the balance. It is the last
// write of a redemption settlement.
func (l *Ledger) Debit(ctx context.Context, r *commission.Redemption) (*customer.CommissionBalance, error) {
	if r.State != commission.StateValidated {
		return nil, fmt.Errorf("redemption is %s, expected %s", r.State, commission.StateValidated)
	}

	balance, err := l.commissionRepo.Debit(ctx, r.CustomerID, r.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to debit commission: %w", err)
	}

	r.State = commission.StateApplied
	return balance, nil
}
