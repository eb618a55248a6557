// internal/domain/settlement/request.go
package settlement

import (
	"fmt"

	"revenda-service/internal/domain/commission"
	"revenda-service/internal/domain/recharge"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindRecharge             Kind = "recharge"
	KindCommissionRedemption Kind = "commission_redemption"
	KindResellerPurchase     Kind = "reseller_purchase"
)

// Request is one business event to settle. Implemented only by
// RechargeRequest, RedemptionRequest and ResellerPurchaseRequest.
type Request interface {
	Kind() Kind
	// SubjectKey identifies the customer or reseller whose ledgers are touched.
	SubjectKey() string
	SubjectID() int64
	isRequest()
}

// RechargeRequest adds months to every active point of a customer.
type RechargeRequest struct {
	CustomerID       int64              `json:"customer_id" binding:"required,gt=0"`
	RechargeOptionID int64              `json:"recharge_option_id" binding:"required,gt=0"`
	AmountPaid       decimal.Decimal    `json:"amount_paid"`
	Discount         *recharge.Discount `json:"discount,omitempty"`
}

func (RechargeRequest) Kind() Kind           { return KindRecharge }
func (r RechargeRequest) SubjectKey() string { return customerKey(r.CustomerID) }
func (r RechargeRequest) SubjectID() int64   { return r.CustomerID }
func (RechargeRequest) isRequest()           {}

// RedemptionRequest converts commission balance into months or cash.
type RedemptionRequest struct {
	CustomerID       int64                     `json:"customer_id" binding:"required,gt=0"`
	RedemptionKind   commission.RedemptionKind `json:"kind" binding:"required,oneof=to_credit to_cash"`
	Amount           decimal.Decimal           `json:"amount"`
	RechargeOptionID *int64                    `json:"recharge_option_id,omitempty"`
}

func (RedemptionRequest) Kind() Kind           { return KindCommissionRedemption }
func (r RedemptionRequest) SubjectKey() string { return customerKey(r.CustomerID) }
func (r RedemptionRequest) SubjectID() int64   { return r.CustomerID }
func (RedemptionRequest) isRequest()           {}

// ResellerPurchaseRequest buys a block of credits on a panel.
type ResellerPurchaseRequest struct {
	ResellerID int64  `json:"reseller_id" binding:"required,gt=0"`
	Panel      string `json:"panel" binding:"required"`
	Quantity   int64  `json:"quantity"`
}

func (ResellerPurchaseRequest) Kind() Kind           { return KindResellerPurchase }
func (r ResellerPurchaseRequest) SubjectKey() string { return fmt.Sprintf("reseller:%d", r.ResellerID) }
func (r ResellerPurchaseRequest) SubjectID() int64   { return r.ResellerID }
func (ResellerPurchaseRequest) isRequest()           {}

func customerKey(id int64) string {
	return fmt.Sprintf("customer:%d", id)
}

// Redemption starts the commission state machine for this request.
func (r RedemptionRequest) Redemption() *commission.Redemption {
	return &commission.Redemption{
		CustomerID:       r.CustomerID,
		Kind:             r.RedemptionKind,
		Amount:           r.Amount,
		RechargeOptionID: r.RechargeOptionID,
		State:            commission.StateRequested,
	}
}
