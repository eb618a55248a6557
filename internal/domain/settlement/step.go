package settlement

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepCompleted StepStatus = "completed"
	StepSkipped   StepStatus = "skipped"
	StepFailed    StepStatus = "failed"
)

// Step names. Numbering is per workflow, see the Steps* plans below.
const (
	StepAllocateCredits        = "allocate_credits"
	StepExtendSubscriptions    = "extend_subscriptions"
	StepRecordCashInflow       = "record_cash_inflow"
	StepRecordCashOutflow      = "record_cash_outflow"
	StepRecordCreditsSold      = "record_credits_sold"
	StepDebitCommission        = "debit_commission"
	StepResolvePrice           = "resolve_price"
	StepComputeTotal           = "compute_total"
	StepRecordResellerRecharge = "record_reseller_recharge"
	StepCreditResellerBalance  = "credit_reseller_balance"
)

var (
	StepsRecharge = []string{
		StepAllocateCredits,
		StepExtendSubscriptions,
		StepRecordCashInflow,
		StepRecordCreditsSold,
	}
	StepsRedemption = []string{
		StepAllocateCredits,
		StepExtendSubscriptions,
		StepRecordCreditsSold,
		StepRecordCashOutflow,
		StepDebitCommission,
	}
	StepsResellerPurchase = []string{
		StepResolvePrice,
		StepComputeTotal,
		StepRecordResellerRecharge,
		StepRecordCashInflow,
		StepRecordCreditsSold,
		StepCreditResellerBalance,
	}
)

// Step is the outcome of one numbered step of a workflow.
type Step struct {
	Number int        `json:"number"`
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
}

// Plan returns the ordered steps of a workflow, all pending.
func Plan(kind Kind) []Step {
	var names []string
	switch kind {
	case KindRecharge:
		names = StepsRecharge
	case KindCommissionRedemption:
		names = StepsRedemption
	case KindResellerPurchase:
		names = StepsResellerPurchase
	}
	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Number: i + 1, Name: name, Status: StepPending}
	}
	return steps
}

// StepNumber returns the 1-based position of name in the workflow, or 0.
func StepNumber(kind Kind, name string) int {
	for _, s := range Plan(kind) {
		if s.Name == name {
			return s.Number
		}
	}
	return 0
}

// CompletedNames lists the names of completed steps in order.
func CompletedNames(steps []Step) []string {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		if s.Status == StepCompleted {
			names = append(names, s.Name)
		}
	}
	return names
}
