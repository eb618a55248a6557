package testutil

import (
	"sync"
)

// Faults injects store errors by operation name so tests can break a
// workflow at a chosen step.
type Faults struct {
	mu    sync.Mutex
	rules map[string]*fault
	calls map[string]int
}

type fault struct {
	after int
	err   error
}

func NewFaults() *Faults {
	return &Faults{
		rules: make(map[string]*fault),
		calls: make(map[string]int),
	}
}

// FailOn makes every call to op return err.
func (f *Faults) FailOn(op string, err error) {
	f.FailAfter(op, 0, err)
}

// FailAfter lets n calls to op succeed, then returns err.
func (f *Faults) FailAfter(op string, n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[op] = &fault{after: n, err: err}
}

// Calls returns how many times op was attempted.
func (f *Faults) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *Faults) check(op string) error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++
	rule, ok := f.rules[op]
	if !ok {
		return nil
	}
	if f.calls[op] > rule.after {
		return rule.err
	}
	return nil
}

// Operation names understood by the in-memory stores.
const (
	OpListSubscriptions = "ListActiveByCustomer"
	OpUpdateExpiration  = "UpdateExpiration"
	OpFindOption        = "FindRechargeOption"
	OpListBands         = "ListActiveByPanel"
	OpGetBalance        = "GetBalance"
	OpDebitCommission   = "Debit"
	OpAppendCash        = "AppendCash"
	OpAppendCreditsSold = "AppendCreditsSold"
	OpAppendRecharge    = "AppendRecharge"
	OpIncrementBalance  = "IncrementBalance"
	OpSaveRun           = "SaveRun"
)
