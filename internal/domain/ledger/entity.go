// internal/domain/ledger/entity.go
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashEntry is one row of the cash book ("caixa"). Only one of Inflow and
// Outflow is non-zero for entries written by a settlement.
type CashEntry struct {
	ID          int64           `json:"id" db:"id"`
	Reference   string          `json:"reference" db:"reference"`
	Date        time.Time       `json:"date" db:"data"`
	Description string          `json:"description" db:"descricao"`
	Inflow      decimal.Decimal `json:"entrada" db:"entrada"`
	Outflow     decimal.Decimal `json:"saida" db:"saida"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// CreditsSoldEntry is the audit trail of credits granted on a panel, whether
// or not cash changed hands.
type CreditsSoldEntry struct {
	ID          int64     `json:"id" db:"id"`
	Reference   string    `json:"reference" db:"reference"`
	Date        time.Time `json:"date" db:"data"`
	Description string    `json:"description" db:"descricao"`
	Panel       string    `json:"panel" db:"painel"`
	Credits     int64     `json:"quantidade_creditos" db:"quantidade_creditos"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
