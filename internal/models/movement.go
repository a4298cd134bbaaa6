package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement is a row of the account_movements table.
type Movement struct {
	MovementID       string          `db:"movement_id"`
	AccountID        string          `db:"account_id"`
	Kind             string          `db:"kind"`
	Amount           decimal.Decimal `db:"amount"`
	ResultingBalance decimal.Decimal `db:"resulting_balance"`
	OccurredAt       time.Time       `db:"occurred_at"`
	CreatedAt        time.Time       `db:"created_at"`
}
