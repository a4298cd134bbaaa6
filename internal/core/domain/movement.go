package domain

import (
	"sort"
	"time"
)

// MovementKind tags a movement as a deposit or a withdrawal.
type MovementKind string

const (
	Deposit    MovementKind = "DEPOSIT"
	Withdrawal MovementKind = "WITHDRAWAL"
)

// MovementKinds lists every kind, each backed by its own log stream.
var MovementKinds = []MovementKind{Deposit, Withdrawal}

// IsValid reports whether k is one of the known kinds.
func (k MovementKind) IsValid() bool {
	return k == Deposit || k == Withdrawal
}

// Movement is an immutable monetary event on an account.
type Movement struct {
	Kind      MovementKind `json:"kind"`
	Amount    float64      `json:"amount"`    // Always positive
	Timestamp time.Time    `json:"timestamp"` // Whole seconds, the log's precision
}

// NewMovement creates a movement stamped at the given instant, truncated to seconds.
func NewMovement(kind MovementKind, amount float64, at time.Time) Movement {
	return Movement{Kind: kind, Amount: amount, Timestamp: at.Truncate(time.Second)}
}

// MovementRecord is what gets appended to a movement store: the movement plus
// the account it belongs to and the balance right after it was applied.
type MovementRecord struct {
	AccountID        string
	Movement
	ResultingBalance float64
}

// MovementHistory is the reconciled deposit and withdrawal history of one account.
type MovementHistory struct {
	AccountID   string     `json:"accountID"`
	Deposits    []Movement `json:"deposits"`
	Withdrawals []Movement `json:"withdrawals"`
	InMemory    bool       `json:"inMemory"` // False when built from the store alone
}

// SortChronologically orders movements by timestamp, keeping the recorded
// order for movements that share a second.
func SortChronologically(movements []Movement) {
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Timestamp.Before(movements[j].Timestamp)
	})
}
