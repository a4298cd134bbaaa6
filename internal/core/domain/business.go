package domain

import (
	"fmt"

	"github.com/SscSPs/account_movements/internal/apperrors"
)

const (
	// DefaultWithdrawalLimit caps a single business withdrawal.
	DefaultWithdrawalLimit = 5000.0
	// BusinessInterestRate is credited to business accounts on each accrual run.
	BusinessInterestRate = 0.001
)

// WithWithdrawalLimit overrides the per-operation ceiling of a business account.
func WithWithdrawalLimit(limit float64) AccountOption {
	return func(s *accountSettings) { s.withdrawalLimit = limit }
}

// WithManager sets the manager assigned to a business account.
func WithManager(manager string) AccountOption {
	return func(s *accountSettings) { s.manager = manager }
}

// BusinessAccount rejects any single withdrawal above WithdrawalLimit.
type BusinessAccount struct {
	baseAccount
	WithdrawalLimit float64
	Manager         string // Informational only
}

var _ Account = (*BusinessAccount)(nil)

// NewBusinessAccount creates an empty business account.
func NewBusinessAccount(holder, accountID string, opts ...AccountOption) *BusinessAccount {
	s := applyOptions(opts)
	return &BusinessAccount{
		baseAccount:     newBaseAccount(holder, accountID, s.clock),
		WithdrawalLimit: s.withdrawalLimit,
		Manager:         s.manager,
	}
}

func (a *BusinessAccount) Variant() AccountVariant { return Business }

// Withdraw checks the per-operation limit before the balance. A limit
// rejection carries no cause.
func (a *BusinessAccount) Withdraw(amount float64) (*Movement, error) {
	if !isPositiveAmount(amount) {
		return nil, nil
	}
	if amount > a.WithdrawalLimit {
		msg := fmt.Sprintf("withdrawal of $%.2f exceeds the per-operation limit of $%.2f", amount, a.WithdrawalLimit)
		return nil, apperrors.NewInvalidOperation(msg, nil)
	}
	m, err := a.debit(amount, amount)
	if err != nil {
		return nil, apperrors.NewInvalidOperation("withdrawal is within the limit but the balance is insufficient", err)
	}
	return m, nil
}

// AccrueInterestOrFee credits balance * BusinessInterestRate.
func (a *BusinessAccount) AccrueInterestOrFee() float64 {
	interest := a.balance * BusinessInterestRate
	a.balance += interest
	return interest
}

func (a *BusinessAccount) Snapshot() AccountSnapshot {
	s := a.snapshot(Business)
	s.WithdrawalLimit = a.WithdrawalLimit
	s.Manager = a.Manager
	return s
}
