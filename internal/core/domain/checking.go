package domain

import (
	"fmt"

	"github.com/SscSPs/account_movements/internal/apperrors"
)

const (
	// DefaultWithdrawalFee is charged on every checking withdrawal unless overridden.
	DefaultWithdrawalFee = 5.0
	// MaintenanceFee is deducted from checking accounts on each accrual run.
	MaintenanceFee = 10.0
)

// WithWithdrawalFee overrides the flat fee of a checking account.
func WithWithdrawalFee(fee float64) AccountOption {
	return func(s *accountSettings) { s.withdrawalFee = fee }
}

// CheckingAccount charges a flat fee on every withdrawal and a maintenance
// fee on every accrual run.
type CheckingAccount struct {
	baseAccount
	WithdrawalFee float64
}

var _ Account = (*CheckingAccount)(nil)

// NewCheckingAccount creates an empty checking account.
func NewCheckingAccount(holder, accountID string, opts ...AccountOption) *CheckingAccount {
	s := applyOptions(opts)
	return &CheckingAccount{
		baseAccount:   newBaseAccount(holder, accountID, s.clock),
		WithdrawalFee: s.withdrawalFee,
	}
}

func (a *CheckingAccount) Variant() AccountVariant { return Checking }

// Withdraw debits amount plus the withdrawal fee. The movement records amount only.
func (a *CheckingAccount) Withdraw(amount float64) (*Movement, error) {
	if !isPositiveAmount(amount) {
		return nil, nil
	}
	m, err := a.debit(amount+a.WithdrawalFee, amount)
	if err != nil {
		msg := fmt.Sprintf("withdrawal failed: balance cannot cover $%.2f plus a $%.2f fee", amount, a.WithdrawalFee)
		return nil, apperrors.NewInvalidOperation(msg, err)
	}
	return m, nil
}

// AccrueInterestOrFee deducts the maintenance fee. The balance may go negative.
func (a *CheckingAccount) AccrueInterestOrFee() float64 {
	a.balance -= MaintenanceFee
	return -MaintenanceFee
}

// Snapshot copies the account state and its withdrawal fee.
func (a *CheckingAccount) Snapshot() AccountSnapshot {
	s := a.snapshot(Checking)
	s.WithdrawalFee = a.WithdrawalFee
	return s
}
