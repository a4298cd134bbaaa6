package domain

import (
	"fmt"
	"math"

	"github.com/SscSPs/account_movements/internal/apperrors"
)

const (
	// DefaultMonthlyInterestRate is the savings rate applied per accrual run.
	DefaultMonthlyInterestRate = 0.02
	// UnlimitedWithdrawals is the default free-withdrawal allowance.
	UnlimitedWithdrawals = math.MaxInt
)

// WithMonthlyInterestRate overrides the savings interest rate.
func WithMonthlyInterestRate(rate float64) AccountOption {
	return func(s *accountSettings) { s.monthlyInterestRate = rate }
}

// WithFreeWithdrawalsPerMonth sets the savings free-withdrawal allowance.
func WithFreeWithdrawalsPerMonth(n int) AccountOption {
	return func(s *accountSettings) { s.freeWithdrawals = n }
}

// SavingsAccount earns monthly interest. Withdrawals are counted against
// FreeWithdrawalsPerMonth but the allowance is not enforced.
type SavingsAccount struct {
	baseAccount
	MonthlyInterestRate     float64
	FreeWithdrawalsPerMonth int
	WithdrawalsThisMonth    int
}

var _ Account = (*SavingsAccount)(nil)

// NewSavingsAccount creates an empty savings account.
func NewSavingsAccount(holder, accountID string, opts ...AccountOption) *SavingsAccount {
	s := applyOptions(opts)
	return &SavingsAccount{
		baseAccount:             newBaseAccount(holder, accountID, s.clock),
		MonthlyInterestRate:     s.monthlyInterestRate,
		FreeWithdrawalsPerMonth: s.freeWithdrawals,
	}
}

func (a *SavingsAccount) Variant() AccountVariant { return Savings }

// Withdraw debits amount and counts the withdrawal.
func (a *SavingsAccount) Withdraw(amount float64) (*Movement, error) {
	if !isPositiveAmount(amount) {
		return nil, nil
	}
	m, err := a.debit(amount, amount)
	if err != nil {
		msg := fmt.Sprintf("savings withdrawal of $%.2f could not be completed", amount)
		return nil, apperrors.NewInvalidOperation(msg, err)
	}
	// TODO: charge a fee or reject once WithdrawalsThisMonth exceeds FreeWithdrawalsPerMonth.
	a.WithdrawalsThisMonth++
	return m, nil
}

// AccrueInterestOrFee credits balance * MonthlyInterestRate.
func (a *SavingsAccount) AccrueInterestOrFee() float64 {
	interest := a.balance * a.MonthlyInterestRate
	a.balance += interest
	return interest
}

func (a *SavingsAccount) Snapshot() AccountSnapshot {
	s := a.snapshot(Savings)
	s.MonthlyInterestRate = a.MonthlyInterestRate
	s.FreeWithdrawalsPerMonth = a.FreeWithdrawalsPerMonth
	s.WithdrawalsThisMonth = a.WithdrawalsThisMonth
	return s
}
