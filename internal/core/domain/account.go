package domain

import (
	"math"
	"time"

	"github.com/SscSPs/account_movements/internal/apperrors"
)

// AccountVariant names the withdrawal policy an account follows.
type AccountVariant string

const (
	Checking AccountVariant = "CHECKING"
	Savings  AccountVariant = "SAVINGS"
	Business AccountVariant = "BUSINESS"
)

// Account is the contract shared by every account variant.
// Balance only changes through Deposit, Withdraw and AccrueInterestOrFee.
// Accounts are not safe for concurrent use.
type Account interface {
	AccountID() string
	Holder() string
	Variant() AccountVariant
	Balance() float64
	Deposits() []Movement
	Withdrawals() []Movement

	// Deposit credits amount and returns the recorded movement, or nil when
	// amount is not positive.
	Deposit(amount float64) *Movement

	// Withdraw applies the variant's debit rule. It returns nil, nil when
	// amount is not positive.
	Withdraw(amount float64) (*Movement, error)

	// AccrueInterestOrFee posts the variant's periodic interest or fee and
	// returns the signed adjustment applied to the balance.
	AccrueInterestOrFee() float64

	// Snapshot copies the account's current state.
	Snapshot() AccountSnapshot
}

// AccountOption configures an account at construction time. Options that do
// not apply to a variant are ignored.
type AccountOption func(*accountSettings)

type accountSettings struct {
	clock               func() time.Time
	withdrawalFee       float64
	monthlyInterestRate float64
	freeWithdrawals     int
	withdrawalLimit     float64
	manager             string
}

func defaultSettings() accountSettings {
	return accountSettings{
		clock:               time.Now,
		withdrawalFee:       DefaultWithdrawalFee,
		monthlyInterestRate: DefaultMonthlyInterestRate,
		freeWithdrawals:     UnlimitedWithdrawals,
		withdrawalLimit:     DefaultWithdrawalLimit,
	}
}

func applyOptions(opts []AccountOption) accountSettings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithClock sets the time source used to stamp movements.
func WithClock(clock func() time.Time) AccountOption {
	return func(s *accountSettings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// baseAccount holds the state common to all variants and the plain balance check.
type baseAccount struct {
	holder      string
	accountID   string
	balance     float64
	deposits    []Movement
	withdrawals []Movement
	clock       func() time.Time
}

func newBaseAccount(holder, accountID string, clock func() time.Time) baseAccount {
	return baseAccount{
		holder:      holder,
		accountID:   accountID,
		deposits:    []Movement{},
		withdrawals: []Movement{},
		clock:       clock,
	}
}

func (a *baseAccount) AccountID() string { return a.accountID }
func (a *baseAccount) Holder() string    { return a.holder }
func (a *baseAccount) Balance() float64  { return a.balance }

func (a *baseAccount) Deposits() []Movement {
	out := make([]Movement, len(a.deposits))
	copy(out, a.deposits)
	return out
}

func (a *baseAccount) Withdrawals() []Movement {
	out := make([]Movement, len(a.withdrawals))
	copy(out, a.withdrawals)
	return out
}

// snapshot fills the fields common to all variants.
func (a *baseAccount) snapshot(variant AccountVariant) AccountSnapshot {
	return AccountSnapshot{
		AccountID: a.accountID,
		Holder:    a.holder,
		Variant:   variant,
		Balance:   a.balance,
	}
}

// isPositiveAmount rejects zero, negatives, NaN and +Inf.
func isPositiveAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 1)
}

func (a *baseAccount) Deposit(amount float64) *Movement {
	if !isPositiveAmount(amount) {
		return nil
	}
	a.balance += amount
	m := NewMovement(Deposit, amount, a.clock())
	a.deposits = append(a.deposits, m)
	return &m
}

// debit removes total from the balance and records a withdrawal of requested.
// Nothing changes when the balance cannot cover total.
func (a *baseAccount) debit(total, requested float64) (*Movement, error) {
	if a.balance < total {
		return nil, apperrors.NewInsufficientFunds(total)
	}
	a.balance -= total
	m := NewMovement(Withdrawal, requested, a.clock())
	a.withdrawals = append(a.withdrawals, m)
	return &m, nil
}
