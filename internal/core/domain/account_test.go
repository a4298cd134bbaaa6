package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/SscSPs/account_movements/internal/apperrors"
	"github.com/SscSPs/account_movements/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var clockAt = time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.Local)

func sum(movements []domain.Movement) float64 {
	total := 0.0
	for _, m := range movements {
		total += m.Amount
	}
	return total
}

func TestDeposit_NonPositiveIsNoop(t *testing.T) {
	accounts := []domain.Account{
		domain.NewCheckingAccount("Ana", "000001"),
		domain.NewSavingsAccount("Ana", "000002"),
		domain.NewBusinessAccount("Ana", "000003"),
	}
	for _, acc := range accounts {
		t.Run(string(acc.Variant()), func(t *testing.T) {
			assert.Nil(t, acc.Deposit(0))
			assert.Nil(t, acc.Deposit(-25))
			assert.Equal(t, 0.0, acc.Balance())
			assert.Empty(t, acc.Deposits())
		})
	}
}

func TestDeposit_RecordsMovementAtSecondPrecision(t *testing.T) {
	acc := domain.NewSavingsAccount("Ana", "000002", domain.WithClock(fixedClock(clockAt)))

	m := acc.Deposit(250)

	require.NotNil(t, m)
	assert.Equal(t, domain.Deposit, m.Kind)
	assert.Equal(t, 250.0, m.Amount)
	assert.Equal(t, clockAt.Truncate(time.Second), m.Timestamp)
	assert.Equal(t, 250.0, acc.Balance())
	assert.Equal(t, []domain.Movement{*m}, acc.Deposits())
}

func TestWithdraw_NonPositiveIsNoop(t *testing.T) {
	acc := domain.NewCheckingAccount("Ana", "000001")
	acc.Deposit(100)

	m, err := acc.Withdraw(0)
	assert.NoError(t, err)
	assert.Nil(t, m)

	m, err = acc.Withdraw(-3)
	assert.NoError(t, err)
	assert.Nil(t, m)
	assert.Equal(t, 100.0, acc.Balance())
	assert.Empty(t, acc.Withdrawals())
}

func TestChecking_WithdrawChargesFee(t *testing.T) {
	acc := domain.NewCheckingAccount("Ana", "000001")
	acc.Deposit(1500)

	m, err := acc.Withdraw(500)

	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, domain.Withdrawal, m.Kind)
	assert.Equal(t, 500.0, m.Amount, "movement records the requested amount, not the fee")
	assert.InDelta(t, 995.0, acc.Balance(), 1e-9)
}

func TestChecking_InsufficientForFeeIsChained(t *testing.T) {
	acc := domain.NewCheckingAccount("Ana", "000001")
	acc.Deposit(1500)
	_, err := acc.Withdraw(500)
	require.NoError(t, err)

	m, err := acc.Withdraw(1500)

	assert.Nil(t, m)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	var root *apperrors.InsufficientFundsError
	require.ErrorAs(t, err, &root)
	assert.Equal(t, 1505.0, root.Required)
	assert.Contains(t, apperrors.CauseMessage(err), "1505.00")
	assert.InDelta(t, 995.0, acc.Balance(), 1e-9)
	assert.Len(t, acc.Withdrawals(), 1)
}

func TestChecking_FeeAloneCanCauseRejection(t *testing.T) {
	acc := domain.NewCheckingAccount("Ana", "000001", domain.WithWithdrawalFee(2.5))
	acc.Deposit(100)

	_, err := acc.Withdraw(99)

	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Equal(t, 100.0, acc.Balance())
}

func TestChecking_MaintenanceFeeMayGoNegative(t *testing.T) {
	acc := domain.NewCheckingAccount("Ana", "000001")
	acc.Deposit(4)

	adjusted := acc.AccrueInterestOrFee()

	assert.Equal(t, -domain.MaintenanceFee, adjusted)
	assert.InDelta(t, -6.0, acc.Balance(), 1e-9)
}

func TestSavings_AccrueInterest(t *testing.T) {
	acc := domain.NewSavingsAccount("Ana", "000002")
	acc.Deposit(500)

	interest := acc.AccrueInterestOrFee()

	assert.InDelta(t, 10.0, interest, 1e-9)
	assert.InDelta(t, 510.0, acc.Balance(), 1e-9)
}

func TestSavings_WithdrawalsAreCountedNotEnforced(t *testing.T) {
	acc := domain.NewSavingsAccount("Ana", "000002",
		domain.WithMonthlyInterestRate(0.01),
		domain.WithFreeWithdrawalsPerMonth(1))
	acc.Deposit(100)

	for i := 0; i < 3; i++ {
		_, err := acc.Withdraw(10)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, acc.WithdrawalsThisMonth)
	assert.Equal(t, 1, acc.FreeWithdrawalsPerMonth)
	assert.Equal(t, 0.01, acc.MonthlyInterestRate)
	assert.InDelta(t, 70.0, acc.Balance(), 1e-9)
}

func TestSavings_DefaultsAndInsufficientFunds(t *testing.T) {
	acc := domain.NewSavingsAccount("Ana", "000002")
	assert.Equal(t, domain.UnlimitedWithdrawals, acc.FreeWithdrawalsPerMonth)
	assert.Equal(t, domain.DefaultMonthlyInterestRate, acc.MonthlyInterestRate)
	acc.Deposit(50)

	_, err := acc.Withdraw(80)

	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Equal(t, 0, acc.WithdrawalsThisMonth)
	assert.Equal(t, 50.0, acc.Balance())
}

func TestBusiness_LimitRejectsWithoutCause(t *testing.T) {
	acc := domain.NewBusinessAccount("Acme", "000003", domain.WithManager("Luis"))
	acc.Deposit(10000)

	m, err := acc.Withdraw(6000)

	assert.Nil(t, m)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	assert.NotErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Empty(t, apperrors.CauseMessage(err))
	assert.Equal(t, 10000.0, acc.Balance())
	assert.Equal(t, "Luis", acc.Manager)
}

func TestBusiness_LimitCheckedBeforeBalance(t *testing.T) {
	acc := domain.NewBusinessAccount("Acme", "000003", domain.WithWithdrawalLimit(100))

	_, err := acc.Withdraw(150)

	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	assert.NotErrorIs(t, err, apperrors.ErrInsufficientFunds)
}

func TestBusiness_InsufficientWithinLimitIsChained(t *testing.T) {
	acc := domain.NewBusinessAccount("Acme", "000003")
	acc.Deposit(1000)

	_, err := acc.Withdraw(2000)

	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	var root *apperrors.InsufficientFundsError
	require.ErrorAs(t, err, &root)
	assert.Equal(t, 2000.0, root.Required)
	assert.Equal(t, 1000.0, acc.Balance())
}

func TestBusiness_AccrueInterest(t *testing.T) {
	acc := domain.NewBusinessAccount("Acme", "000003")
	acc.Deposit(10000)

	interest := acc.AccrueInterestOrFee()

	assert.InDelta(t, 10.0, interest, 1e-9)
	assert.InDelta(t, 10010.0, acc.Balance(), 1e-9)
}

func TestBalanceMatchesMovements(t *testing.T) {
	tests := []struct {
		name string
		acc  domain.Account
		fee  float64
	}{
		{name: "checking", acc: domain.NewCheckingAccount("A", "1"), fee: domain.DefaultWithdrawalFee},
		{name: "savings", acc: domain.NewSavingsAccount("A", "2")},
		{name: "business", acc: domain.NewBusinessAccount("A", "3")},
	}
	ops := []struct {
		deposit bool
		amount  float64
	}{
		{true, 300}, {false, 120.5}, {true, -4}, {false, 9000}, {true, 75.25},
		{false, 0}, {false, 200}, {true, 1000}, {false, 6000}, {false, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, op := range ops {
				if op.deposit {
					tt.acc.Deposit(op.amount)
				} else {
					_, _ = tt.acc.Withdraw(op.amount)
				}
			}
			withdrawals := tt.acc.Withdrawals()
			expected := sum(tt.acc.Deposits()) - sum(withdrawals) - tt.fee*float64(len(withdrawals))
			assert.InDelta(t, expected, tt.acc.Balance(), 1e-9)
		})
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	acc := domain.NewCheckingAccount("Ana", "000001")
	acc.Deposit(10)

	deposits := acc.Deposits()
	deposits[0].Amount = 999

	assert.Equal(t, 10.0, acc.Deposits()[0].Amount)
	assert.Equal(t, "Ana", acc.Holder())
	assert.Equal(t, "000001", acc.AccountID())
	assert.Equal(t, domain.Checking, acc.Variant())
}

func TestNonFiniteAmountsAreNoops(t *testing.T) {
	accounts := []domain.Account{
		domain.NewCheckingAccount("Ana", "000001"),
		domain.NewSavingsAccount("Ana", "000002"),
		domain.NewBusinessAccount("Ana", "000003"),
	}
	for _, acc := range accounts {
		t.Run(string(acc.Variant()), func(t *testing.T) {
			acc.Deposit(100)
			for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				assert.Nil(t, acc.Deposit(amount))
				m, err := acc.Withdraw(amount)
				assert.NoError(t, err)
				assert.Nil(t, m)
			}
			assert.Equal(t, 100.0, acc.Balance())
			assert.Len(t, acc.Deposits(), 1)
			assert.Empty(t, acc.Withdrawals())
		})
	}
}

func TestSnapshot(t *testing.T) {
	checking := domain.NewCheckingAccount("Ana", "000001", domain.WithWithdrawalFee(2))
	checking.Deposit(50)
	assert.Equal(t, domain.AccountSnapshot{
		AccountID:     "000001",
		Holder:        "Ana",
		Variant:       domain.Checking,
		Balance:       50,
		WithdrawalFee: 2,
	}, checking.Snapshot())

	savings := domain.NewSavingsAccount("Luis", "000002", domain.WithFreeWithdrawalsPerMonth(3))
	savings.Deposit(100)
	_, err := savings.Withdraw(10)
	require.NoError(t, err)
	s := savings.Snapshot()
	assert.Equal(t, domain.Savings, s.Variant)
	assert.Equal(t, 90.0, s.Balance)
	assert.Equal(t, domain.DefaultMonthlyInterestRate, s.MonthlyInterestRate)
	assert.Equal(t, 3, s.FreeWithdrawalsPerMonth)
	assert.Equal(t, 1, s.WithdrawalsThisMonth)

	business := domain.NewBusinessAccount("Acme", "000003", domain.WithManager("Marta"))
	b := business.Snapshot()
	assert.Equal(t, domain.DefaultWithdrawalLimit, b.WithdrawalLimit)
	assert.Equal(t, "Marta", b.Manager)
}

func TestSnapshot_IsDetached(t *testing.T) {
	acc := domain.NewSavingsAccount("Luis", "000002")
	acc.Deposit(100)
	before := acc.Snapshot()

	acc.Deposit(50)
	_, err := acc.Withdraw(20)
	require.NoError(t, err)

	assert.Equal(t, 100.0, before.Balance)
	assert.Equal(t, 0, before.WithdrawalsThisMonth)
	assert.Equal(t, 130.0, acc.Snapshot().Balance)
}
