package domain

// AccountSnapshot is a copy of an account's state at one instant. It shares
// no memory with the account it was taken from.
// Variant-specific fields are zero for the other variants.
type AccountSnapshot struct {
	AccountID string
	Holder    string
	Variant   AccountVariant
	Balance   float64

	WithdrawalFee           float64 // CHECKING
	MonthlyInterestRate     float64 // SAVINGS
	FreeWithdrawalsPerMonth int     // SAVINGS
	WithdrawalsThisMonth    int     // SAVINGS
	WithdrawalLimit         float64 // BUSINESS
	Manager                 string  // BUSINESS
}
