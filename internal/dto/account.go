package dto

import (
	"github.com/SscSPs/account_movements/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
// Variant-specific fields are optional; nil means "use the variant default".
type CreateAccountRequest struct {
	Variant                 domain.AccountVariant `json:"variant" binding:"required,oneof=CHECKING SAVINGS BUSINESS" validate:"required,oneof=CHECKING SAVINGS BUSINESS"`
	Holder                  string                `json:"holder" binding:"required" validate:"required"`
	InitialBalance          float64               `json:"initialBalance" binding:"gte=0" validate:"gte=0"`
	WithdrawalFee           *float64              `json:"withdrawalFee" binding:"omitempty,gte=0" validate:"omitempty,gte=0"`                     // CHECKING
	MonthlyInterestRate     *float64              `json:"monthlyInterestRate" binding:"omitempty,gte=0" validate:"omitempty,gte=0"`               // SAVINGS
	FreeWithdrawalsPerMonth *int                  `json:"freeWithdrawalsPerMonth" binding:"omitempty,gte=0" validate:"omitempty,gte=0"`           // SAVINGS
	WithdrawalLimit         *float64              `json:"withdrawalLimit" binding:"omitempty,gt=0" validate:"omitempty,gt=0"`                     // BUSINESS
	Manager                 string                `json:"manager"`                                                                                // BUSINESS
}

// AmountRequest carries the amount of a deposit or withdrawal.
// Non-positive amounts are accepted and treated as no-ops by the accounts.
type AmountRequest struct {
	Amount float64 `json:"amount"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID               string                `json:"accountID"`
	Holder                  string                `json:"holder"`
	Variant                 domain.AccountVariant `json:"variant"`
	Balance                 float64               `json:"balance"`
	WithdrawalFee           *float64              `json:"withdrawalFee,omitempty"`
	MonthlyInterestRate     *float64              `json:"monthlyInterestRate,omitempty"`
	FreeWithdrawalsPerMonth *int                  `json:"freeWithdrawalsPerMonth,omitempty"`
	WithdrawalsThisMonth    *int                  `json:"withdrawalsThisMonth,omitempty"`
	WithdrawalLimit         *float64              `json:"withdrawalLimit,omitempty"`
	Manager                 string                `json:"manager,omitempty"`
}

// ToAccountResponse converts a domain.AccountSnapshot to AccountResponse DTO
func ToAccountResponse(acc domain.AccountSnapshot) AccountResponse {
	resp := AccountResponse{
		AccountID: acc.AccountID,
		Holder:    acc.Holder,
		Variant:   acc.Variant,
		Balance:   acc.Balance,
	}
	switch acc.Variant {
	case domain.Checking:
		resp.WithdrawalFee = &acc.WithdrawalFee
	case domain.Savings:
		resp.MonthlyInterestRate = &acc.MonthlyInterestRate
		resp.FreeWithdrawalsPerMonth = &acc.FreeWithdrawalsPerMonth
		resp.WithdrawalsThisMonth = &acc.WithdrawalsThisMonth
	case domain.Business:
		resp.WithdrawalLimit = &acc.WithdrawalLimit
		resp.Manager = acc.Manager
	}
	return resp
}

// ToListAccountResponse converts a slice of domain.AccountSnapshot to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.AccountSnapshot) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(acc)
	}
	return res
}

// ListAccountsRequest carries the paging parameters of the account list.
type ListAccountsRequest struct {
	Limit     int    `form:"limit" binding:"omitempty,gte=0"`
	NextToken string `form:"nextToken"`
}

// ListAccountsResponse wraps one page of accounts.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken string            `json:"nextToken,omitempty"` // Empty on the last page
}

// OperationResponse is returned after a deposit or withdrawal.
type OperationResponse struct {
	Applied  bool             `json:"applied"` // False for non-positive amounts
	Movement *domain.Movement `json:"movement,omitempty"`
	Account  AccountResponse  `json:"account"`
}

// ToOperationResponse converts a domain.OperationResult to its DTO.
func ToOperationResponse(res *domain.OperationResult) OperationResponse {
	return OperationResponse{
		Applied:  res.Applied(),
		Movement: res.Movement,
		Account:  ToAccountResponse(res.Account),
	}
}

// AccrualResponse reports the interest credited or fee charged by an accrual run.
type AccrualResponse struct {
	AccountID string  `json:"accountID"`
	Adjusted  float64 `json:"adjusted"` // Negative for fees
	Balance   float64 `json:"balance"`
}

// ToAccrualResponse converts a domain.AccrualResult to its DTO.
func ToAccrualResponse(res *domain.AccrualResult) AccrualResponse {
	return AccrualResponse{
		AccountID: res.Account.AccountID,
		Adjusted:  res.Adjusted,
		Balance:   res.Account.Balance,
	}
}

// AccrualRunResponse maps each account ID to its adjustment in a month-end run.
type AccrualRunResponse struct {
	Adjustments map[string]float64 `json:"adjustments"`
}

// ErrorResponse carries a business error and, when present, its chained cause.
type ErrorResponse struct {
	Error string `json:"error"`
	Cause string `json:"cause,omitempty"`
}
