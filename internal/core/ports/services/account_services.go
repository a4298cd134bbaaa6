package services

import (
	"context"

	"github.com/SscSPs/account_movements/internal/core/domain"
	"github.com/SscSPs/account_movements/internal/dto"
)

// AccountIDGenerator hands out candidate account identifiers.
// Uniqueness is enforced by the registry, which retries until Exists is false.
type AccountIDGenerator interface {
	NextAccountID() (string, error)
}

// AccountReaderSvc defines read operations for registered accounts.
// Accounts are returned as snapshots; the live accounts never leave the registry.
type AccountReaderSvc interface {
	// FindByID returns the account or apperrors.ErrNotFound.
	FindByID(ctx context.Context, accountID string) (domain.AccountSnapshot, error)

	// Exists reports whether accountID is already registered.
	Exists(accountID string) bool

	// ListAccounts returns every account in creation order.
	ListAccounts(ctx context.Context) []domain.AccountSnapshot
}

// AccountWriterSvc defines balance-changing operations
type AccountWriterSvc interface {
	// CreateAccount registers a new account and deposits its initial balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (domain.AccountSnapshot, error)

	// Deposit credits an account and logs the movement.
	Deposit(ctx context.Context, accountID string, amount float64) (*domain.OperationResult, error)

	// Withdraw debits an account under its variant rules and logs the movement.
	Withdraw(ctx context.Context, accountID string, amount float64) (*domain.OperationResult, error)

	// AccrueInterestOrFee posts the periodic interest or fee of one account.
	AccrueInterestOrFee(ctx context.Context, accountID string) (*domain.AccrualResult, error)

	// AccrueAll posts interest or fees on every account, keyed by account ID.
	AccrueAll(ctx context.Context) map[string]float64
}

// MovementHistorySvc defines reconciliation of in-memory and logged movements
type MovementHistorySvc interface {
	// MovementHistory merges the account's in-memory movements with the store's.
	MovementHistory(ctx context.Context, accountID string) (*domain.MovementHistory, error)
}

// AccountRegistrySvc combines all registry-related service interfaces
// This is a facade for clients that need access to all operations
type AccountRegistrySvc interface {
	AccountReaderSvc
	AccountWriterSvc
	MovementHistorySvc
}
