package repositories

import (
	"context"

	"github.com/SscSPs/account_movements/internal/core/domain"
)

// MovementAppender defines write operations for the movement log
type MovementAppender interface {
	// AppendMovement durably appends one movement record to the stream of its kind.
	AppendMovement(ctx context.Context, record domain.MovementRecord) error
}

// MovementScanner defines read operations for the movement log
type MovementScanner interface {
	// LoadMovementsForAccount returns the movements of the given kind recorded for accountID,
	// in the order they were appended. Unreadable entries are skipped.
	LoadMovementsForAccount(ctx context.Context, kind domain.MovementKind, accountID string) ([]domain.Movement, error)
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementAppender
	MovementScanner
}
