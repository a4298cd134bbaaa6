package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/account_movements/internal/apperrors"
	"github.com/SscSPs/account_movements/internal/core/domain"
	portsrepo "github.com/SscSPs/account_movements/internal/core/ports/repositories"
	"github.com/SscSPs/account_movements/internal/models"
	"github.com/SscSPs/account_movements/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxMovementRepository stores movements in the account_movements table.
type PgxMovementRepository struct {
	BaseRepository
}

// NewPgxMovementRepository creates a new repository for movement data.
func NewPgxMovementRepository(pool *pgxpool.Pool) *PgxMovementRepository {
	return &PgxMovementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

// AppendMovement inserts one movement row.
func (r *PgxMovementRepository) AppendMovement(ctx context.Context, record domain.MovementRecord) error {
	if !record.Kind.IsValid() {
		return fmt.Errorf("%w: unknown movement kind %q", apperrors.ErrValidation, record.Kind)
	}
	modelMov := mapping.ToModelMovement(uuid.NewString(), record, time.Now())

	query := `
		INSERT INTO account_movements (movement_id, account_id, kind, amount, resulting_balance, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelMov.MovementID,
		modelMov.AccountID,
		modelMov.Kind,
		modelMov.Amount,
		modelMov.ResultingBalance,
		modelMov.OccurredAt,
		modelMov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save movement for account %s: %w", modelMov.AccountID, translateError(err))
	}
	return nil
}

// LoadMovementsForAccount returns the account's movements of one kind, oldest first.
func (r *PgxMovementRepository) LoadMovementsForAccount(ctx context.Context, kind domain.MovementKind, accountID string) ([]domain.Movement, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown movement kind %q", apperrors.ErrValidation, kind)
	}

	query := `
		SELECT movement_id, account_id, kind, amount, resulting_balance, occurred_at, created_at
		FROM account_movements
		WHERE account_id = $1 AND kind = $2
		ORDER BY occurred_at, seq;
	`

	rows, err := r.Pool.Query(ctx, query, accountID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for account %s: %w", accountID, err)
	}

	modelMovs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Movement])
	if err != nil {
		return nil, fmt.Errorf("failed to scan movements for account %s: %w", accountID, err)
	}

	return mapping.ToDomainMovementSlice(modelMovs), nil
}
