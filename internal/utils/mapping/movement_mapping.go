package mapping

import (
	"time"

	"github.com/SscSPs/account_movements/internal/core/domain"
	"github.com/SscSPs/account_movements/internal/models"
	"github.com/SscSPs/account_movements/internal/utils"
	"github.com/shopspring/decimal"
)

// ToModelMovement converts a domain MovementRecord to a model Movement.
// Amounts are rounded to cents, the precision of the column.
func ToModelMovement(movementID string, rec domain.MovementRecord, now time.Time) models.Movement {
	return models.Movement{
		MovementID:       movementID,
		AccountID:        rec.AccountID,
		Kind:             string(rec.Kind),
		Amount:           decimal.NewFromFloat(rec.Amount).Round(utils.AmountPrecision),
		ResultingBalance: decimal.NewFromFloat(rec.ResultingBalance).Round(utils.AmountPrecision),
		OccurredAt:       rec.Timestamp,
		CreatedAt:        now,
	}
}

// ToDomainMovement converts a model Movement to a domain Movement.
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.NewMovement(domain.MovementKind(m.Kind), m.Amount.InexactFloat64(), m.OccurredAt.In(time.Local))
}

// ToDomainMovementSlice converts a slice of model Movements to domain Movements.
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	movements := make([]domain.Movement, len(ms))
	for i, m := range ms {
		movements[i] = ToDomainMovement(m)
	}
	return movements
}
