package dto

import (
	"time"

	"github.com/SscSPs/account_movements/internal/core/domain"
)

// MovementResponse is a single deposit or withdrawal as returned by the API.
type MovementResponse struct {
	Kind      domain.MovementKind `json:"kind"`
	Amount    float64             `json:"amount"`
	Timestamp time.Time           `json:"timestamp"`
}

// MovementHistoryResponse is the reconciled history of one account.
type MovementHistoryResponse struct {
	AccountID   string             `json:"accountID"`
	InMemory    bool               `json:"inMemory"`
	Deposits    []MovementResponse `json:"deposits"`
	Withdrawals []MovementResponse `json:"withdrawals"`
}

func toMovementResponses(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i, m := range movements {
		res[i] = MovementResponse{Kind: m.Kind, Amount: m.Amount, Timestamp: m.Timestamp}
	}
	return res
}

// ToMovementHistoryResponse converts a domain.MovementHistory to its DTO.
func ToMovementHistoryResponse(h *domain.MovementHistory) MovementHistoryResponse {
	return MovementHistoryResponse{
		AccountID:   h.AccountID,
		InMemory:    h.InMemory,
		Deposits:    toMovementResponses(h.Deposits),
		Withdrawals: toMovementResponses(h.Withdrawals),
	}
}
