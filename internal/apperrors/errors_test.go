package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/account_movements/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientFundsError(t *testing.T) {
	err := apperrors.NewInsufficientFunds(1505)

	assert.Contains(t, err.Error(), "1505.00")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidOperation)
}

func TestInvalidOperationError_Chained(t *testing.T) {
	cause := apperrors.NewInsufficientFunds(1505)
	err := apperrors.NewInvalidOperation("withdrawal rejected", cause)

	assert.Equal(t, "withdrawal rejected", err.Error())
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	var root *apperrors.InsufficientFundsError
	require.ErrorAs(t, err, &root)
	assert.Equal(t, 1505.0, root.Required)
	assert.Equal(t, cause.Error(), apperrors.CauseMessage(err))
}

func TestInvalidOperationError_WithoutCause(t *testing.T) {
	err := apperrors.NewInvalidOperation("limit exceeded", nil)

	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	assert.NotErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Nil(t, errors.Unwrap(err))
	assert.Empty(t, apperrors.CauseMessage(err))
}

func TestCauseMessage_ThroughWrapping(t *testing.T) {
	inner := apperrors.NewInvalidOperation("rejected", apperrors.NewInsufficientFunds(20))
	wrapped := fmt.Errorf("withdraw from 000123: %w", inner)

	assert.Contains(t, apperrors.CauseMessage(wrapped), "20.00")
	assert.Empty(t, apperrors.CauseMessage(apperrors.ErrNotFound))
}
