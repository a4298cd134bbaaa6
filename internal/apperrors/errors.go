package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds matches any *InsufficientFundsError via errors.Is.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidOperation matches any *InvalidOperationError via errors.Is.
var ErrInvalidOperation = errors.New("invalid operation")

// InsufficientFundsError is raised by the base balance check when the balance
// cannot cover the requested debit.
type InsufficientFundsError struct {
	Required float64 // Total debit that was requested, fees included
}

// NewInsufficientFunds creates an InsufficientFundsError for the given debit.
func NewInsufficientFunds(required float64) *InsufficientFundsError {
	return &InsufficientFundsError{Required: required}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance for a debit of $%.2f", e.Required)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// InvalidOperationError reports a violated account rule. Cause is set when the
// rejection came from a balance shortfall and is nil for pure rule violations
// such as a withdrawal limit.
type InvalidOperationError struct {
	Message string
	Cause   error
}

// NewInvalidOperation creates an InvalidOperationError. cause may be nil.
func NewInvalidOperation(message string, cause error) *InvalidOperationError {
	return &InvalidOperationError{Message: message, Cause: cause}
}

func (e *InvalidOperationError) Error() string {
	return e.Message
}

func (e *InvalidOperationError) Unwrap() error {
	return e.Cause
}

func (e *InvalidOperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// CauseMessage returns the message of the cause chained inside an
// InvalidOperationError, or an empty string when there is none.
func CauseMessage(err error) string {
	var opErr *InvalidOperationError
	if !errors.As(err, &opErr) || opErr.Cause == nil {
		return ""
	}
	return opErr.Cause.Error()
}
