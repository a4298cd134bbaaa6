package domain

// OperationResult is the outcome of a deposit or withdrawal applied through the
// registry. Movement is nil when the request was a no-op (non-positive amount).
// Account is the state right after the operation.
type OperationResult struct {
	Account  AccountSnapshot
	Movement *Movement
}

// Applied reports whether the operation changed the account.
func (r *OperationResult) Applied() bool {
	return r != nil && r.Movement != nil
}

// AccrualResult is the signed interest or fee posted on one account and the
// account state right after it.
type AccrualResult struct {
	Adjusted float64
	Account  AccountSnapshot
}
