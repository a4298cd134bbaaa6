package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// AccountNumberDigits is the length of numeric account numbers.
const AccountNumberDigits = 6

var accountNumberSpace = big.NewInt(1_000_000)

// NumericAccountIDGenerator draws zero-padded six-digit account numbers from a
// cryptographically secure source. Numbers may repeat; callers check uniqueness.
type NumericAccountIDGenerator struct{}

// NextAccountID returns a number in 000000..999999.
func (NumericAccountIDGenerator) NextAccountID() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberSpace)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%0*d", AccountNumberDigits, n.Int64()), nil
}

// UUIDAccountIDGenerator issues random UUIDv4 account identifiers.
type UUIDAccountIDGenerator struct{}

// NextAccountID returns a new UUID string.
func (UUIDAccountIDGenerator) NextAccountID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate account id: %w", err)
	}
	return id.String(), nil
}
