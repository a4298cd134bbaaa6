package pagination

import (
	"encoding/base64"
	"fmt"
)

// DefaultLimit and MaxLimit bound list page sizes.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// EncodeToken creates an opaque continuation token pointing after the given account.
func EncodeToken(lastAccountID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(lastAccountID))
}

// DecodeToken parses a token produced by EncodeToken back into the account ID.
func DecodeToken(token string) (string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	if len(decodedBytes) == 0 {
		return "", fmt.Errorf("invalid pagination token format (empty)")
	}
	return string(decodedBytes), nil
}

// ClampLimit maps a requested page size onto 1..MaxLimit, using DefaultLimit for zero or negative values.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Page returns the window of items that follows the item whose key is after,
// or the first window when after is empty. next is the key of the last item
// returned when more items remain, and empty otherwise. ok is false when after
// does not match any item.
func Page[T any](items []T, key func(T) string, after string, limit int) (page []T, next string, ok bool) {
	start := 0
	if after != "" {
		start = -1
		for i, item := range items {
			if key(item) == after {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, "", false
		}
	}

	end := min(start+ClampLimit(limit), len(items))
	page = items[start:end]
	if end < len(items) && len(page) > 0 {
		next = key(page[len(page)-1])
	}
	return page, next, true
}
