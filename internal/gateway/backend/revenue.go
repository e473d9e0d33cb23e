package backend

import (
	"encoding/json"
	"fmt"
	"io"

	"swiftcourier-console/internal/domain"
)

// decodeOrderedSums reads a {"YYYY-MM-DD": amount, ...} object while keeping
// the backend's key order. encoding/json maps would shuffle the keys, and the
// revenue chart's category axis must list dates exactly as received, so the
// object is walked token by token instead.
func decodeOrderedSums(r io.Reader) ([]domain.RevenueEntry, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var entries []domain.RevenueEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		date, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected numeric revenue for %q, got %v", date, valTok)
		}
		amount, err := domain.MoneyFromString(num.String())
		if err != nil {
			return nil, fmt.Errorf("revenue for %q: %w", date, err)
		}
		entries = append(entries, domain.RevenueEntry{Date: date, Amount: amount})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
