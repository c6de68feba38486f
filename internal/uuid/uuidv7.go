// Package uuid generates time-ordered UUIDv7 identifiers for database
// primary keys. Time ordering keeps index pages append-mostly, which matters
// for the share-price and transaction ledgers that only ever grow.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a new UUIDv7 string. If v7 generation fails (entropy
// exhaustion), it falls back to a random UUIDv4 so record creation never
// blocks on ID generation.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// Parse validates and normalizes a UUID string.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid reports whether s is a well-formed UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
