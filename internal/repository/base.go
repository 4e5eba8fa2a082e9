// Package repository implements the data access layer for JoinWork.
//
// Each collection gets a small interface (get by id, single-predicate
// lookups, insert, partial update, delete) so the service layer runs
// unchanged against the GORM store or the in-memory store.
package repository

import (
	"strings"

	"joinwork/internal/models"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL SQLSTATE 23505, SQLite "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// storeError wraps an unexpected persistence failure. Callers must not
// assume any write took effect.
func storeError(err error) error {
	return models.NewStoreUnavailableError(err)
}
