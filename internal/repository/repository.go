package repository

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a row does not exist for the given tenant.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a conditional write finds the row no longer
// in the state the operation requires (already reconciled, already paid).
var ErrConflict = errors.New("record already processed")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}
