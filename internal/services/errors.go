package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrFoundationNotFound marks a lookup or update that matched no row.
	ErrFoundationNotFound = errors.New("foundation not found")

	// ErrConstraintViolation marks a write the store rejected: duplicate
	// name, out-of-range fit score, unknown status value, or a broken
	// reference.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrInvalidInput marks caller input rejected before it reaches the
	// store.
	ErrInvalidInput = errors.New("invalid input")
)

// Postgres error codes the store surfaces for declared constraints.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidTextRep      = "22P02" // bad enum or literal input
)

// wrapStoreError translates constraint failures into the service error
// taxonomy and passes everything else through untouched.
func wrapStoreError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation, pgInvalidTextRep:
			return fmt.Errorf("%w: %s", ErrConstraintViolation, pgErr.Message)
		}
	}

	return err
}
