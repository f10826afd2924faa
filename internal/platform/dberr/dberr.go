// Copyright (c) 2026 UILove. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// The repository layer never lets a raw pgx error escape: every store
// failure is classified here so handlers only ever see [apperr.AppError]
// values (or wrapped internals).
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/uilove/uilove/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Classification:
//   - pgx.ErrNoRows                     -> NOT_FOUND
//   - SQLSTATE 23505 (unique_violation) -> CONFLICT (duplicate slug etc.)
//   - SQLSTATE 23503 (fk_violation)     -> CONFLICT (referenced row in use)
//   - anything else                     -> INTERNAL_ERROR
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.Conflict(resource + " is referenced by other records")
		}
	}

	return apperr.Internal(err)
}
