// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/tankobon/internal/platform/apperr"
)

// SQLSTATE codes the catalogue import reacts to.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeUndefinedTable  = "42P01"
)

// ErrNotFound is returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and converts it into an [apperr.AppError].
// The action names the failed operation and ends up in the logged cause only.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	cause := fmt.Errorf("%s: %w", action, err)

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound.WithCause(cause)
	}

	// 2. Cancelled or timed out queries mean the database did not answer in time
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.ServiceUnavailable("Database did not respond in time").WithCause(cause)
	}

	// 3. Constraint and schema violations carry their SQLSTATE
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			return apperr.ValidationError("Duplicate catalogue entry",
				apperr.FieldError{Field: pgError.ColumnName, Message: pgError.Detail},
			).WithCause(cause)
		case codeCheckViolation:
			return apperr.ValidationError("Catalogue entry violates a constraint",
				apperr.FieldError{Field: pgError.ConstraintName, Message: pgError.Message},
			).WithCause(cause)
		case codeUndefinedTable:
			return apperr.ServiceUnavailable("Catalogue schema is missing; run the migrations").WithCause(cause)
		}
	}

	// 4. Everything else is an Internal Server Error
	return apperr.Internal(cause)
}
