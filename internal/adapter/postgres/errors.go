package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// Postgres error codes mapped onto domain sentinels.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeInvalidText          = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// Constraints whose violation means the row changed state underneath the
// caller rather than bad input.
var stateConstraints = map[string]bool{
	"trade_in_archived_at_matches_status": true,
}

// MapError converts pgx/pgconn errors to domain errors. id is formatted with
// %v, so uuids, telegram ids and strings all work.
//
// A failed column CHECK (postgres names it <table>_<column>_check) becomes a
// ValidationError on that column. Context errors pass through unmapped.
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s %v: %w", entity, id, err)
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrAlreadyExists)
	case codeForeignKeyViolation:
		return fmt.Errorf("%s %v: %s: %w", entity, id, pgErr.ConstraintName, domain.ErrNotFound)
	case codeCheckViolation:
		if stateConstraints[pgErr.ConstraintName] {
			return fmt.Errorf("%s %v: %s: %w", entity, id, pgErr.ConstraintName, domain.ErrConflict)
		}
		if col := checkedColumn(pgErr); col != "" {
			return fmt.Errorf("%s %v: %w", entity, id, domain.NewValidationError(col, "invalid value"))
		}
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrValidation)
	case codeInvalidText:
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrValidation)
	case codeSerializationFailure, codeDeadlockDetected:
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrConflict)
	}

	return fmt.Errorf("%s %v: %w", entity, id, err)
}

// checkedColumn extracts the column from an auto-named column CHECK.
func checkedColumn(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if pgErr.TableName == "" {
		return ""
	}
	col, ok := strings.CutPrefix(pgErr.ConstraintName, pgErr.TableName+"_")
	if !ok {
		return ""
	}
	col, ok = strings.CutSuffix(col, "_check")
	if !ok {
		return ""
	}
	return col
}
