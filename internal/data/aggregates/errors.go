package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("aggregate validation")
	// ErrInvariant indicates invariant rule violation.
	ErrInvariant = errors.New("aggregate invariant violation")
	// ErrConflict indicates optimistic/concurrency conflict.
	ErrConflict = errors.New("aggregate conflict")
	// ErrNotFound indicates the target entity is absent within the caller's tenant.
	ErrNotFound = errors.New("aggregate not found")
	// ErrRetryable indicates transient retryable failure.
	ErrRetryable = errors.New("aggregate retryable")
)

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

// InvariantError tags an error as invariant violation.
func InvariantError(msg string) error {
	return errors.Join(ErrInvariant, errors.New(strings.TrimSpace(msg)))
}

// ConflictError tags an error as conflict failure.
func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

// NotFoundError tags an error as a tenant-scoped miss. Cross-tenant hits use
// the same tag so existence never leaks across institutions.
func NotFoundError(msg string) error {
	return errors.Join(ErrNotFound, errors.New(strings.TrimSpace(msg)))
}

// RetryableError tags an error as retryable failure.
func RetryableError(msg string) error {
	return errors.Join(ErrRetryable, errors.New(strings.TrimSpace(msg)))
}

// MapError maps infrastructure/domain failures into aggregate error codes.
// Tagged errors keep their caller-facing message; storage errors (pgconn,
// gorm) get a curated message with the original kept as Cause, so driver
// text like constraint names never rides along into responses.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*domainagg.Error); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrValidation):
		return mapTagged(domainagg.CodeValidation, op, err, ErrValidation)
	case errors.Is(err, ErrInvariant):
		return mapTagged(domainagg.CodeInvariantViolation, op, err, ErrInvariant)
	case errors.Is(err, ErrConflict):
		return mapTagged(domainagg.CodeConflict, op, err, ErrConflict)
	case errors.Is(err, ErrNotFound):
		return mapTagged(domainagg.CodeNotFound, op, err, ErrNotFound)
	case errors.Is(err, ErrRetryable):
		return mapTagged(domainagg.CodeRetryable, op, err, ErrRetryable)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.NewError(domainagg.CodeNotFound, op, "record not found", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.NewError(domainagg.CodeRetryable, op, "request canceled", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.NewError(domainagg.CodeConflict, op, "conflicting write", err) // unique_violation
		case "40001", "40P01", "55P03":
			return domainagg.NewError(domainagg.CodeRetryable, op, "transient storage failure", err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "already exists"):
		return domainagg.NewError(domainagg.CodeConflict, op, "conflicting write", err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "temporar"):
		return domainagg.NewError(domainagg.CodeRetryable, op, "transient storage failure", err)
	default:
		return domainagg.NewError(domainagg.CodeInternal, op, "storage failure", err)
	}
}

// mapTagged lifts a tagged error into the domain error, dropping the tag
// prefix from the message when it leads.
func mapTagged(code domainagg.ErrorCode, op string, err, tag error) error {
	msg := strings.TrimSpace(strings.TrimPrefix(err.Error(), tag.Error()))
	return domainagg.NewError(code, op, msg, err)
}
