package aggregates

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
)

func TestMapErrorCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domainagg.ErrorCode
	}{
		{"validation tag", ValidationError("bad input"), domainagg.CodeValidation},
		{"invariant tag", InvariantError("broken"), domainagg.CodeInvariantViolation},
		{"conflict tag", ConflictError("taken"), domainagg.CodeConflict},
		{"not found tag", NotFoundError("missing"), domainagg.CodeNotFound},
		{"retryable tag", RetryableError("later"), domainagg.CodeRetryable},
		{"gorm record not found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{"context canceled", context.Canceled, domainagg.CodeRetryable},
		{"context deadline", context.DeadlineExceeded, domainagg.CodeRetryable},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, domainagg.CodeConflict},
		{"pg serialization failure", &pgconn.PgError{Code: "40001"}, domainagg.CodeRetryable},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, domainagg.CodeRetryable},
		{"duplicate key message", errors.New(`duplicate key value violates unique constraint "idx_version_page_number"`), domainagg.CodeConflict},
		{"unknown", errors.New("boom"), domainagg.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError("Test.Op", tc.err)
			if !domainagg.IsCode(got, tc.want) {
				t.Fatalf("MapError(%v): got code %q, want %q", tc.err, domainagg.CodeOf(got), tc.want)
			}
		})
	}
}

func TestMapErrorCuratesStorageMessages(t *testing.T) {
	pgDup := &pgconn.PgError{
		Code:    "23505",
		Message: `duplicate key value violates unique constraint "idx_page_institution_slug"`,
	}
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"pg unique violation", pgDup, "conflicting write"},
		{"pg deadlock", &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}, "transient storage failure"},
		{"duplicate key message", errors.New(`duplicate key value violates unique constraint "idx_version_page_number"`), "conflicting write"},
		{"unknown", errors.New("pq: connection reset"), "storage failure"},
		{"conflict tag keeps its text", ConflictError("slug taken"), "slug taken"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var aggErr *domainagg.Error
			if !errors.As(MapError("Test.Op", tc.err), &aggErr) {
				t.Fatal("expected a domain error")
			}
			if aggErr.Message != tc.want {
				t.Fatalf("message: got=%q want=%q", aggErr.Message, tc.want)
			}
			// The storage error stays reachable for logs.
			if aggErr.Cause == nil {
				t.Fatal("cause dropped")
			}
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	if MapError("Test.Op", nil) != nil {
		t.Fatal("nil must map to nil")
	}

	orig := domainagg.NewError(domainagg.CodeConflict, "Test.Op", "taken", nil)
	if got := MapError("Other.Op", orig); got != orig {
		t.Fatalf("already-mapped error must pass through, got %v", got)
	}

	wrapped := fmt.Errorf("tx failed: %w", ConflictError("taken"))
	if got := MapError("Test.Op", wrapped); !domainagg.IsCode(got, domainagg.CodeConflict) {
		t.Fatalf("wrapped tag: got code %q", domainagg.CodeOf(got))
	}
}
