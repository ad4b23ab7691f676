package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/campuscms/backend/internal/data/aggregates/testutil"
	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
	"github.com/campuscms/backend/internal/platform/dbctx"
)

func TestExecuteWriteCommitsOnSuccess(t *testing.T) {
	runner := &testutil.InjectedTxRunner{}
	deps := BaseDeps{Runner: runner}

	ran := false
	err := executeWrite(context.Background(), deps, "Test.Op", func(dbc dbctx.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("executeWrite: %v", err)
	}
	if !ran {
		t.Fatal("body did not run")
	}
	if runner.CommitCalls != 1 || runner.RollbackCalls != 0 {
		t.Fatalf("unexpected tx accounting: commits=%d rollbacks=%d", runner.CommitCalls, runner.RollbackCalls)
	}
}

func TestExecuteWriteRollsBackAndMaps(t *testing.T) {
	runner := &testutil.InjectedTxRunner{}
	deps := BaseDeps{Runner: runner}

	err := executeWrite(context.Background(), deps, "Test.Op", func(dbc dbctx.Context) error {
		return ConflictError("slug taken")
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if runner.CommitCalls != 0 || runner.RollbackCalls != 1 {
		t.Fatalf("unexpected tx accounting: commits=%d rollbacks=%d", runner.CommitCalls, runner.RollbackCalls)
	}
}

func TestExecuteWriteBeginFailure(t *testing.T) {
	boom := errors.New("connection refused")
	runner := &testutil.InjectedTxRunner{FailBegin: boom}
	deps := BaseDeps{Runner: runner}

	err := executeWrite(context.Background(), deps, "Test.Op", func(dbc dbctx.Context) error {
		t.Fatal("body must not run when begin fails")
		return nil
	})
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal, got %v", err)
	}
}

func TestExecuteWriteCommitFailure(t *testing.T) {
	runner := &testutil.InjectedTxRunner{FailCommit: errors.New("serialization failure")}
	deps := BaseDeps{Runner: runner}

	err := executeWrite(context.Background(), deps, "Test.Op", func(dbc dbctx.Context) error {
		return nil
	})
	if !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("expected retryable, got %v", err)
	}
}

func TestNormalizeAndValidateSlug(t *testing.T) {
	if got := NormalizeSlug("  About-Us "); got != "about-us" {
		t.Fatalf("NormalizeSlug: got %q", got)
	}

	valid := []string{"home", "about-us", "course-101", "a"}
	for _, s := range valid {
		if err := validateSlug(s); err != nil {
			t.Fatalf("validateSlug(%q): %v", s, err)
		}
	}
	invalid := []string{"", "-lead", "trail-", "two--dashes", "UPPER", "with space", "üñï", "slash/y"}
	for _, s := range invalid {
		if err := validateSlug(s); err == nil {
			t.Fatalf("validateSlug(%q): expected error", s)
		}
	}
}
