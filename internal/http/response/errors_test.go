package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
)

func TestRespondDomainErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		code domainagg.ErrorCode
		want int
	}{
		{domainagg.CodeValidation, http.StatusBadRequest},
		{domainagg.CodeUnauthenticated, http.StatusUnauthorized},
		{domainagg.CodeNotFound, http.StatusNotFound},
		{domainagg.CodeConflict, http.StatusConflict},
		{domainagg.CodeInvariantViolation, http.StatusConflict},
		{domainagg.CodeRetryable, http.StatusServiceUnavailable},
		{domainagg.CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RespondDomainError(c, domainagg.NewError(tc.code, "Test.Op", "boom", nil))

			if rec.Code != tc.want {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.want)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if env.Error.Code != string(tc.code) {
				t.Fatalf("code: got=%q want=%q", env.Error.Code, tc.code)
			}
		})
	}
}

func TestRespondDomainErrorHidesStorageDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			"internal collapses to fixed text",
			domainagg.NewError(domainagg.CodeInternal, "Test.Op",
				`duplicate key value violates unique constraint "idx_page_institution_slug"`, nil),
			"internal error",
		},
		{
			"retryable collapses to fixed text",
			domainagg.NewError(domainagg.CodeRetryable, "Test.Op", "deadlock detected on relation page", nil),
			"service temporarily unavailable",
		},
		{
			"conflict keeps its curated message",
			domainagg.NewError(domainagg.CodeConflict, "Test.Op", "conflicting write", nil),
			"conflicting write",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RespondDomainError(c, tc.err)

			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if env.Error.Message != tc.want {
				t.Fatalf("message: got=%q want=%q", env.Error.Message, tc.want)
			}
			if strings.Contains(rec.Body.String(), "constraint") || strings.Contains(rec.Body.String(), "deadlock") {
				t.Fatalf("storage detail leaked: %s", rec.Body.String())
			}
		})
	}
}

func TestRespondDomainErrorUnknownFallsBackToInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondDomainError(c, http.ErrServerClosed)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}
}
