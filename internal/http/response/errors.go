package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
)

// RespondDomainError translates a service/aggregate error into the HTTP
// envelope. The body carries the error's PublicMessage, so unknown errors
// and storage-level causes collapse to generic text instead of leaking
// driver detail to clients.
func RespondDomainError(c *gin.Context, err error) {
	code := domainagg.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		code = domainagg.CodeInternal
		status = http.StatusInternalServerError
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: domainagg.PublicMessage(err),
			Code:    string(code),
		},
	})
}

var statusByCode = map[domainagg.ErrorCode]int{
	domainagg.CodeValidation:         http.StatusBadRequest,
	domainagg.CodeUnauthenticated:    http.StatusUnauthorized,
	domainagg.CodeNotFound:           http.StatusNotFound,
	domainagg.CodeConflict:           http.StatusConflict,
	domainagg.CodeInvariantViolation: http.StatusConflict,
	domainagg.CodeRetryable:          http.StatusServiceUnavailable,
	domainagg.CodeInternal:           http.StatusInternalServerError,
}
