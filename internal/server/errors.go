package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kartikn/roomfund/internal/auth"
	"github.com/kartikn/roomfund/internal/ledger"
	"github.com/kartikn/roomfund/internal/service"
	"github.com/kartikn/roomfund/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

// abortWithError maps the domain error taxonomy onto HTTP status codes and
// writes a JSON error body. Unrecognized errors become opaque 500s.
func abortWithError(c *gin.Context, err error) {
	status := statusFromError(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		message = "internal error"
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

func statusFromError(err error) int {
	var splitErr *service.SplitMemberError
	var integrityErr *ledger.IntegrityError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrCredentialRequired),
		errors.Is(err, auth.ErrInvalidCredential),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, storage.ErrLastAdmin),
		errors.Is(err, service.ErrNegativeAmount),
		errors.Is(err, service.ErrEmptySplit),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrNotRoomMember):
		return http.StatusBadRequest
	case errors.As(err, &splitErr):
		return http.StatusBadRequest
	case errors.As(err, &integrityErr):
		// Corrupted referential state. Already logged loudly by the service.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
