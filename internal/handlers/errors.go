package handlers

import (
	"errors"
	"net/http"

	"gescom/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP statuses. The caller only
// ever sees a classified error, never a raw driver fault.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrIntegrity), errors.Is(err, apperr.ErrSyncConflict):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrNetwork):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
