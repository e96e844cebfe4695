package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	walletResponse "github.com/LavaJover/shvark-settlement-service/internal/delivery/http/dto/wallet/response"
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/gin-gonic/gin"
)

// StatusFor maps a usecase error onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidBankAccount),
		errors.Is(err, domain.ErrBelowMinimumWithdrawal),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrIdempotencyConflict):
		return http.StatusConflict
	case domain.IsRetryable(err):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, walletResponse.ErrorResponse{
		Success:   false,
		Error:     message,
		Retryable: status == http.StatusServiceUnavailable,
	})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, walletResponse.ErrorResponse{Success: false, Error: message})
}
