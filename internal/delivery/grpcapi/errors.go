package grpcapi

import (
	"errors"
	"log/slog"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func CodeFor(err error) codes.Code {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidBankAccount),
		errors.Is(err, domain.ErrBelowMinimumWithdrawal),
		errors.Is(err, domain.ErrInvalidInput):
		return codes.InvalidArgument
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrInvalidStateTransition):
		return codes.FailedPrecondition
	case errors.Is(err, domain.ErrIdempotencyConflict):
		return codes.AlreadyExists
	case domain.IsRetryable(err):
		return codes.Unavailable
	}
	return codes.Internal
}

func toStatus(method string, err error) error {
	code := CodeFor(err)
	if code == codes.Internal {
		slog.Error("admin call failed", "method", method, "error", err)
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}
