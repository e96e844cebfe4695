package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// dbErr maps driver errors onto domain errors. what names the looked up row.
func dbErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return Classify(err)
}

// Classify marks connectivity and serialization failures as domain.ErrTransient.
// Everything else, domain errors included, is returned unchanged.
func Classify(err error) error {
	if err == nil || errors.Is(err, domain.ErrTransient) {
		return err
	}
	if isTransient(err) {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "57P01", "08000", "08003", "08006":
			return true
		}
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}
