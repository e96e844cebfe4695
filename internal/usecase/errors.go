package usecase

import (
	"errors"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
