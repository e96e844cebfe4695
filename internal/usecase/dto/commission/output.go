package commissiondto

import "github.com/LavaJover/shvark-settlement-service/internal/domain"

type CommissionsPage struct {
	Commissions []*domain.Commission
	Total       int64
	Page        int
	Limit       int
}
