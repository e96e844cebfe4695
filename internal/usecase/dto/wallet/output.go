package walletdto

import "github.com/LavaJover/shvark-settlement-service/internal/domain"

type TransactionsPage struct {
	Transactions []*domain.Transaction
	Total        int64
	Page         int
	Limit        int
}

type MutationOutput struct {
	Wallet      *domain.SellerWallet
	Transaction *domain.Transaction
}
