package domain

import (
	"context"
	"time"
)

// Repository getters return ErrNotFound (possibly wrapped) for unknown ids.

type SellerRepository interface {
	GetSellerByID(ctx context.Context, sellerID string) (*Seller, error)
	SaveSeller(ctx context.Context, seller *Seller) error
}

type WalletRepository interface {
	GetWalletBySellerID(ctx context.Context, sellerID string) (*SellerWallet, error)
	SaveWallet(ctx context.Context, wallet *SellerWallet) error
}

type TransactionRepository interface {
	AppendTransaction(ctx context.Context, tx *Transaction) error
	UpdateTransactionStatus(ctx context.Context, txID string, status TransactionStatus) error
	ListTransactionsBySellerID(ctx context.Context, sellerID string, page, limit int) ([]*Transaction, int64, error)
	// FindMaturedEarnings returns pending earnings with ClearsAt <= now, oldest first.
	FindMaturedEarnings(ctx context.Context, now time.Time, limit int) ([]*Transaction, error)
	ListMaturedEarningsBySellerID(ctx context.Context, sellerID string, now time.Time) ([]*Transaction, error)
}

type CommissionRepository interface {
	CreateCommission(ctx context.Context, commission *Commission) error
	UpdateCommission(ctx context.Context, commission *Commission) error
	GetCommissionByID(ctx context.Context, commissionID string) (*Commission, error)
	GetCommissionByLineItem(ctx context.Context, orderID, lineItemID string) (*Commission, error)
	ListCommissionsBySellerID(ctx context.Context, sellerID string, page, limit int) ([]*Commission, int64, error)
}

type WithdrawalRepository interface {
	CreateWithdrawal(ctx context.Context, request *WithdrawalRequest) error
	UpdateWithdrawal(ctx context.Context, request *WithdrawalRequest) error
	GetWithdrawalByID(ctx context.Context, withdrawalID string) (*WithdrawalRequest, error)
	ListWithdrawalsBySellerID(ctx context.Context, sellerID string) ([]*WithdrawalRequest, error)
}

type AdvertisementRepository interface {
	CreateAdvertisement(ctx context.Context, ad *Advertisement) error
	UpdateAdvertisement(ctx context.Context, ad *Advertisement) error
	DeleteAdvertisement(ctx context.Context, adID string) error
	GetAdvertisementByID(ctx context.Context, adID string) (*Advertisement, error)
	ListAdvertisementsBySellerID(ctx context.Context, sellerID string) ([]*Advertisement, error)
}

type Repositories struct {
	Sellers        SellerRepository
	Wallets        WalletRepository
	Transactions   TransactionRepository
	Commissions    CommissionRepository
	Withdrawals    WithdrawalRepository
	Advertisements AdvertisementRepository
}

// UnitOfWork serializes work per seller. fn runs with exclusive access to the
// seller's wallet; everything written through the passed repositories commits
// together when fn returns nil and is discarded otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, sellerID string, fn func(repos Repositories) error) error
}

// IdempotencyStore remembers responses of balance-affecting requests.
type IdempotencyStore interface {
	// Reserve claims key for requestHash. It returns the stored response when the
	// key was already completed for the same hash, ErrIdempotencyConflict when
	// the hash differs or the key is still in flight.
	Reserve(ctx context.Context, key, requestHash string, ttl time.Duration) (*IdempotencyRecord, error)
	Complete(ctx context.Context, key string, record IdempotencyRecord, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

type IdempotencyRecord struct {
	RequestHash string `json:"request_hash"`
	StatusCode  int    `json:"status_code"`
	Body        []byte `json:"body"`
}
