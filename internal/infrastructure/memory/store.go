// Package memory keeps the settlement state in process. It backs tests and the
// `storage.driver: memory` mode; postgres is the production store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
)

type Store struct {
	mu    sync.RWMutex
	locks *keyedMutex

	sellers      table[domain.Seller]
	wallets      table[domain.SellerWallet]
	transactions table[domain.Transaction]
	commissions  table[domain.Commission]
	withdrawals  table[domain.WithdrawalRequest]
	ads          table[domain.Advertisement]
}

func NewStore() *Store {
	return &Store{
		locks:        newKeyedMutex(),
		sellers:      newTable[domain.Seller](),
		wallets:      newTable[domain.SellerWallet](),
		transactions: newTable[domain.Transaction](),
		commissions:  newTable[domain.Commission](),
		withdrawals:  newTable[domain.WithdrawalRequest](),
		ads:          newTable[domain.Advertisement](),
	}
}

// txn is the write set of one Do call.
type txn struct {
	sellers      *stage[domain.Seller]
	wallets      *stage[domain.SellerWallet]
	transactions *stage[domain.Transaction]
	commissions  *stage[domain.Commission]
	withdrawals  *stage[domain.WithdrawalRequest]
	ads          *stage[domain.Advertisement]
}

func newTxn() *txn {
	return &txn{
		sellers:      newStage[domain.Seller](),
		wallets:      newStage[domain.SellerWallet](),
		transactions: newStage[domain.Transaction](),
		commissions:  newStage[domain.Commission](),
		withdrawals:  newStage[domain.WithdrawalRequest](),
		ads:          newStage[domain.Advertisement](),
	}
}

// Repositories returns non-transactional repositories; each write is applied immediately.
func (s *Store) Repositories() domain.Repositories {
	return s.repositories(nil)
}

func (s *Store) repositories(tx *txn) domain.Repositories {
	r := &repos{s: s, tx: tx}
	return domain.Repositories{
		Sellers:        (*sellerRepo)(r),
		Wallets:        (*walletRepo)(r),
		Transactions:   (*transactionRepo)(r),
		Commissions:    (*commissionRepo)(r),
		Withdrawals:    (*withdrawalRepo)(r),
		Advertisements: (*advertisementRepo)(r),
	}
}

// Do implements domain.UnitOfWork.
func (s *Store) Do(ctx context.Context, sellerID string, fn func(repos domain.Repositories) error) error {
	unlock := s.locks.Lock(sellerID)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := newTxn()
	if err := fn(s.repositories(tx)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkCommissionLineItems(tx.commissions); err != nil {
		return err
	}
	tx.sellers.apply(&s.sellers)
	tx.wallets.apply(&s.wallets)
	tx.transactions.apply(&s.transactions)
	tx.commissions.apply(&s.commissions)
	tx.withdrawals.apply(&s.withdrawals)
	tx.ads.apply(&s.ads)
	return nil
}

// checkCommissionLineItems rejects staged commissions whose line item was
// committed meanwhile under another seller's lock. Caller holds s.mu.
func (s *Store) checkCommissionLineItems(st *stage[domain.Commission]) error {
	for id, staged := range st.rows {
		if existing := s.commissionByLineItem(staged.OrderID, staged.LineItemID); existing != nil && existing.ID != id {
			return fmt.Errorf("%w: commission for order %s line %s already exists", domain.ErrInvalidInput, staged.OrderID, staged.LineItemID)
		}
	}
	return nil
}

func (s *Store) commissionByLineItem(orderID, lineItemID string) *domain.Commission {
	for _, c := range s.commissions.rows {
		if c.OrderID == orderID && c.LineItemID == lineItemID {
			return c
		}
	}
	return nil
}
