package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
)

type repos struct {
	s  *Store
	tx *txn
}

type (
	sellerRepo        repos
	walletRepo        repos
	transactionRepo   repos
	commissionRepo    repos
	withdrawalRepo    repos
	advertisementRepo repos
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}

func page[T any](rows []*T, page, limit int) ([]*T, int64) {
	_, limit, offset := domain.NormalizePage(page, limit)
	total := int64(len(rows))
	if offset >= len(rows) {
		return []*T{}, total
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], total
}

// sellers

func (r *sellerRepo) stage() *stage[domain.Seller] {
	if r.tx == nil {
		return nil
	}
	return r.tx.sellers
}

func (r *sellerRepo) GetSellerByID(_ context.Context, sellerID string) (*domain.Seller, error) {
	seller, ok := lookup(&r.s.mu, &r.s.sellers, r.stage(), sellerID)
	if !ok {
		return nil, notFound("seller", sellerID)
	}
	if seller.BankAccount != nil {
		account := *seller.BankAccount
		seller.BankAccount = &account
	}
	return seller, nil
}

func (r *sellerRepo) SaveSeller(_ context.Context, seller *domain.Seller) error {
	cp := *seller
	if seller.BankAccount != nil {
		account := *seller.BankAccount
		cp.BankAccount = &account
	}
	save(&r.s.mu, &r.s.sellers, r.stage(), seller.ID, &cp)
	return nil
}

// wallets are keyed by seller id

func (r *walletRepo) stage() *stage[domain.SellerWallet] {
	if r.tx == nil {
		return nil
	}
	return r.tx.wallets
}

func (r *walletRepo) GetWalletBySellerID(_ context.Context, sellerID string) (*domain.SellerWallet, error) {
	wallet, ok := lookup(&r.s.mu, &r.s.wallets, r.stage(), sellerID)
	if !ok {
		return nil, notFound("wallet of seller", sellerID)
	}
	return wallet, nil
}

func (r *walletRepo) SaveWallet(_ context.Context, wallet *domain.SellerWallet) error {
	save(&r.s.mu, &r.s.wallets, r.stage(), wallet.SellerID, wallet)
	return nil
}

// transactions

func (r *transactionRepo) stage() *stage[domain.Transaction] {
	if r.tx == nil {
		return nil
	}
	return r.tx.transactions
}

func (r *transactionRepo) AppendTransaction(_ context.Context, tx *domain.Transaction) error {
	if _, exists := lookup(&r.s.mu, &r.s.transactions, r.stage(), tx.ID); exists {
		return fmt.Errorf("transaction %s already exists", tx.ID)
	}
	save(&r.s.mu, &r.s.transactions, r.stage(), tx.ID, tx)
	return nil
}

func (r *transactionRepo) UpdateTransactionStatus(_ context.Context, txID string, status domain.TransactionStatus) error {
	tx, ok := lookup(&r.s.mu, &r.s.transactions, r.stage(), txID)
	if !ok {
		return notFound("transaction", txID)
	}
	tx.Status = status
	save(&r.s.mu, &r.s.transactions, r.stage(), txID, tx)
	return nil
}

func (r *transactionRepo) ListTransactionsBySellerID(_ context.Context, sellerID string, p, limit int) ([]*domain.Transaction, int64, error) {
	rows := scan(&r.s.mu, &r.s.transactions, r.stage(), func(t *domain.Transaction) bool {
		return t.SellerID == sellerID
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	out, total := page(rows, p, limit)
	return out, total, nil
}

func maturedEarning(now time.Time) func(t *domain.Transaction) bool {
	return func(t *domain.Transaction) bool {
		return t.Type == domain.TxEarning && t.Status == domain.TxStatusPending &&
			t.ClearsAt != nil && !t.ClearsAt.After(now)
	}
}

func (r *transactionRepo) FindMaturedEarnings(_ context.Context, now time.Time, limit int) ([]*domain.Transaction, error) {
	rows := scan(&r.s.mu, &r.s.transactions, r.stage(), maturedEarning(now))
	sort.Slice(rows, func(i, j int) bool { return rows[i].ClearsAt.Before(*rows[j].ClearsAt) })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *transactionRepo) ListMaturedEarningsBySellerID(_ context.Context, sellerID string, now time.Time) ([]*domain.Transaction, error) {
	matured := maturedEarning(now)
	rows := scan(&r.s.mu, &r.s.transactions, r.stage(), func(t *domain.Transaction) bool {
		return t.SellerID == sellerID && matured(t)
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].ClearsAt.Before(*rows[j].ClearsAt) })
	return rows, nil
}

// commissions

func (r *commissionRepo) stage() *stage[domain.Commission] {
	if r.tx == nil {
		return nil
	}
	return r.tx.commissions
}

func (r *commissionRepo) CreateCommission(ctx context.Context, c *domain.Commission) error {
	if r.tx == nil {
		// direct writes check and insert under one lock
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		if r.s.commissionByLineItem(c.OrderID, c.LineItemID) != nil {
			return lineItemTaken(c)
		}
		cp := *c
		r.s.commissions.rows[c.ID] = &cp
		return nil
	}
	if _, err := r.GetCommissionByLineItem(ctx, c.OrderID, c.LineItemID); err == nil {
		return lineItemTaken(c)
	}
	save(&r.s.mu, &r.s.commissions, r.stage(), c.ID, c)
	return nil
}

func lineItemTaken(c *domain.Commission) error {
	return fmt.Errorf("%w: commission for order %s line %s already exists", domain.ErrInvalidInput, c.OrderID, c.LineItemID)
}

func (r *commissionRepo) UpdateCommission(_ context.Context, c *domain.Commission) error {
	if _, ok := lookup(&r.s.mu, &r.s.commissions, r.stage(), c.ID); !ok {
		return notFound("commission", c.ID)
	}
	save(&r.s.mu, &r.s.commissions, r.stage(), c.ID, c)
	return nil
}

func (r *commissionRepo) GetCommissionByID(_ context.Context, commissionID string) (*domain.Commission, error) {
	c, ok := lookup(&r.s.mu, &r.s.commissions, r.stage(), commissionID)
	if !ok {
		return nil, notFound("commission", commissionID)
	}
	return c, nil
}

func (r *commissionRepo) GetCommissionByLineItem(_ context.Context, orderID, lineItemID string) (*domain.Commission, error) {
	rows := scan(&r.s.mu, &r.s.commissions, r.stage(), func(c *domain.Commission) bool {
		return c.OrderID == orderID && c.LineItemID == lineItemID
	})
	if len(rows) == 0 {
		return nil, notFound("commission for order", orderID+"/"+lineItemID)
	}
	return rows[0], nil
}

func (r *commissionRepo) ListCommissionsBySellerID(_ context.Context, sellerID string, p, limit int) ([]*domain.Commission, int64, error) {
	rows := scan(&r.s.mu, &r.s.commissions, r.stage(), func(c *domain.Commission) bool {
		return c.SellerID == sellerID
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	out, total := page(rows, p, limit)
	return out, total, nil
}

// withdrawals

func (r *withdrawalRepo) stage() *stage[domain.WithdrawalRequest] {
	if r.tx == nil {
		return nil
	}
	return r.tx.withdrawals
}

func (r *withdrawalRepo) CreateWithdrawal(_ context.Context, w *domain.WithdrawalRequest) error {
	save(&r.s.mu, &r.s.withdrawals, r.stage(), w.ID, w)
	return nil
}

func (r *withdrawalRepo) UpdateWithdrawal(_ context.Context, w *domain.WithdrawalRequest) error {
	if _, ok := lookup(&r.s.mu, &r.s.withdrawals, r.stage(), w.ID); !ok {
		return notFound("withdrawal", w.ID)
	}
	save(&r.s.mu, &r.s.withdrawals, r.stage(), w.ID, w)
	return nil
}

func (r *withdrawalRepo) GetWithdrawalByID(_ context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	w, ok := lookup(&r.s.mu, &r.s.withdrawals, r.stage(), withdrawalID)
	if !ok {
		return nil, notFound("withdrawal", withdrawalID)
	}
	return w, nil
}

func (r *withdrawalRepo) ListWithdrawalsBySellerID(_ context.Context, sellerID string) ([]*domain.WithdrawalRequest, error) {
	rows := scan(&r.s.mu, &r.s.withdrawals, r.stage(), func(w *domain.WithdrawalRequest) bool {
		return w.SellerID == sellerID
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].RequestedAt.After(rows[j].RequestedAt) })
	return rows, nil
}

// advertisements

func (r *advertisementRepo) stage() *stage[domain.Advertisement] {
	if r.tx == nil {
		return nil
	}
	return r.tx.ads
}

func (r *advertisementRepo) CreateAdvertisement(_ context.Context, ad *domain.Advertisement) error {
	save(&r.s.mu, &r.s.ads, r.stage(), ad.ID, ad)
	return nil
}

func (r *advertisementRepo) UpdateAdvertisement(_ context.Context, ad *domain.Advertisement) error {
	if _, ok := lookup(&r.s.mu, &r.s.ads, r.stage(), ad.ID); !ok {
		return notFound("advertisement", ad.ID)
	}
	save(&r.s.mu, &r.s.ads, r.stage(), ad.ID, ad)
	return nil
}

func (r *advertisementRepo) DeleteAdvertisement(_ context.Context, adID string) error {
	if _, ok := lookup(&r.s.mu, &r.s.ads, r.stage(), adID); !ok {
		return notFound("advertisement", adID)
	}
	remove(&r.s.mu, &r.s.ads, r.stage(), adID)
	return nil
}

func (r *advertisementRepo) GetAdvertisementByID(_ context.Context, adID string) (*domain.Advertisement, error) {
	ad, ok := lookup(&r.s.mu, &r.s.ads, r.stage(), adID)
	if !ok {
		return nil, notFound("advertisement", adID)
	}
	return ad, nil
}

func (r *advertisementRepo) ListAdvertisementsBySellerID(_ context.Context, sellerID string) ([]*domain.Advertisement, error) {
	rows := scan(&r.s.mu, &r.s.ads, r.stage(), func(ad *domain.Advertisement) bool {
		return ad.SellerID == sellerID
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}
