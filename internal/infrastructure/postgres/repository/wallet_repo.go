package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultWalletRepository struct {
	DB *gorm.DB
}

func NewDefaultWalletRepository(db *gorm.DB) *DefaultWalletRepository {
	return &DefaultWalletRepository{DB: db}
}

func (r *DefaultWalletRepository) GetWalletBySellerID(ctx context.Context, sellerID string) (*domain.SellerWallet, error) {
	var model models.WalletModel
	if err := r.DB.WithContext(ctx).First(&model, "seller_id = ?", sellerID).Error; err != nil {
		return nil, dbErr(err, "wallet of seller "+sellerID)
	}
	return mappers.ToDomainWallet(&model), nil
}

func (r *DefaultWalletRepository) SaveWallet(ctx context.Context, wallet *domain.SellerWallet) error {
	model := mappers.ToGORMWallet(wallet)
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "seller_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"balance", "available_balance", "pending_balance", "reserved_balance",
			"total_earnings", "total_withdrawn", "total_spent_on_ads", "last_updated",
		}),
	}).Create(model).Error
	return Classify(err)
}

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) AppendTransaction(ctx context.Context, tx *domain.Transaction) error {
	return Classify(r.DB.WithContext(ctx).Create(mappers.ToGORMTransaction(tx)).Error)
}

func (r *DefaultTransactionRepository) UpdateTransactionStatus(ctx context.Context, txID string, status domain.TransactionStatus) error {
	result := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("id = ?", txID).
		Update("status", string(status))
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return dbErr(gorm.ErrRecordNotFound, "transaction "+txID)
	}
	return nil
}

func (r *DefaultTransactionRepository) ListTransactionsBySellerID(ctx context.Context, sellerID string, page, limit int) ([]*domain.Transaction, int64, error) {
	_, limit, offset := domain.NormalizePage(page, limit)

	var total int64
	query := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).Where("seller_id = ?", sellerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, Classify(err)
	}

	var rows []models.TransactionModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, Classify(err)
	}
	return toDomainTransactions(rows), total, nil
}

func (r *DefaultTransactionRepository) FindMaturedEarnings(ctx context.Context, now time.Time, limit int) ([]*domain.Transaction, error) {
	query := r.maturedEarnings(ctx, now)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.TransactionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, Classify(err)
	}
	return toDomainTransactions(rows), nil
}

func (r *DefaultTransactionRepository) ListMaturedEarningsBySellerID(ctx context.Context, sellerID string, now time.Time) ([]*domain.Transaction, error) {
	var rows []models.TransactionModel
	if err := r.maturedEarnings(ctx, now).Where("seller_id = ?", sellerID).Find(&rows).Error; err != nil {
		return nil, Classify(err)
	}
	return toDomainTransactions(rows), nil
}

func (r *DefaultTransactionRepository) maturedEarnings(ctx context.Context, now time.Time) *gorm.DB {
	return r.DB.WithContext(ctx).
		Where("type = ? AND status = ? AND clears_at <= ?", string(domain.TxEarning), string(domain.TxStatusPending), now).
		Order("clears_at ASC")
}

func toDomainTransactions(rows []models.TransactionModel) []*domain.Transaction {
	out := make([]*domain.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToDomainTransaction(&rows[i]))
	}
	return out
}
