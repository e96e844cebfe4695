package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RejectedOperationEvent struct {
	ID          uint   `gorm:"primaryKey"`
	SellerID    string `gorm:"index"`
	Operation   string
	Reason      string
	Amount      decimal.Decimal `gorm:"type:numeric(20,2)"`
	ReferenceID string
	Timestamp   time.Time
}

func (RejectedOperationEvent) TableName() string { return "rejected_operation_events" }

// PGRejectionLogger implements domain.RejectionLog on top of postgres.
type PGRejectionLogger struct {
	db *gorm.DB
}

func NewPGRejectionLogger(db *gorm.DB) *PGRejectionLogger {
	return &PGRejectionLogger{db: db}
}

func (l *PGRejectionLogger) LogRejected(ctx context.Context, op domain.RejectedOperation) error {
	event := RejectedOperationEvent{
		SellerID:    op.SellerID,
		Operation:   op.Operation,
		Reason:      op.Reason,
		Amount:      op.Amount,
		ReferenceID: op.ReferenceID,
		Timestamp:   op.OccurredAt,
	}
	return l.db.WithContext(ctx).Create(&event).Error
}

// SlogRejectionLogger writes rejections to the process log. Used with the memory store.
type SlogRejectionLogger struct {
	log *slog.Logger
}

func NewSlogRejectionLogger(log *slog.Logger) *SlogRejectionLogger {
	if log == nil {
		log = slog.Default()
	}
	return &SlogRejectionLogger{log: log}
}

func (l *SlogRejectionLogger) LogRejected(ctx context.Context, op domain.RejectedOperation) error {
	l.log.WarnContext(ctx, "operation rejected",
		"seller_id", op.SellerID,
		"operation", op.Operation,
		"reason", op.Reason,
		"amount", op.Amount.String(),
		"reference_id", op.ReferenceID,
	)
	return nil
}
