package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAlreadyProcessed = errors.New("transaction already processed")

type ProcessedPayment struct {
	ID            uint      `gorm:"primaryKey"`
	TransactionID string    `gorm:"type:varchar(64);not null;uniqueIndex:uni_processed_payments_transaction_id"`
	Outcome       string    `gorm:"type:varchar(32);not null"`
	ProcessedAt   time.Time `gorm:"not null"`
}

type ProcessedPaymentDAO struct {
	db *gorm.DB
}

func NewProcessedPaymentDAO(db *gorm.DB) *ProcessedPaymentDAO {
	return &ProcessedPaymentDAO{
		db: db,
	}
}

func (d *ProcessedPaymentDAO) Exists(ctx context.Context, transactionID string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&ProcessedPayment{}).
		Where("transaction_id = ?", transactionID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// Insert is the final arbiter of idempotency: a concurrent duplicate fails on
// the unique index.
func (d *ProcessedPaymentDAO) Insert(ctx context.Context, payment ProcessedPayment) error {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_processed_payments_transaction_id") {
			return ErrAlreadyProcessed
		}

		return result.Error
	}

	return nil
}
