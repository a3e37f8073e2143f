package dao

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrAnomalyNotFound = errors.New("anomaly not found")

type Anomaly struct {
	ID            uint            `gorm:"primaryKey"`
	LotteryID     *uint           `gorm:"index"`
	UserID        *uint           `gorm:"index"`
	CharacterID   *int64          `gorm:"index"`
	Kind          string          `gorm:"type:varchar(32);not null;index"`
	Reason        string          `gorm:"type:text;not null"`
	TransactionID string          `gorm:"type:varchar(64);not null;index"`
	PaymentDate   time.Time       `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	RecordedAt    time.Time       `gorm:"not null"`
}

type AnomalyDAO struct {
	db *gorm.DB
}

func NewAnomalyDAO(db *gorm.DB) *AnomalyDAO {
	return &AnomalyDAO{
		db: db,
	}
}

func (d *AnomalyDAO) Insert(ctx context.Context, anomaly Anomaly) (Anomaly, error) {
	if result := d.db.WithContext(ctx).Create(&anomaly); result.Error != nil {
		return Anomaly{}, result.Error
	}

	return anomaly, nil
}

func (d *AnomalyDAO) Find(ctx context.Context, lotteryID *uint, kind string) ([]Anomaly, error) {
	var anomalies []Anomaly

	query := d.db.WithContext(ctx).Order("recorded_at DESC, id DESC")
	if lotteryID != nil {
		query = query.Where("lottery_id = ?", *lotteryID)
	}
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	if result := query.Find(&anomalies); result.Error != nil {
		return nil, result.Error
	}

	return anomalies, nil
}

func (d *AnomalyDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Anomaly{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnomalyNotFound
	}

	return nil
}

func (d *AnomalyDAO) LatestPaymentDate(ctx context.Context, lotteryID uint) (sql.NullTime, error) {
	var latest sql.NullTime

	err := d.db.WithContext(ctx).
		Model(&Anomaly{}).
		Select("MAX(payment_date)").
		Where("lottery_id = ?", lotteryID).
		Row().
		Scan(&latest)
	if err != nil {
		return sql.NullTime{}, err
	}

	return latest, nil
}
