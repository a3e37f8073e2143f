package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrLotteryNotFound        = errors.New("lottery not found")
	ErrLotteryReferenceExists = errors.New("lottery reference already exists")
)

type Lottery struct {
	ID                  uint            `gorm:"primaryKey"`
	Reference           string          `gorm:"type:varchar(32);not null;uniqueIndex:uni_lotteries_reference"`
	TicketPrice         decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	StartDate           time.Time       `gorm:"not null"`
	EndDate             time.Time       `gorm:"not null;index"`
	Status              string          `gorm:"type:varchar(16);not null;index"`
	WinnerCount         int             `gorm:"not null"`
	WinnersDistribution datatypes.JSON  `gorm:"type:jsonb;not null"`
	MaxTicketsPerUser   *int            `gorm:"default:null"`
	TotalPot            decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	PaymentReceiverID   int64           `gorm:"not null"`
	TemplateID          *uint           `gorm:"index"`
	CompletedAt         *time.Time      `gorm:"default:null"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

type LotteryDAO struct {
	db *gorm.DB
}

func NewLotteryDAO(db *gorm.DB) *LotteryDAO {
	return &LotteryDAO{
		db: db,
	}
}

func (d *LotteryDAO) Insert(ctx context.Context, lottery Lottery) (Lottery, error) {
	result := d.db.WithContext(ctx).Create(&lottery)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_lotteries_reference") {
			return Lottery{}, ErrLotteryReferenceExists
		}

		return Lottery{}, result.Error
	}

	return lottery, nil
}

func (d *LotteryDAO) FindByID(ctx context.Context, id uint) (Lottery, error) {
	var lottery Lottery

	result := d.db.WithContext(ctx).First(&lottery, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Lottery{}, ErrLotteryNotFound
		}

		return Lottery{}, result.Error
	}

	return lottery, nil
}

// FindByIDForUpdate row-locks the lottery until the surrounding transaction ends.
func (d *LotteryDAO) FindByIDForUpdate(ctx context.Context, id uint) (Lottery, error) {
	var lottery Lottery

	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&lottery, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Lottery{}, ErrLotteryNotFound
		}

		return Lottery{}, result.Error
	}

	return lottery, nil
}

func (d *LotteryDAO) FindOpenByReferenceForUpdate(ctx context.Context, reference string, statuses []string) (Lottery, error) {
	var lottery Lottery

	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reference = ? AND status IN ?", reference, statuses).
		First(&lottery)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Lottery{}, ErrLotteryNotFound
		}

		return Lottery{}, result.Error
	}

	return lottery, nil
}

func (d *LotteryDAO) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Lottery{}).Where("reference = ?", reference).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *LotteryDAO) FindByStatus(ctx context.Context, statuses []string) ([]Lottery, error) {
	var lotteries []Lottery

	query := d.db.WithContext(ctx).Order("id")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	if result := query.Find(&lotteries); result.Error != nil {
		return nil, result.Error
	}

	return lotteries, nil
}

func (d *LotteryDAO) FindExpired(ctx context.Context, statuses []string, now time.Time) ([]Lottery, error) {
	var lotteries []Lottery

	result := d.db.WithContext(ctx).
		Where("status IN ? AND end_date <= ?", statuses, now).
		Order("end_date, id").
		Find(&lotteries)
	if result.Error != nil {
		return nil, result.Error
	}

	return lotteries, nil
}

// UpdateStatus moves the lottery to status only if it currently is in one of from.
func (d *LotteryDAO) UpdateStatus(ctx context.Context, id uint, from []string, status string, completedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}

	result := d.db.WithContext(ctx).
		Model(&Lottery{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (d *LotteryDAO) UpdatePot(ctx context.Context, id uint, pot decimal.Decimal) error {
	result := d.db.WithContext(ctx).Model(&Lottery{}).Where("id = ?", id).Update("total_pot", pot)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLotteryNotFound
	}

	return nil
}

// Delete removes the lottery together with its winners, tickets and anomalies.
func (d *LotteryDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lottery_id = ?", id).Delete(&Winner{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lottery_id = ?", id).Delete(&Ticket{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lottery_id = ?", id).Delete(&Anomaly{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Lottery{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrLotteryNotFound
		}

		return nil
	})
}
