package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrWinnerNotFound   = errors.New("winner not found")
	ErrTicketAlreadyWon = errors.New("ticket already won in this lottery")
)

type Winner struct {
	ID            uint            `gorm:"primaryKey"`
	LotteryID     uint            `gorm:"not null;index"`
	TicketID      uint            `gorm:"not null;uniqueIndex:uni_winners_ticket_id"`
	UserID        uint            `gorm:"not null;index"`
	CharacterID   int64           `gorm:"not null"`
	CharacterName string          `gorm:"type:varchar(100)"`
	Position      int             `gorm:"not null"`
	PrizeAmount   decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Distributed   bool            `gorm:"not null;default:false"`
	WonAt         time.Time       `gorm:"not null"`
	DistributedAt *time.Time
}

type WinnerDAO struct {
	db *gorm.DB
}

func NewWinnerDAO(db *gorm.DB) *WinnerDAO {
	return &WinnerDAO{
		db: db,
	}
}

func (d *WinnerDAO) Insert(ctx context.Context, winner Winner) (Winner, error) {
	result := d.db.WithContext(ctx).Create(&winner)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_winners_ticket_id") {
			return Winner{}, ErrTicketAlreadyWon
		}

		return Winner{}, result.Error
	}

	return winner, nil
}

func (d *WinnerDAO) FindByLottery(ctx context.Context, lotteryID uint) ([]Winner, error) {
	var winners []Winner

	result := d.db.WithContext(ctx).Where("lottery_id = ?", lotteryID).Order("position").Find(&winners)
	if result.Error != nil {
		return nil, result.Error
	}

	return winners, nil
}

func (d *WinnerDAO) CountByLottery(ctx context.Context, lotteryID uint) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Winner{}).Where("lottery_id = ?", lotteryID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

func (d *WinnerDAO) UpdateDistributed(ctx context.Context, id uint, distributed bool, at *time.Time) (Winner, error) {
	result := d.db.WithContext(ctx).
		Model(&Winner{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"distributed": distributed, "distributed_at": at})
	if result.Error != nil {
		return Winner{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Winner{}, ErrWinnerNotFound
	}

	var winner Winner
	if result := d.db.WithContext(ctx).First(&winner, id); result.Error != nil {
		return Winner{}, result.Error
	}

	return winner, nil
}
