package dao

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTicketNotFound = errors.New("ticket not found")

type Ticket struct {
	ID              uint            `gorm:"primaryKey"`
	LotteryID       uint            `gorm:"not null;uniqueIndex:uni_tickets_participant,priority:1"`
	UserID          uint            `gorm:"not null;uniqueIndex:uni_tickets_participant,priority:2"`
	CharacterID     int64           `gorm:"not null;uniqueIndex:uni_tickets_participant,priority:3"`
	CharacterName   string          `gorm:"type:varchar(100)"`
	Quantity        int             `gorm:"not null"`
	TotalPaid       decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	TransactionID   string          `gorm:"type:varchar(64);not null"`
	LastPaymentDate time.Time       `gorm:"not null"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

func (d *TicketDAO) FindParticipantForUpdate(ctx context.Context, lotteryID, userID uint, characterID int64) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lottery_id = ? AND user_id = ? AND character_id = ?", lotteryID, userID, characterID).
		First(&ticket)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

// Save inserts a new ticket or updates an existing one by primary key.
func (d *TicketDAO) Save(ctx context.Context, ticket Ticket) (Ticket, error) {
	if result := d.db.WithContext(ctx).Save(&ticket); result.Error != nil {
		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) SumUserQuantity(ctx context.Context, lotteryID, userID uint) (int, error) {
	var total sql.NullInt64

	err := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Select("SUM(quantity)").
		Where("lottery_id = ? AND user_id = ?", lotteryID, userID).
		Row().
		Scan(&total)
	if err != nil {
		return 0, err
	}

	return int(total.Int64), nil
}

func (d *TicketDAO) FindByLottery(ctx context.Context, lotteryID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Where("lottery_id = ?", lotteryID).Order("id").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) SumPaid(ctx context.Context, lotteryID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	err := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Select("SUM(total_paid)").
		Where("lottery_id = ?", lotteryID).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}

func (d *TicketDAO) LatestPaymentDate(ctx context.Context, lotteryID uint) (sql.NullTime, error) {
	var latest sql.NullTime

	err := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Select("MAX(last_payment_date)").
		Where("lottery_id = ?", lotteryID).
		Row().
		Scan(&latest)
	if err != nil {
		return sql.NullTime{}, err
	}

	return latest, nil
}
