package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

// GormStore implements Store on top of the postgres DAOs.
type GormStore struct {
	db        *gorm.DB
	lotteries *dao.LotteryDAO
	tickets   *dao.TicketDAO
	anomalies *dao.AnomalyDAO
	payments  *dao.ProcessedPaymentDAO
	winners   *dao.WinnerDAO
	templates *dao.TemplateDAO
	rewards   *dao.RewardDAO
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:        db,
		lotteries: dao.NewLotteryDAO(db),
		tickets:   dao.NewTicketDAO(db),
		anomalies: dao.NewAnomalyDAO(db),
		payments:  dao.NewProcessedPaymentDAO(db),
		winners:   dao.NewWinnerDAO(db),
		templates: dao.NewTemplateDAO(db),
		rewards:   dao.NewRewardDAO(db),
	}
}

func (s *GormStore) Atomic(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}
