package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const walletSyncMarker = "wallet_journal"

// WalletJournalEntry is written by the upstream wallet ingestion job and only
// read here.
type WalletJournalEntry struct {
	ID            uint            `gorm:"primaryKey"`
	EntryID       string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	FirstPartyID  int64           `gorm:"not null;index"`
	SecondPartyID int64           `gorm:"not null;index"`
	Reason        string          `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Date          time.Time       `gorm:"not null;index"`
}

type LedgerSync struct {
	Name         string    `gorm:"type:varchar(64);primaryKey"`
	LastSyncedAt time.Time `gorm:"not null"`
}

type LedgerDAO struct {
	db *gorm.DB
}

func NewLedgerDAO(db *gorm.DB) *LedgerDAO {
	return &LedgerDAO{
		db: db,
	}
}

func (d *LedgerDAO) unprocessed(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Model(&WalletJournalEntry{}).
		Where("amount > 0").
		Where("reason ILIKE ?", "%lottery%").
		Where("NOT EXISTS (SELECT 1 FROM processed_payments pp WHERE pp.transaction_id = wallet_journal_entries.entry_id)")
}

// FindUnprocessed returns positive lottery-looking entries that were never handled.
func (d *LedgerDAO) FindUnprocessed(ctx context.Context) ([]WalletJournalEntry, error) {
	var entries []WalletJournalEntry

	if result := d.unprocessed(ctx).Order("date, id").Find(&entries); result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *LedgerDAO) ExistsUnprocessedAfter(ctx context.Context, reference string, after time.Time) (bool, error) {
	var count int64

	result := d.unprocessed(ctx).
		Where("UPPER(TRIM(reason)) = ?", reference).
		Where("date > ?", after).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *LedgerDAO) LastSync(ctx context.Context) (time.Time, error) {
	var marker LedgerSync

	result := d.db.WithContext(ctx).First(&marker, "name = ?", walletSyncMarker)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}

		return time.Time{}, result.Error
	}

	return marker.LastSyncedAt, nil
}
