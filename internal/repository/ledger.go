package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

type LedgerDAO interface {
	FindUnprocessed(ctx context.Context) ([]dao.WalletJournalEntry, error)
	ExistsUnprocessedAfter(ctx context.Context, reference string, after time.Time) (bool, error)
	LastSync(ctx context.Context) (time.Time, error)
}

// LedgerRepository reads the wallet journal kept up to date by the upstream
// ingestion job.
type LedgerRepository struct {
	dao LedgerDAO
}

func NewLedgerRepository(dao LedgerDAO) *LedgerRepository {
	return &LedgerRepository{
		dao: dao,
	}
}

func (r *LedgerRepository) PendingEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := r.dao.FindUnprocessed(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUnprocessed -> %w", err)
	}

	entries := make([]domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		if !domain.LooksLikeReference(row.Reason) {
			continue
		}

		entries = append(entries, domain.LedgerEntry{
			TransactionID: row.EntryID,
			PayerID:       row.FirstPartyID,
			ReceiverID:    row.SecondPartyID,
			Memo:          row.Reason,
			Amount:        row.Amount,
			Date:          row.Date,
		})
	}

	return entries, nil
}

func (r *LedgerRepository) HasPendingEntries(ctx context.Context, reference string, after time.Time) (bool, error) {
	exists, err := r.dao.ExistsUnprocessedAfter(ctx, domain.NormalizeReference(reference), after)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsUnprocessedAfter -> %w", err)
	}

	return exists, nil
}

func (r *LedgerRepository) LastSync(ctx context.Context) (time.Time, error) {
	last, err := r.dao.LastSync(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("r.dao.LastSync -> %w", err)
	}

	return last, nil
}
