package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

// Ledger is an in-memory wallet journal. Entries already marked processed in
// the paired Store are filtered out the same way the postgres query does.
type Ledger struct {
	mu       sync.RWMutex
	entries  []domain.LedgerEntry
	lastSync time.Time
	store    *Store
}

func NewLedger(store *Store) *Ledger {
	return &Ledger{
		store: store,
	}
}

func (l *Ledger) Append(entries ...domain.LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entries...)
}

// MarkSynced advances the ingestion marker, as the upstream job would.
func (l *Ledger) MarkSynced(at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastSync = at
}

func (l *Ledger) PendingEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	l.mu.RLock()
	candidates := make([]domain.LedgerEntry, len(l.entries))
	copy(candidates, l.entries)
	l.mu.RUnlock()

	var pending []domain.LedgerEntry
	for _, entry := range candidates {
		if !entry.Amount.IsPositive() || !domain.LooksLikeReference(entry.Memo) {
			continue
		}

		done, err := l.store.IsProcessed(ctx, entry.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("l.store.IsProcessed -> %w", err)
		}
		if !done {
			pending = append(pending, entry)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].Date.Before(pending[j].Date) })

	return pending, nil
}

func (l *Ledger) HasPendingEntries(ctx context.Context, reference string, after time.Time) (bool, error) {
	pending, err := l.PendingEntries(ctx)
	if err != nil {
		return false, err
	}

	reference = domain.NormalizeReference(reference)
	for _, entry := range pending {
		if domain.NormalizeReference(entry.Memo) == reference && entry.Date.After(after) {
			return true, nil
		}
	}

	return false, nil
}

func (l *Ledger) LastSync(_ context.Context) (time.Time, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.lastSync, nil
}
