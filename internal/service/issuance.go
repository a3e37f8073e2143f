package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/metrics"
	"github.com/vietanh2810/isk-lottery/internal/repository"
)

var identityAnomalies = []struct {
	err  error
	kind domain.AnomalyKind
}{
	{domain.ErrCharacterUnknown, domain.AnomalyCharacterUnknown},
	{domain.ErrOwnershipUnknown, domain.AnomalyOwnershipUnknown},
	{domain.ErrProfileUnknown, domain.AnomalyProfileUnknown},
}

type PaymentResult struct {
	TransactionID string                `json:"transaction_id"`
	Outcome       domain.PaymentOutcome `json:"outcome"`
	LotteryID     uint                  `json:"lottery_id,omitempty"`
	TicketsIssued int                   `json:"tickets_issued"`
	Remainder     decimal.Decimal       `json:"remainder"`
	Anomalies     []domain.AnomalyKind  `json:"anomalies,omitempty"`
}

type ScanResult struct {
	Fetched   int `json:"fetched"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// IssuanceService turns wallet payments into tickets. Every payment ends in
// exactly one processed-payment record plus a ticket change, an anomaly, or
// both.
type IssuanceService struct {
	store    repository.Store
	ledger   LedgerSource
	identity IdentityResolver
	notifier Notifier
	workers  int
	now      func() time.Time
}

func NewIssuanceService(store repository.Store, ledger LedgerSource, identity IdentityResolver, notifier Notifier, workers int) *IssuanceService {
	if workers < 1 {
		workers = 1
	}

	return &IssuanceService{
		store:    store,
		ledger:   ledger,
		identity: identity,
		notifier: notifier,
		workers:  workers,
		now:      time.Now,
	}
}

func (s *IssuanceService) ProcessPayment(ctx context.Context, entry domain.LedgerEntry) (PaymentResult, error) {
	var unit *paymentUnit

	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		unit = &paymentUnit{
			tx:       tx,
			identity: s.identity,
			entry:    entry,
			now:      s.now(),
			result: PaymentResult{
				TransactionID: entry.TransactionID,
				Remainder:     decimal.Zero,
			},
		}

		return unit.run(ctx)
	})
	if errors.Is(err, repository.ErrAlreadyProcessed) {
		return PaymentResult{TransactionID: entry.TransactionID, Outcome: domain.OutcomeSkipped, Remainder: decimal.Zero}, nil
	}
	if err != nil {
		return PaymentResult{}, fmt.Errorf("s.store.Atomic -> %w", err)
	}

	notifyAll(ctx, s.notifier, unit.notifications)

	kinds := make([]string, len(unit.result.Anomalies))
	for i, kind := range unit.result.Anomalies {
		kinds[i] = string(kind)
	}
	metrics.RecordPayment(string(unit.result.Outcome), unit.result.TicketsIssued, kinds)

	return unit.result, nil
}

// ScanPendingPayments processes every unhandled ledger entry with bounded
// parallelism and returns once all of them are done.
func (s *IssuanceService) ScanPendingPayments(ctx context.Context) (ScanResult, error) {
	entries, err := s.ledger.PendingEntries(ctx)
	if err != nil {
		return ScanResult{}, fmt.Errorf("s.ledger.PendingEntries -> %w", err)
	}

	var processed, skipped, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(s.workers)
	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			if ctx.Err() != nil {
				failed.Add(1)
				return nil
			}

			result, err := s.ProcessPayment(ctx, entry)
			if err != nil {
				failed.Add(1)
				zap.L().Error("failed to process payment", zap.String("transaction_id", entry.TransactionID), zap.Error(err))
				return nil
			}

			if result.Outcome == domain.OutcomeSkipped {
				skipped.Add(1)
			} else {
				processed.Add(1)
			}

			return nil
		})
	}
	_ = g.Wait()

	result := ScanResult{
		Fetched:   len(entries),
		Processed: int(processed.Load()),
		Skipped:   int(skipped.Load()),
		Failed:    int(failed.Load()),
	}
	if len(entries) > 0 {
		zap.L().Info("payment scan finished",
			zap.Int("fetched", result.Fetched),
			zap.Int("processed", result.Processed),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", result.Failed),
		)
	}

	return result, ctx.Err()
}

type paymentUnit struct {
	tx       repository.Store
	identity IdentityResolver
	entry    domain.LedgerEntry
	now      time.Time

	result        PaymentResult
	notifications []domain.Notification
}

func (u *paymentUnit) run(ctx context.Context) error {
	done, err := u.tx.IsProcessed(ctx, u.entry.TransactionID)
	if err != nil {
		return fmt.Errorf("u.tx.IsProcessed -> %w", err)
	}
	if done {
		u.result.Outcome = domain.OutcomeSkipped
		return nil
	}

	if err = u.reconcile(ctx); err != nil {
		return err
	}

	err = u.tx.MarkProcessed(ctx, domain.ProcessedPayment{
		TransactionID: u.entry.TransactionID,
		Outcome:       u.result.Outcome,
		ProcessedAt:   u.now,
	})
	if err != nil {
		return fmt.Errorf("u.tx.MarkProcessed -> %w", err)
	}

	return nil
}

func (u *paymentUnit) reconcile(ctx context.Context) error {
	entry := u.entry

	participant, err := u.identity.Resolve(ctx, entry.PayerID)
	if err != nil {
		for _, mapping := range identityAnomalies {
			if errors.Is(err, mapping.err) {
				return u.reject(ctx, mapping.kind, nil, participant, fmt.Sprintf("payer %d: %s", entry.PayerID, mapping.err))
			}
		}

		return fmt.Errorf("u.identity.Resolve -> %w", err)
	}

	reference := domain.NormalizeReference(entry.Memo)
	lottery, err := u.tx.LockOpenLotteryByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrLotteryNotFound) {
			return u.reject(ctx, domain.AnomalyNoMatchingLottery, nil, participant, fmt.Sprintf("no open lottery matches memo %q", entry.Memo))
		}

		return fmt.Errorf("u.tx.LockOpenLotteryByReference -> %w", err)
	}
	u.result.LotteryID = lottery.ID

	if !lottery.AcceptsPaymentAt(entry.Date) {
		reason := fmt.Sprintf("payment dated %s is outside the sales window %s - %s",
			entry.Date.Format(time.RFC3339), lottery.StartDate.Format(time.RFC3339), lottery.EndDate.Format(time.RFC3339))
		return u.reject(ctx, domain.AnomalyOutsideWindow, &lottery.ID, participant, reason)
	}

	quotient, _ := entry.Amount.QuoRem(lottery.TicketPrice, 0)
	possible := int(quotient.IntPart())
	if !entry.Amount.IsPositive() || possible < 1 {
		reason := fmt.Sprintf("%s ISK does not cover one ticket at %s ISK", entry.Amount, lottery.TicketPrice)
		u.notify(participant.UserID, "Payment too small",
			fmt.Sprintf("Your payment of %s ISK for %s does not cover one ticket (%s ISK).", entry.Amount, lottery.Reference, lottery.TicketPrice),
			domain.SeverityWarning)
		return u.reject(ctx, domain.AnomalyInsufficientAmount, &lottery.ID, participant, reason)
	}

	final := possible
	capped := false
	if lottery.MaxTicketsPerUser != nil {
		held, err := u.tx.CountUserTickets(ctx, lottery.ID, participant.UserID)
		if err != nil {
			return fmt.Errorf("u.tx.CountUserTickets -> %w", err)
		}

		allowed := *lottery.MaxTicketsPerUser - held
		if allowed <= 0 {
			u.notify(participant.UserID, "Ticket limit reached",
				fmt.Sprintf("You already hold the maximum of %d tickets for %s. Your payment of %s ISK was not converted.", *lottery.MaxTicketsPerUser, lottery.Reference, entry.Amount),
				domain.SeverityWarning)
			reason := fmt.Sprintf("user %d already holds %d of %d tickets", participant.UserID, held, *lottery.MaxTicketsPerUser)
			return u.reject(ctx, domain.AnomalyCapExceeded, &lottery.ID, participant, reason)
		}
		if allowed < final {
			final = allowed
			capped = true
		}
	}

	cost := lottery.TicketPrice.Mul(decimal.NewFromInt(int64(final)))
	if err = u.issue(ctx, lottery, participant, final, cost); err != nil {
		return err
	}

	message := fmt.Sprintf("%d ticket(s) purchased for %s.", final, lottery.Reference)
	remainder := entry.Amount.Sub(cost)
	if remainder.IsPositive() {
		u.result.Remainder = remainder

		kind := domain.AnomalyOverpayment
		reason := fmt.Sprintf("overpayment of %s ISK", remainder)
		if capped {
			kind = domain.AnomalyCapRemainder
			reason = fmt.Sprintf("%s ISK not converted: ticket limit of %d reached", remainder, *lottery.MaxTicketsPerUser)
		}
		if err = u.record(ctx, kind, &lottery.ID, participant, reason, remainder); err != nil {
			return err
		}
		message += fmt.Sprintf(" %s ISK could not be converted into tickets.", remainder)
	}

	u.result.Outcome = domain.OutcomeTicket
	if len(u.result.Anomalies) > 0 {
		u.result.Outcome = domain.OutcomeTicketWithAnomaly
	}
	u.notify(participant.UserID, "Tickets purchased", message, domain.SeveritySuccess)

	return nil
}

func (u *paymentUnit) issue(ctx context.Context, lottery domain.Lottery, participant domain.Identity, quantity int, cost decimal.Decimal) error {
	ticket, err := u.tx.LockTicket(ctx, lottery.ID, participant.UserID, participant.CharacterID)
	if err != nil {
		if !errors.Is(err, repository.ErrTicketNotFound) {
			return fmt.Errorf("u.tx.LockTicket -> %w", err)
		}

		ticket = domain.Ticket{
			LotteryID:     lottery.ID,
			UserID:        participant.UserID,
			CharacterID:   participant.CharacterID,
			CharacterName: participant.CharacterName,
			TotalPaid:     decimal.Zero,
		}
	}

	ticket.Add(quantity, cost, u.entry.TransactionID, u.entry.Date)
	if _, err = u.tx.SaveTicket(ctx, ticket); err != nil {
		return fmt.Errorf("u.tx.SaveTicket -> %w", err)
	}

	if err = u.tx.UpdateLotteryPot(ctx, lottery.ID, lottery.TotalPot.Add(cost)); err != nil {
		return fmt.Errorf("u.tx.UpdateLotteryPot -> %w", err)
	}

	u.result.TicketsIssued = quantity

	return nil
}

// reject records a terminal anomaly for the full amount.
func (u *paymentUnit) reject(ctx context.Context, kind domain.AnomalyKind, lotteryID *uint, participant domain.Identity, reason string) error {
	zap.L().Info("payment rejected",
		zap.String("transaction_id", u.entry.TransactionID),
		zap.String("kind", string(kind)),
		zap.String("reason", reason),
	)

	u.result.Outcome = domain.OutcomeAnomaly
	return u.record(ctx, kind, lotteryID, participant, reason, u.entry.Amount)
}

func (u *paymentUnit) record(ctx context.Context, kind domain.AnomalyKind, lotteryID *uint, participant domain.Identity, reason string, amount decimal.Decimal) error {
	anomaly := domain.Anomaly{
		LotteryID:     lotteryID,
		Kind:          kind,
		Reason:        reason,
		TransactionID: u.entry.TransactionID,
		PaymentDate:   u.entry.Date,
		Amount:        amount,
		RecordedAt:    u.now,
	}
	if participant.CharacterID != 0 {
		characterID := participant.CharacterID
		anomaly.CharacterID = &characterID
	}
	if participant.UserID != 0 {
		userID := participant.UserID
		anomaly.UserID = &userID
	}

	if _, err := u.tx.CreateAnomaly(ctx, anomaly); err != nil {
		return fmt.Errorf("u.tx.CreateAnomaly -> %w", err)
	}
	u.result.Anomalies = append(u.result.Anomalies, kind)

	return nil
}

func (u *paymentUnit) notify(userID uint, title, message string, severity domain.Severity) {
	if userID == 0 {
		return
	}

	u.notifications = append(u.notifications, domain.Direct(userID, title, message, severity))
}
