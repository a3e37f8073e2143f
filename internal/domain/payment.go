package domain

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"
)

const ReferencePrefix = "LOTTERY-"

// referenceMarker matches memos that look like they were meant for a lottery.
var referenceMarker = regexp2.MustCompile(`\blottery(?=-\d|\b)`, regexp2.IgnoreCase)

// LedgerEntry is one incoming wallet journal record.
type LedgerEntry struct {
	TransactionID string          `json:"transaction_id"`
	PayerID       int64           `json:"payer_id"`
	ReceiverID    int64           `json:"receiver_id"`
	Memo          string          `json:"memo"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

type PaymentOutcome string

const (
	OutcomeSkipped           PaymentOutcome = "skipped"
	OutcomeTicket            PaymentOutcome = "ticket"
	OutcomeTicketWithAnomaly PaymentOutcome = "ticket_with_anomaly"
	OutcomeAnomaly           PaymentOutcome = "anomaly"
)

// ProcessedPayment marks a transaction id as handled for good.
type ProcessedPayment struct {
	ID            uint           `json:"id"`
	TransactionID string         `json:"transaction_id"`
	Outcome       PaymentOutcome `json:"outcome"`
	ProcessedAt   time.Time      `json:"processed_at"`
}

// NormalizeReference turns a free-text memo into the canonical reference form.
func NormalizeReference(memo string) string {
	return strings.ToUpper(strings.TrimSpace(memo))
}

func LooksLikeReference(memo string) bool {
	ok, err := referenceMarker.MatchString(memo)
	return err == nil && ok
}
