package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AnomalyKind string

const (
	AnomalyCharacterUnknown   AnomalyKind = "character_unknown"
	AnomalyOwnershipUnknown   AnomalyKind = "ownership_unknown"
	AnomalyProfileUnknown     AnomalyKind = "profile_unknown"
	AnomalyNoMatchingLottery  AnomalyKind = "no_matching_lottery"
	AnomalyOutsideWindow      AnomalyKind = "outside_window"
	AnomalyInsufficientAmount AnomalyKind = "insufficient_amount"
	AnomalyCapExceeded        AnomalyKind = "cap_exceeded"
	AnomalyCapRemainder       AnomalyKind = "cap_remainder"
	AnomalyOverpayment        AnomalyKind = "overpayment"
)

// Informational kinds accompany an issued ticket instead of replacing it.
func (k AnomalyKind) Informational() bool {
	return k == AnomalyOverpayment || k == AnomalyCapRemainder
}

// Anomaly is an append-only record of a payment that did not cleanly turn
// into tickets. Deleting one acknowledges it.
type Anomaly struct {
	ID            uint            `json:"id"`
	LotteryID     *uint           `json:"lottery_id,omitempty"`
	UserID        *uint           `json:"user_id,omitempty"`
	CharacterID   *int64          `json:"character_id,omitempty"`
	Kind          AnomalyKind     `json:"kind"`
	Reason        string          `json:"reason"`
	TransactionID string          `json:"transaction_id"`
	PaymentDate   time.Time       `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	RecordedAt    time.Time       `json:"recorded_at"`
}
