package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is a participant's accumulated stake in one lottery. Quantity is the
// draw weight.
type Ticket struct {
	ID              uint            `json:"id"`
	LotteryID       uint            `json:"lottery_id"`
	UserID          uint            `json:"user_id"`
	CharacterID     int64           `json:"character_id"`
	CharacterName   string          `json:"character_name"`
	Quantity        int             `json:"quantity"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	TransactionID   string          `json:"transaction_id"`
	LastPaymentDate time.Time       `json:"last_payment_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Add folds one more qualifying payment into the ticket.
func (t *Ticket) Add(quantity int, cost decimal.Decimal, transactionID string, paidAt time.Time) {
	t.Quantity += quantity
	t.TotalPaid = t.TotalPaid.Add(cost)
	t.TransactionID = transactionID
	if paidAt.After(t.LastPaymentDate) {
		t.LastPaymentDate = paidAt
	}
}
