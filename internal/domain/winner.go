package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Winner struct {
	ID            uint            `json:"id"`
	LotteryID     uint            `json:"lottery_id"`
	TicketID      uint            `json:"ticket_id"`
	UserID        uint            `json:"user_id"`
	CharacterID   int64           `json:"character_id"`
	CharacterName string          `json:"character_name"`
	Position      int             `json:"position"`
	PrizeAmount   decimal.Decimal `json:"prize_amount"`
	Distributed   bool            `json:"distributed"`
	WonAt         time.Time       `json:"won_at"`
	DistributedAt *time.Time      `json:"distributed_at,omitempty"`
}
