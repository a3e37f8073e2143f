package service

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

// SelectWinners draws up to len(distribution) distinct tickets, each round
// weighted by ticket quantity over the tickets not drawn yet. The result is
// ordered by draw position and may be shorter than the distribution when
// there are fewer tickets than prizes.
func SelectWinners(rnd *rand.Rand, tickets []domain.Ticket, distribution []decimal.Decimal, pot decimal.Decimal, now time.Time) []domain.Winner {
	pool := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if ticket.Quantity > 0 {
			pool = append(pool, ticket)
		}
	}

	winners := make([]domain.Winner, 0, len(distribution))
	cumulative := make([]int64, 0, len(pool))
	for position, percentage := range distribution {
		if len(pool) == 0 {
			break
		}

		cumulative = cumulative[:0]
		var total int64
		for _, ticket := range pool {
			total += int64(ticket.Quantity)
			cumulative = append(cumulative, total)
		}

		r := rnd.Int63n(total)
		i := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > r })
		ticket := pool[i]
		pool = append(pool[:i], pool[i+1:]...)

		winners = append(winners, domain.Winner{
			LotteryID:     ticket.LotteryID,
			TicketID:      ticket.ID,
			UserID:        ticket.UserID,
			CharacterID:   ticket.CharacterID,
			CharacterName: ticket.CharacterName,
			Position:      position + 1,
			PrizeAmount:   domain.PrizeAmount(pot, percentage),
			WonAt:         now,
		})
	}

	return winners
}

// WinnerPicker serializes access to one random source across sweeps.
type WinnerPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewWinnerPicker(seed int64) *WinnerPicker {
	return &WinnerPicker{rnd: rand.New(rand.NewSource(seed))}
}

// NewSecureWinnerPicker seeds the draw from the operating system's entropy.
func NewSecureWinnerPicker() *WinnerPicker {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return NewWinnerPicker(time.Now().UnixNano())
	}

	return NewWinnerPicker(int64(binary.LittleEndian.Uint64(seed[:])))
}

func (p *WinnerPicker) Pick(tickets []domain.Ticket, distribution []decimal.Decimal, pot decimal.Decimal, now time.Time) []domain.Winner {
	p.mu.Lock()
	defer p.mu.Unlock()

	return SelectWinners(p.rnd, tickets, distribution, pot, now)
}
