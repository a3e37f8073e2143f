package service

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

func ticketsWithQuantities(quantities ...int) []domain.Ticket {
	tickets := make([]domain.Ticket, len(quantities))
	for i, q := range quantities {
		tickets[i] = domain.Ticket{
			ID:          uint(i + 1),
			LotteryID:   1,
			UserID:      uint(100 + i),
			CharacterID: int64(9000 + i),
			Quantity:    q,
		}
	}

	return tickets
}

func TestSelectWinners_DistinctTickets(t *testing.T) {
	tickets := ticketsWithQuantities(1, 2, 3, 4, 5)
	distribution := dec("50", "30", "20")

	for seed := int64(0); seed < 200; seed++ {
		winners := SelectWinners(rand.New(rand.NewSource(seed)), tickets, distribution, decimal.NewFromInt(10000), base)
		require.Len(t, winners, 3)

		seen := map[uint]bool{}
		for i, winner := range winners {
			assert.False(t, seen[winner.TicketID], "ticket %d drawn twice", winner.TicketID)
			seen[winner.TicketID] = true
			assert.Equal(t, i+1, winner.Position)
			assert.Equal(t, base, winner.WonAt)
			assert.False(t, winner.Distributed)
		}
		requireDecimal(t, "5000", winners[0].PrizeAmount)
		requireDecimal(t, "3000", winners[1].PrizeAmount)
		requireDecimal(t, "2000", winners[2].PrizeAmount)
	}
}

func TestSelectWinners_FewerTicketsThanPrizes(t *testing.T) {
	winners := SelectWinners(rand.New(rand.NewSource(1)), ticketsWithQuantities(3, 1), dec("50", "30", "20"), decimal.NewFromInt(4000), base)

	require.Len(t, winners, 2)
	assert.NotEqual(t, winners[0].TicketID, winners[1].TicketID)
}

func TestSelectWinners_EmptyPool(t *testing.T) {
	assert.Empty(t, SelectWinners(rand.New(rand.NewSource(1)), nil, dec("100"), decimal.NewFromInt(1000), base))
	assert.Empty(t, SelectWinners(rand.New(rand.NewSource(1)), ticketsWithQuantities(0), dec("100"), decimal.NewFromInt(1000), base))
}

func TestSelectWinners_WeightedByQuantity(t *testing.T) {
	tickets := ticketsWithQuantities(10, 1)
	rnd := rand.New(rand.NewSource(42))

	wins := map[uint]int{}
	for i := 0; i < 11000; i++ {
		winners := SelectWinners(rnd, tickets, dec("100"), decimal.NewFromInt(1000), base)
		require.Len(t, winners, 1)
		wins[winners[0].TicketID]++
	}

	ratio := float64(wins[1]) / float64(wins[2])
	assert.InDelta(t, 10.0, ratio, 2.0, "heavy=%d light=%d", wins[1], wins[2])
}

func TestSelectWinners_PrizeRounding(t *testing.T) {
	winners := SelectWinners(rand.New(rand.NewSource(7)), ticketsWithQuantities(1, 1, 1), dec("33.33", "33.33", "33.34"), decimal.NewFromInt(1001), base)

	require.Len(t, winners, 3)
	requireDecimal(t, "333.63", winners[0].PrizeAmount)
	requireDecimal(t, "333.63", winners[1].PrizeAmount)
	requireDecimal(t, "333.73", winners[2].PrizeAmount)
}

func TestWinnerPicker_Pick(t *testing.T) {
	a := NewWinnerPicker(99).Pick(ticketsWithQuantities(1, 2, 3), dec("60", "40"), decimal.NewFromInt(600), base)
	b := NewWinnerPicker(99).Pick(ticketsWithQuantities(1, 2, 3), dec("60", "40"), decimal.NewFromInt(600), base)
	assert.Equal(t, a, b)

	assert.Len(t, NewSecureWinnerPicker().Pick(ticketsWithQuantities(1, 2, 3), dec("60", "40"), decimal.NewFromInt(600), base), 2)
}
