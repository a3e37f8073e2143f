package request

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

func TestCreateLotteryRequest_Validate(t *testing.T) {
	valid := func() CreateLotteryRequest {
		return CreateLotteryRequest{
			TicketPrice:         decimal.NewFromInt(100),
			EndDate:             time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
			WinnerCount:         1,
			WinnersDistribution: []decimal.Decimal{decimal.NewFromInt(100)},
			PaymentReceiverID:   42,
		}
	}

	req := valid()
	require.NoError(t, req.Validate())

	tests := []struct {
		name   string
		mutate func(r *CreateLotteryRequest)
	}{
		{"missing end date", func(r *CreateLotteryRequest) { r.EndDate = time.Time{} }},
		{"no winners", func(r *CreateLotteryRequest) { r.WinnerCount = 0 }},
		{"no distribution", func(r *CreateLotteryRequest) { r.WinnersDistribution = nil }},
		{"no receiver", func(r *CreateLotteryRequest) { r.PaymentReceiverID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestCreateLotteryRequest_ToDomain(t *testing.T) {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	req := CreateLotteryRequest{StartDate: &start, WinnerCount: 2}

	lottery := req.ToDomain()
	assert.Equal(t, start, lottery.StartDate)
	assert.Equal(t, 2, lottery.WinnerCount)

	req.StartDate = nil
	assert.True(t, req.ToDomain().StartDate.IsZero())
}

func TestListQueries_Validate(t *testing.T) {
	lotteries := ListLotteriesQuery{Status: []string{"active", "pending"}}
	require.NoError(t, lotteries.Validate())
	assert.Equal(t, []domain.LotteryStatus{domain.LotteryStatusActive, domain.LotteryStatusPending}, lotteries.Statuses())

	lotteries.Status = append(lotteries.Status, "drawing")
	assert.Error(t, lotteries.Validate())

	anomalies := ListAnomaliesQuery{Kind: "overpayment"}
	require.NoError(t, anomalies.Validate())

	anomalies.Kind = "fraud"
	assert.Error(t, anomalies.Validate())
}

func TestTemplateRequest_ToDomain(t *testing.T) {
	req := TemplateRequest{Name: "Weekly"}
	assert.True(t, req.ToDomain(3).Active)
	assert.Equal(t, uint(3), req.ToDomain(3).ID)

	inactive := false
	req.Active = &inactive
	assert.False(t, req.ToDomain(0).Active)
}

func TestSetDistributedRequest_Value(t *testing.T) {
	assert.True(t, (&SetDistributedRequest{}).Value())

	no := false
	assert.False(t, (&SetDistributedRequest{Distributed: &no}).Value())
}
