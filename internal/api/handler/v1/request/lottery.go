package request

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

// CreateLotteryRequest omits the start date to open the lottery immediately.
type CreateLotteryRequest struct {
	TicketPrice         decimal.Decimal   `json:"ticket_price" swaggertype:"string" example:"10000000"`
	StartDate           *time.Time        `json:"start_date,omitempty"`
	EndDate             time.Time         `json:"end_date"`
	WinnerCount         int               `json:"winner_count" example:"3"`
	WinnersDistribution []decimal.Decimal `json:"winners_distribution" swaggertype:"array,string"`
	MaxTicketsPerUser   *int              `json:"max_tickets_per_user,omitempty"`
	PaymentReceiverID   int64             `json:"payment_receiver_id" example:"98000001"`
}

func (req *CreateLotteryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.WinnerCount, validation.Required, validation.Min(1)),
		validation.Field(&req.WinnersDistribution, validation.Required),
		validation.Field(&req.PaymentReceiverID, validation.Required, validation.Min(int64(1))),
	)
}

func (req *CreateLotteryRequest) ToDomain() domain.Lottery {
	lottery := domain.Lottery{
		TicketPrice:         req.TicketPrice,
		EndDate:             req.EndDate,
		WinnerCount:         req.WinnerCount,
		WinnersDistribution: req.WinnersDistribution,
		MaxTicketsPerUser:   req.MaxTicketsPerUser,
		PaymentReceiverID:   req.PaymentReceiverID,
	}
	if req.StartDate != nil {
		lottery.StartDate = *req.StartDate
	}

	return lottery
}

type ListLotteriesQuery struct {
	Status []string `form:"status"`
}

func (q *ListLotteriesQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Status, validation.By(knownStatuses)),
	)
}

func knownStatuses(value interface{}) error {
	statuses, _ := value.([]string)
	for _, s := range statuses {
		switch domain.LotteryStatus(s) {
		case domain.LotteryStatusActive, domain.LotteryStatusPending, domain.LotteryStatusCompleted, domain.LotteryStatusCancelled:
		default:
			return fmt.Errorf("unknown status %q", s)
		}
	}

	return nil
}

func (q *ListLotteriesQuery) Statuses() []domain.LotteryStatus {
	statuses := make([]domain.LotteryStatus, 0, len(q.Status))
	for _, s := range q.Status {
		statuses = append(statuses, domain.LotteryStatus(s))
	}

	return statuses
}

// SetDistributedRequest defaults to marking the prize as paid when the body
// is empty.
type SetDistributedRequest struct {
	Distributed *bool `json:"distributed,omitempty"`
}

func (req *SetDistributedRequest) Value() bool {
	return req.Distributed == nil || *req.Distributed
}

type ListAnomaliesQuery struct {
	LotteryID *uint  `form:"lottery_id"`
	Kind      string `form:"kind"`
}

func (q *ListAnomaliesQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Kind, validation.In(
			string(domain.AnomalyCharacterUnknown),
			string(domain.AnomalyOwnershipUnknown),
			string(domain.AnomalyProfileUnknown),
			string(domain.AnomalyNoMatchingLottery),
			string(domain.AnomalyOutsideWindow),
			string(domain.AnomalyInsufficientAmount),
			string(domain.AnomalyCapExceeded),
			string(domain.AnomalyCapRemainder),
			string(domain.AnomalyOverpayment),
		)),
	)
}
