package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

type TemplateRequest struct {
	Name                string            `json:"name" example:"Weekly draw"`
	Active              *bool             `json:"active,omitempty"`
	Frequency           domain.Cadence    `json:"frequency"`
	Duration            domain.Cadence    `json:"duration"`
	TicketPrice         decimal.Decimal   `json:"ticket_price" swaggertype:"string" example:"10000000"`
	WinnerCount         int               `json:"winner_count" example:"3"`
	WinnersDistribution []decimal.Decimal `json:"winners_distribution" swaggertype:"array,string"`
	MaxTicketsPerUser   *int              `json:"max_tickets_per_user,omitempty"`
	PaymentReceiverID   int64             `json:"payment_receiver_id" example:"98000001"`
}

func (req *TemplateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.WinnerCount, validation.Required, validation.Min(1)),
		validation.Field(&req.WinnersDistribution, validation.Required),
		validation.Field(&req.PaymentReceiverID, validation.Required, validation.Min(int64(1))),
	)
}

// ToDomain builds the template; it is active unless the request says otherwise.
func (req *TemplateRequest) ToDomain(id uint) domain.RecurringTemplate {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return domain.RecurringTemplate{
		ID:                  id,
		Name:                req.Name,
		Active:              active,
		Frequency:           req.Frequency,
		Duration:            req.Duration,
		TicketPrice:         req.TicketPrice,
		WinnerCount:         req.WinnerCount,
		WinnersDistribution: req.WinnersDistribution,
		MaxTicketsPerUser:   req.MaxTicketsPerUser,
		PaymentReceiverID:   req.PaymentReceiverID,
	}
}

type ListTemplatesQuery struct {
	ActiveOnly bool `form:"active"`
}
