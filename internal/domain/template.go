package domain

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

type CadenceUnit string

const (
	CadenceMinutes CadenceUnit = "minutes"
	CadenceHours   CadenceUnit = "hours"
	CadenceDays    CadenceUnit = "days"
	CadenceWeeks   CadenceUnit = "weeks"
	CadenceMonths  CadenceUnit = "months"
)

var ErrInvalidCadence = errors.New("invalid cadence")

// Cadence is a value+unit interval. Months are calendar months.
type Cadence struct {
	Value int         `json:"value"`
	Unit  CadenceUnit `json:"unit"`
}

func (c Cadence) Validate() error {
	if c.Value < 1 {
		return fmt.Errorf("%w: value must be at least 1", ErrInvalidCadence)
	}

	switch c.Unit {
	case CadenceMinutes, CadenceHours, CadenceDays, CadenceWeeks, CadenceMonths:
		return nil
	default:
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidCadence, c.Unit)
	}
}

// AddTo returns t advanced by one cadence period.
func (c Cadence) AddTo(t time.Time) time.Time {
	switch c.Unit {
	case CadenceMinutes:
		return t.Add(time.Duration(c.Value) * time.Minute)
	case CadenceHours:
		return t.Add(time.Duration(c.Value) * time.Hour)
	case CadenceDays:
		return t.AddDate(0, 0, c.Value)
	case CadenceWeeks:
		return t.AddDate(0, 0, 7*c.Value)
	case CadenceMonths:
		return t.AddDate(0, c.Value, 0)
	default:
		return t
	}
}

func (c Cadence) String() string {
	return fmt.Sprintf("%d %s", c.Value, c.Unit)
}

// RecurringTemplate spawns a fresh lottery every Frequency, each open for Duration.
type RecurringTemplate struct {
	ID                  uint              `json:"id"`
	Name                string            `json:"name"`
	Active              bool              `json:"active"`
	Frequency           Cadence           `json:"frequency"`
	TicketPrice         decimal.Decimal   `json:"ticket_price"`
	Duration            Cadence           `json:"duration"`
	WinnerCount         int               `json:"winner_count"`
	WinnersDistribution []decimal.Decimal `json:"winners_distribution"`
	MaxTicketsPerUser   *int              `json:"max_tickets_per_user,omitempty"`
	PaymentReceiverID   int64             `json:"payment_receiver_id"`
	LastRunAt           *time.Time        `json:"last_run_at,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

func (t RecurringTemplate) Validate() error {
	err := validation.ValidateStruct(
		&t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&t.Frequency),
		validation.Field(&t.Duration),
		validation.Field(&t.TicketPrice, validation.By(positiveAmount)),
		validation.Field(&t.WinnerCount, validation.Required, validation.Min(1)),
		validation.Field(&t.MaxTicketsPerUser, validation.By(positiveCap)),
	)
	if err != nil {
		return err
	}

	return ValidateDistribution(t.WinnerCount, t.WinnersDistribution)
}

// NewLottery instantiates the next lottery of the template, open from now for
// one Duration.
func (t RecurringTemplate) NewLottery(now time.Time) Lottery {
	templateID := t.ID
	distribution := make([]decimal.Decimal, len(t.WinnersDistribution))
	copy(distribution, t.WinnersDistribution)

	var maxTickets *int
	if t.MaxTicketsPerUser != nil {
		v := *t.MaxTicketsPerUser
		maxTickets = &v
	}

	return Lottery{
		TicketPrice:         t.TicketPrice,
		StartDate:           now,
		EndDate:             t.Duration.AddTo(now),
		Status:              LotteryStatusActive,
		WinnerCount:         t.WinnerCount,
		WinnersDistribution: distribution,
		MaxTicketsPerUser:   maxTickets,
		TotalPot:            decimal.Zero,
		PaymentReceiverID:   t.PaymentReceiverID,
		TemplateID:          &templateID,
	}
}
