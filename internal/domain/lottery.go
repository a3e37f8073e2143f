package domain

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

type LotteryStatus string

const (
	LotteryStatusActive    LotteryStatus = "active"
	LotteryStatusPending   LotteryStatus = "pending"
	LotteryStatusCompleted LotteryStatus = "completed"
	LotteryStatusCancelled LotteryStatus = "cancelled"
)

var (
	ErrInvalidDistribution = errors.New("invalid winners distribution")
	ErrInvalidTransition   = errors.New("invalid lottery status transition")
)

// distributionTolerance absorbs rounding of operator-entered percentages.
var distributionTolerance = decimal.RequireFromString("0.01")

var hundred = decimal.NewFromInt(100)

var transitions = map[LotteryStatus][]LotteryStatus{
	LotteryStatusActive:  {LotteryStatusPending, LotteryStatusCancelled},
	LotteryStatusPending: {LotteryStatusCompleted, LotteryStatusCancelled},
}

// IsOpen reports whether payments may still be matched against the lottery.
func (s LotteryStatus) IsOpen() bool {
	return s == LotteryStatusActive || s == LotteryStatusPending
}

func (s LotteryStatus) IsTerminal() bool {
	return s == LotteryStatusCompleted || s == LotteryStatusCancelled
}

func (s LotteryStatus) CanTransitionTo(next LotteryStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type Lottery struct {
	ID                  uint              `json:"id"`
	Reference           string            `json:"reference"`
	TicketPrice         decimal.Decimal   `json:"ticket_price"`
	StartDate           time.Time         `json:"start_date"`
	EndDate             time.Time         `json:"end_date"`
	Status              LotteryStatus     `json:"status"`
	WinnerCount         int               `json:"winner_count"`
	WinnersDistribution []decimal.Decimal `json:"winners_distribution"`
	MaxTicketsPerUser   *int              `json:"max_tickets_per_user,omitempty"`
	TotalPot            decimal.Decimal   `json:"total_pot"`
	PaymentReceiverID   int64             `json:"payment_receiver_id"`
	TemplateID          *uint             `json:"template_id,omitempty"`
	CompletedAt         *time.Time        `json:"completed_at,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// Validate checks everything an operator or a template can get wrong before
// the lottery is persisted.
func (l Lottery) Validate() error {
	err := validation.ValidateStruct(
		&l,
		validation.Field(&l.TicketPrice, validation.By(positiveAmount)),
		validation.Field(&l.StartDate, validation.Required),
		validation.Field(&l.EndDate, validation.Required, validation.By(after(l.StartDate))),
		validation.Field(&l.WinnerCount, validation.Required, validation.Min(1)),
		validation.Field(&l.MaxTicketsPerUser, validation.By(positiveCap)),
	)
	if err != nil {
		return err
	}

	return ValidateDistribution(l.WinnerCount, l.WinnersDistribution)
}

// AcceptsPaymentAt reports whether t falls inside the inclusive sales window.
func (l Lottery) AcceptsPaymentAt(t time.Time) bool {
	return !t.Before(l.StartDate) && !t.After(l.EndDate)
}

func (l Lottery) IsExpired(now time.Time) bool {
	return !l.EndDate.After(now)
}

// PrizeFor returns the prize of the given draw position, rounded to currency precision.
func (l Lottery) PrizeFor(position int, pot decimal.Decimal) decimal.Decimal {
	if position < 0 || position >= len(l.WinnersDistribution) {
		return decimal.Zero
	}

	return PrizeAmount(pot, l.WinnersDistribution[position])
}

func PrizeAmount(pot, percentage decimal.Decimal) decimal.Decimal {
	return pot.Mul(percentage).Div(hundred).Round(2)
}

// ValidateDistribution enforces one strictly positive percentage per winner,
// summing to 100.
func ValidateDistribution(winnerCount int, distribution []decimal.Decimal) error {
	if winnerCount < 1 {
		return fmt.Errorf("%w: winner count must be at least 1", ErrInvalidDistribution)
	}

	if len(distribution) != winnerCount {
		return fmt.Errorf("%w: expected %d percentages, got %d", ErrInvalidDistribution, winnerCount, len(distribution))
	}

	sum := decimal.Zero
	for i, pct := range distribution {
		if !pct.IsPositive() {
			return fmt.Errorf("%w: percentage #%d must be greater than 0", ErrInvalidDistribution, i+1)
		}
		sum = sum.Add(pct)
	}

	if sum.Sub(hundred).Abs().GreaterThan(distributionTolerance) {
		return fmt.Errorf("%w: percentages sum to %s, expected 100", ErrInvalidDistribution, sum.String())
	}

	return nil
}

func positiveAmount(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if !d.IsPositive() {
		return errors.New("must be greater than 0")
	}

	return nil
}

func positiveCap(value interface{}) error {
	c, _ := value.(*int)
	if c != nil && *c < 1 {
		return errors.New("must be at least 1 when set")
	}

	return nil
}

func after(start time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		end, _ := value.(time.Time)
		if !end.After(start) {
			return errors.New("must be after the start date")
		}

		return nil
	}
}
