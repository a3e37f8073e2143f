package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

func (s *GormStore) CreateLottery(ctx context.Context, lottery domain.Lottery) (domain.Lottery, error) {
	row, err := lotteryDomainToDao(lottery)
	if err != nil {
		return domain.Lottery{}, err
	}

	created, err := s.lotteries.Insert(ctx, row)
	if err != nil {
		return domain.Lottery{}, fmt.Errorf("s.lotteries.Insert -> %w", err)
	}

	return lotteryDaoToDomain(created)
}

func (s *GormStore) GetLottery(ctx context.Context, id uint) (domain.Lottery, error) {
	row, err := s.lotteries.FindByID(ctx, id)
	if err != nil {
		return domain.Lottery{}, fmt.Errorf("s.lotteries.FindByID -> %w", err)
	}

	return lotteryDaoToDomain(row)
}

func (s *GormStore) LockLottery(ctx context.Context, id uint) (domain.Lottery, error) {
	row, err := s.lotteries.FindByIDForUpdate(ctx, id)
	if err != nil {
		return domain.Lottery{}, fmt.Errorf("s.lotteries.FindByIDForUpdate -> %w", err)
	}

	return lotteryDaoToDomain(row)
}

func (s *GormStore) LockOpenLotteryByReference(ctx context.Context, reference string) (domain.Lottery, error) {
	row, err := s.lotteries.FindOpenByReferenceForUpdate(ctx, reference, statusStrings(OpenStatuses()))
	if err != nil {
		return domain.Lottery{}, fmt.Errorf("s.lotteries.FindOpenByReferenceForUpdate -> %w", err)
	}

	return lotteryDaoToDomain(row)
}

func (s *GormStore) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	exists, err := s.lotteries.ReferenceExists(ctx, reference)
	if err != nil {
		return false, fmt.Errorf("s.lotteries.ReferenceExists -> %w", err)
	}

	return exists, nil
}

func (s *GormStore) ListLotteries(ctx context.Context, filter LotteryFilter) ([]domain.Lottery, error) {
	rows, err := s.lotteries.FindByStatus(ctx, statusStrings(filter.Statuses))
	if err != nil {
		return nil, fmt.Errorf("s.lotteries.FindByStatus -> %w", err)
	}

	return lotteriesDaoToDomain(rows)
}

func (s *GormStore) ListExpiredLotteries(ctx context.Context, now time.Time) ([]domain.Lottery, error) {
	rows, err := s.lotteries.FindExpired(ctx, statusStrings(OpenStatuses()), now)
	if err != nil {
		return nil, fmt.Errorf("s.lotteries.FindExpired -> %w", err)
	}

	return lotteriesDaoToDomain(rows)
}

func (s *GormStore) TransitionLottery(ctx context.Context, id uint, from []domain.LotteryStatus, to domain.LotteryStatus, at time.Time) (bool, error) {
	var completedAt *time.Time
	if to == domain.LotteryStatusCompleted {
		completedAt = &at
	}

	moved, err := s.lotteries.UpdateStatus(ctx, id, statusStrings(from), string(to), completedAt)
	if err != nil {
		return false, fmt.Errorf("s.lotteries.UpdateStatus -> %w", err)
	}

	return moved, nil
}

func (s *GormStore) UpdateLotteryPot(ctx context.Context, id uint, pot decimal.Decimal) error {
	if err := s.lotteries.UpdatePot(ctx, id, pot); err != nil {
		return fmt.Errorf("s.lotteries.UpdatePot -> %w", err)
	}

	return nil
}

func (s *GormStore) DeleteLottery(ctx context.Context, id uint) error {
	if err := s.lotteries.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.lotteries.Delete -> %w", err)
	}

	return nil
}

func statusStrings(statuses []domain.LotteryStatus) []string {
	out := make([]string, len(statuses))
	for i, status := range statuses {
		out[i] = string(status)
	}

	return out
}

func encodeDistribution(distribution []decimal.Decimal) ([]byte, error) {
	raw, err := json.Marshal(distribution)
	if err != nil {
		return nil, fmt.Errorf("encode winners distribution -> %w", err)
	}

	return raw, nil
}

func decodeDistribution(raw []byte) ([]decimal.Decimal, error) {
	var distribution []decimal.Decimal
	if len(raw) == 0 {
		return distribution, nil
	}

	if err := json.Unmarshal(raw, &distribution); err != nil {
		return nil, fmt.Errorf("decode winners distribution -> %w", err)
	}

	return distribution, nil
}

func lotteryDomainToDao(l domain.Lottery) (dao.Lottery, error) {
	distribution, err := encodeDistribution(l.WinnersDistribution)
	if err != nil {
		return dao.Lottery{}, err
	}

	return dao.Lottery{
		ID:                  l.ID,
		Reference:           l.Reference,
		TicketPrice:         l.TicketPrice,
		StartDate:           l.StartDate,
		EndDate:             l.EndDate,
		Status:              string(l.Status),
		WinnerCount:         l.WinnerCount,
		WinnersDistribution: distribution,
		MaxTicketsPerUser:   l.MaxTicketsPerUser,
		TotalPot:            l.TotalPot,
		PaymentReceiverID:   l.PaymentReceiverID,
		TemplateID:          l.TemplateID,
		CompletedAt:         l.CompletedAt,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}, nil
}

func lotteryDaoToDomain(l dao.Lottery) (domain.Lottery, error) {
	distribution, err := decodeDistribution(l.WinnersDistribution)
	if err != nil {
		return domain.Lottery{}, err
	}

	return domain.Lottery{
		ID:                  l.ID,
		Reference:           l.Reference,
		TicketPrice:         l.TicketPrice,
		StartDate:           l.StartDate,
		EndDate:             l.EndDate,
		Status:              domain.LotteryStatus(l.Status),
		WinnerCount:         l.WinnerCount,
		WinnersDistribution: distribution,
		MaxTicketsPerUser:   l.MaxTicketsPerUser,
		TotalPot:            l.TotalPot,
		PaymentReceiverID:   l.PaymentReceiverID,
		TemplateID:          l.TemplateID,
		CompletedAt:         l.CompletedAt,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}, nil
}

func lotteriesDaoToDomain(rows []dao.Lottery) ([]domain.Lottery, error) {
	lotteries := make([]domain.Lottery, 0, len(rows))
	for _, row := range rows {
		l, err := lotteryDaoToDomain(row)
		if err != nil {
			return nil, err
		}
		lotteries = append(lotteries, l)
	}

	return lotteries, nil
}
