// Package memstore keeps every lottery store in process memory. It backs the
// "memory" storage driver and the service tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository"
)

type rewardKey struct {
	userID uint
	tierID uint
}

type state struct {
	seq       uint
	lotteries map[uint]domain.Lottery
	tickets   map[uint]domain.Ticket
	anomalies map[uint]domain.Anomaly
	processed map[string]domain.ProcessedPayment
	winners   map[uint]domain.Winner
	templates map[uint]domain.RecurringTemplate
	points    map[uint]int64
	tiers     map[uint]domain.RewardTier
	rewards   map[rewardKey]domain.UserReward
}

func newState() *state {
	return &state{
		lotteries: map[uint]domain.Lottery{},
		tickets:   map[uint]domain.Ticket{},
		anomalies: map[uint]domain.Anomaly{},
		processed: map[string]domain.ProcessedPayment{},
		winners:   map[uint]domain.Winner{},
		templates: map[uint]domain.RecurringTemplate{},
		points:    map[uint]int64{},
		tiers:     map[uint]domain.RewardTier{},
		rewards:   map[rewardKey]domain.UserReward{},
	}
}

func (s *state) clone() *state {
	c := &state{
		seq:       s.seq,
		lotteries: make(map[uint]domain.Lottery, len(s.lotteries)),
		tickets:   make(map[uint]domain.Ticket, len(s.tickets)),
		anomalies: make(map[uint]domain.Anomaly, len(s.anomalies)),
		processed: make(map[string]domain.ProcessedPayment, len(s.processed)),
		winners:   make(map[uint]domain.Winner, len(s.winners)),
		templates: make(map[uint]domain.RecurringTemplate, len(s.templates)),
		points:    make(map[uint]int64, len(s.points)),
		tiers:     make(map[uint]domain.RewardTier, len(s.tiers)),
		rewards:   make(map[rewardKey]domain.UserReward, len(s.rewards)),
	}
	for k, v := range s.lotteries {
		c.lotteries[k] = v
	}
	for k, v := range s.tickets {
		c.tickets[k] = v
	}
	for k, v := range s.anomalies {
		c.anomalies[k] = v
	}
	for k, v := range s.processed {
		c.processed[k] = v
	}
	for k, v := range s.winners {
		c.winners[k] = v
	}
	for k, v := range s.templates {
		c.templates[k] = v
	}
	for k, v := range s.points {
		c.points[k] = v
	}
	for k, v := range s.tiers {
		c.tiers[k] = v
	}
	for k, v := range s.rewards {
		c.rewards[k] = v
	}

	return c
}

func (s *state) nextID() uint {
	s.seq++
	return s.seq
}

// Store implements repository.Store. Units of work are serialized by a single
// mutex, which gives the same guarantees as row locks at process scale.
type Store struct {
	mu   *sync.Mutex
	data *state
	held bool
	now  func() time.Time
}

func New() *Store {
	return &Store{
		mu:   &sync.Mutex{},
		data: newState(),
		now:  time.Now,
	}
}

// WithClock makes generated timestamps deterministic.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) enter() func() {
	if s.held {
		return func() {}
	}

	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Atomic(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.held {
		return fn(s)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &Store{mu: s.mu, data: s.data, held: true, now: s.now}
	if err := fn(tx); err != nil {
		*s.data = *snapshot
		return err
	}

	return nil
}

func (s *Store) CreateLottery(_ context.Context, lottery domain.Lottery) (domain.Lottery, error) {
	defer s.enter()()

	for _, existing := range s.data.lotteries {
		if existing.Reference == lottery.Reference {
			return domain.Lottery{}, repository.ErrLotteryReferenceExists
		}
	}

	now := s.now()
	lottery.ID = s.data.nextID()
	lottery.CreatedAt = now
	lottery.UpdatedAt = now
	s.data.lotteries[lottery.ID] = lottery

	return lottery, nil
}

func (s *Store) GetLottery(_ context.Context, id uint) (domain.Lottery, error) {
	defer s.enter()()

	lottery, ok := s.data.lotteries[id]
	if !ok {
		return domain.Lottery{}, repository.ErrLotteryNotFound
	}

	return lottery, nil
}

func (s *Store) LockLottery(ctx context.Context, id uint) (domain.Lottery, error) {
	return s.GetLottery(ctx, id)
}

func (s *Store) LockOpenLotteryByReference(_ context.Context, reference string) (domain.Lottery, error) {
	defer s.enter()()

	for _, lottery := range s.data.lotteries {
		if lottery.Reference == reference && lottery.Status.IsOpen() {
			return lottery, nil
		}
	}

	return domain.Lottery{}, repository.ErrLotteryNotFound
}

func (s *Store) ReferenceExists(_ context.Context, reference string) (bool, error) {
	defer s.enter()()

	for _, lottery := range s.data.lotteries {
		if lottery.Reference == reference {
			return true, nil
		}
	}

	return false, nil
}

func (s *Store) ListLotteries(_ context.Context, filter repository.LotteryFilter) ([]domain.Lottery, error) {
	defer s.enter()()

	lotteries := make([]domain.Lottery, 0, len(s.data.lotteries))
	for _, lottery := range s.data.lotteries {
		if len(filter.Statuses) > 0 && !hasStatus(filter.Statuses, lottery.Status) {
			continue
		}
		lotteries = append(lotteries, lottery)
	}
	sort.Slice(lotteries, func(i, j int) bool { return lotteries[i].ID < lotteries[j].ID })

	return lotteries, nil
}

func (s *Store) ListExpiredLotteries(_ context.Context, now time.Time) ([]domain.Lottery, error) {
	defer s.enter()()

	var lotteries []domain.Lottery
	for _, lottery := range s.data.lotteries {
		if lottery.Status.IsOpen() && lottery.IsExpired(now) {
			lotteries = append(lotteries, lottery)
		}
	}
	sort.Slice(lotteries, func(i, j int) bool {
		if lotteries[i].EndDate.Equal(lotteries[j].EndDate) {
			return lotteries[i].ID < lotteries[j].ID
		}
		return lotteries[i].EndDate.Before(lotteries[j].EndDate)
	})

	return lotteries, nil
}

func (s *Store) TransitionLottery(_ context.Context, id uint, from []domain.LotteryStatus, to domain.LotteryStatus, at time.Time) (bool, error) {
	defer s.enter()()

	lottery, ok := s.data.lotteries[id]
	if !ok || !hasStatus(from, lottery.Status) {
		return false, nil
	}

	lottery.Status = to
	lottery.UpdatedAt = at
	if to == domain.LotteryStatusCompleted {
		completedAt := at
		lottery.CompletedAt = &completedAt
	}
	s.data.lotteries[id] = lottery

	return true, nil
}

func (s *Store) UpdateLotteryPot(_ context.Context, id uint, pot decimal.Decimal) error {
	defer s.enter()()

	lottery, ok := s.data.lotteries[id]
	if !ok {
		return repository.ErrLotteryNotFound
	}

	lottery.TotalPot = pot
	lottery.UpdatedAt = s.now()
	s.data.lotteries[id] = lottery

	return nil
}

func (s *Store) DeleteLottery(_ context.Context, id uint) error {
	defer s.enter()()

	if _, ok := s.data.lotteries[id]; !ok {
		return repository.ErrLotteryNotFound
	}

	for wid, winner := range s.data.winners {
		if winner.LotteryID == id {
			delete(s.data.winners, wid)
		}
	}
	for tid, ticket := range s.data.tickets {
		if ticket.LotteryID == id {
			delete(s.data.tickets, tid)
		}
	}
	for aid, anomaly := range s.data.anomalies {
		if anomaly.LotteryID != nil && *anomaly.LotteryID == id {
			delete(s.data.anomalies, aid)
		}
	}
	delete(s.data.lotteries, id)

	return nil
}

func (s *Store) LockTicket(_ context.Context, lotteryID, userID uint, characterID int64) (domain.Ticket, error) {
	defer s.enter()()

	for _, ticket := range s.data.tickets {
		if ticket.LotteryID == lotteryID && ticket.UserID == userID && ticket.CharacterID == characterID {
			return ticket, nil
		}
	}

	return domain.Ticket{}, repository.ErrTicketNotFound
}

func (s *Store) SaveTicket(_ context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	defer s.enter()()

	now := s.now()
	if ticket.ID == 0 {
		ticket.ID = s.data.nextID()
		ticket.CreatedAt = now
	}
	ticket.UpdatedAt = now
	s.data.tickets[ticket.ID] = ticket

	return ticket, nil
}

func (s *Store) CountUserTickets(_ context.Context, lotteryID, userID uint) (int, error) {
	defer s.enter()()

	total := 0
	for _, ticket := range s.data.tickets {
		if ticket.LotteryID == lotteryID && ticket.UserID == userID {
			total += ticket.Quantity
		}
	}

	return total, nil
}

func (s *Store) ListTickets(_ context.Context, lotteryID uint) ([]domain.Ticket, error) {
	defer s.enter()()

	var tickets []domain.Ticket
	for _, ticket := range s.data.tickets {
		if ticket.LotteryID == lotteryID {
			tickets = append(tickets, ticket)
		}
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })

	return tickets, nil
}

func (s *Store) SumTicketAmounts(_ context.Context, lotteryID uint) (decimal.Decimal, error) {
	defer s.enter()()

	total := decimal.Zero
	for _, ticket := range s.data.tickets {
		if ticket.LotteryID == lotteryID {
			total = total.Add(ticket.TotalPaid)
		}
	}

	return total, nil
}

func (s *Store) LatestReconciledPaymentDate(_ context.Context, lotteryID uint) (time.Time, bool, error) {
	defer s.enter()()

	var latest time.Time
	found := false
	consider := func(t time.Time) {
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}

	for _, ticket := range s.data.tickets {
		if ticket.LotteryID == lotteryID {
			consider(ticket.LastPaymentDate)
		}
	}
	for _, anomaly := range s.data.anomalies {
		if anomaly.LotteryID != nil && *anomaly.LotteryID == lotteryID {
			consider(anomaly.PaymentDate)
		}
	}

	return latest, found, nil
}

func (s *Store) CreateAnomaly(_ context.Context, anomaly domain.Anomaly) (domain.Anomaly, error) {
	defer s.enter()()

	anomaly.ID = s.data.nextID()
	s.data.anomalies[anomaly.ID] = anomaly

	return anomaly, nil
}

func (s *Store) ListAnomalies(_ context.Context, filter repository.AnomalyFilter) ([]domain.Anomaly, error) {
	defer s.enter()()

	var anomalies []domain.Anomaly
	for _, anomaly := range s.data.anomalies {
		if filter.LotteryID != nil && (anomaly.LotteryID == nil || *anomaly.LotteryID != *filter.LotteryID) {
			continue
		}
		if filter.Kind != "" && anomaly.Kind != filter.Kind {
			continue
		}
		anomalies = append(anomalies, anomaly)
	}
	sort.Slice(anomalies, func(i, j int) bool { return anomalies[i].ID > anomalies[j].ID })

	return anomalies, nil
}

func (s *Store) DeleteAnomaly(_ context.Context, id uint) error {
	defer s.enter()()

	if _, ok := s.data.anomalies[id]; !ok {
		return repository.ErrAnomalyNotFound
	}
	delete(s.data.anomalies, id)

	return nil
}

func (s *Store) IsProcessed(_ context.Context, transactionID string) (bool, error) {
	defer s.enter()()

	_, ok := s.data.processed[transactionID]
	return ok, nil
}

func (s *Store) MarkProcessed(_ context.Context, payment domain.ProcessedPayment) error {
	defer s.enter()()

	if _, ok := s.data.processed[payment.TransactionID]; ok {
		return repository.ErrAlreadyProcessed
	}

	payment.ID = s.data.nextID()
	s.data.processed[payment.TransactionID] = payment

	return nil
}

// ProcessedCount is the number of transaction ids marked as handled.
func (s *Store) ProcessedCount() int {
	defer s.enter()()

	return len(s.data.processed)
}

func (s *Store) CreateWinner(_ context.Context, winner domain.Winner) (domain.Winner, error) {
	defer s.enter()()

	for _, existing := range s.data.winners {
		if existing.TicketID == winner.TicketID {
			return domain.Winner{}, repository.ErrTicketAlreadyWon
		}
	}

	winner.ID = s.data.nextID()
	s.data.winners[winner.ID] = winner

	return winner, nil
}

func (s *Store) ListWinners(_ context.Context, lotteryID uint) ([]domain.Winner, error) {
	defer s.enter()()

	var winners []domain.Winner
	for _, winner := range s.data.winners {
		if winner.LotteryID == lotteryID {
			winners = append(winners, winner)
		}
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i].Position < winners[j].Position })

	return winners, nil
}

func (s *Store) CountWinners(_ context.Context, lotteryID uint) (int, error) {
	defer s.enter()()

	count := 0
	for _, winner := range s.data.winners {
		if winner.LotteryID == lotteryID {
			count++
		}
	}

	return count, nil
}

func (s *Store) SetWinnerDistributed(_ context.Context, id uint, distributed bool, at time.Time) (domain.Winner, error) {
	defer s.enter()()

	winner, ok := s.data.winners[id]
	if !ok {
		return domain.Winner{}, repository.ErrWinnerNotFound
	}

	winner.Distributed = distributed
	winner.DistributedAt = nil
	if distributed {
		distributedAt := at
		winner.DistributedAt = &distributedAt
	}
	s.data.winners[id] = winner

	return winner, nil
}

func (s *Store) CreateTemplate(_ context.Context, template domain.RecurringTemplate) (domain.RecurringTemplate, error) {
	defer s.enter()()

	for _, existing := range s.data.templates {
		if existing.Name == template.Name {
			return domain.RecurringTemplate{}, repository.ErrTemplateNameExists
		}
	}

	now := s.now()
	template.ID = s.data.nextID()
	template.CreatedAt = now
	template.UpdatedAt = now
	s.data.templates[template.ID] = template

	return template, nil
}

func (s *Store) GetTemplate(_ context.Context, id uint) (domain.RecurringTemplate, error) {
	defer s.enter()()

	template, ok := s.data.templates[id]
	if !ok {
		return domain.RecurringTemplate{}, repository.ErrTemplateNotFound
	}

	return template, nil
}

func (s *Store) ListTemplates(_ context.Context, activeOnly bool) ([]domain.RecurringTemplate, error) {
	defer s.enter()()

	var templates []domain.RecurringTemplate
	for _, template := range s.data.templates {
		if activeOnly && !template.Active {
			continue
		}
		templates = append(templates, template)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })

	return templates, nil
}

func (s *Store) UpdateTemplate(_ context.Context, template domain.RecurringTemplate) (domain.RecurringTemplate, error) {
	defer s.enter()()

	existing, ok := s.data.templates[template.ID]
	if !ok {
		return domain.RecurringTemplate{}, repository.ErrTemplateNotFound
	}
	for id, other := range s.data.templates {
		if id != template.ID && other.Name == template.Name {
			return domain.RecurringTemplate{}, repository.ErrTemplateNameExists
		}
	}

	template.CreatedAt = existing.CreatedAt
	template.UpdatedAt = s.now()
	s.data.templates[template.ID] = template

	return template, nil
}

func (s *Store) DeleteTemplate(_ context.Context, id uint) error {
	defer s.enter()()

	if _, ok := s.data.templates[id]; !ok {
		return repository.ErrTemplateNotFound
	}
	delete(s.data.templates, id)

	return nil
}

func (s *Store) MarkTemplateRun(_ context.Context, id uint, at time.Time) error {
	defer s.enter()()

	template, ok := s.data.templates[id]
	if !ok {
		return repository.ErrTemplateNotFound
	}

	lastRun := at
	template.LastRunAt = &lastRun
	s.data.templates[id] = template

	return nil
}

func (s *Store) AddUserPoints(_ context.Context, userID uint, delta int64) (int64, error) {
	defer s.enter()()

	s.data.points[userID] += delta
	return s.data.points[userID], nil
}

// UserPoints returns the loyalty balance of a user.
func (s *Store) UserPoints(userID uint) int64 {
	defer s.enter()()

	return s.data.points[userID]
}

func (s *Store) ListRewardTiers(_ context.Context) ([]domain.RewardTier, error) {
	defer s.enter()()

	tiers := make([]domain.RewardTier, 0, len(s.data.tiers))
	for _, tier := range s.data.tiers {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].PointsRequired < tiers[j].PointsRequired })

	return tiers, nil
}

func (s *Store) CreateRewardTier(_ context.Context, tier domain.RewardTier) (domain.RewardTier, error) {
	defer s.enter()()

	tier.ID = s.data.nextID()
	s.data.tiers[tier.ID] = tier

	return tier, nil
}

func (s *Store) GrantReward(_ context.Context, reward domain.UserReward) (bool, error) {
	defer s.enter()()

	key := rewardKey{userID: reward.UserID, tierID: reward.TierID}
	if _, ok := s.data.rewards[key]; ok {
		return false, nil
	}
	s.data.rewards[key] = reward

	return true, nil
}

func hasStatus(statuses []domain.LotteryStatus, status domain.LotteryStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}

	return false
}
