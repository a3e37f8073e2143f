package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/isk-lottery/internal/config"
	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/lock"
	"github.com/vietanh2810/isk-lottery/internal/notify"
	"github.com/vietanh2810/isk-lottery/internal/repository/memstore"
	"github.com/vietanh2810/isk-lottery/internal/scheduler"
	"github.com/vietanh2810/isk-lottery/internal/service"
)

const (
	operatorName     = "admin"
	operatorPassword = "correct horse battery staple"
	receiverID       = 98000001
	userAgent        = "api-test"
)

type testServer struct {
	server    *Server
	ledger    *memstore.Ledger
	directory *memstore.Directory
	token     string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	hash, err := service.HashPassword(operatorPassword)
	require.NoError(t, err)

	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:          "test",
			JWTSigningKey:        "api-test-signing-key",
			JWTTTL:               time.Hour,
			OperatorUsername:     operatorName,
			OperatorPasswordHash: hash,
		},
		Gin: &config.GinConfig{Mode: "test"},
	}

	store := memstore.New()
	ledger := memstore.NewLedger(store)
	directory := memstore.NewDirectory()
	notifier := notify.LogSink{}

	sched := scheduler.New()
	t.Cleanup(sched.Stop)

	issuance := service.NewIssuanceService(store, ledger, directory, notifier, 2)
	lotteries := service.NewLotteryService(store, service.NewReferenceGenerator(store, 5), notifier, 3)
	rewards := service.NewRewardService(store)
	lifecycle := service.NewLifecycleService(store, ledger, issuance, lock.NewMemoryLocker(),
		service.NewWinnerPicker(1), rewards, notifier, service.LifecycleConfig{
			LockKey:          "sweep",
			LockTTL:          time.Minute,
			SyncPollInterval: time.Millisecond,
			SyncTimeout:      time.Millisecond,
			ScanTimeout:      time.Second,
			FinalizeRetries:  1,
			FinalizeBackoff:  time.Millisecond,
		})

	s := NewServer(conf, Services{
		Auth:      service.NewAuthService(operatorName, hash),
		Lotteries: lotteries,
		Templates: service.NewRecurringService(store, lotteries, sched),
		Rewards:   rewards,
		Scanner:   issuance,
		Sweeper:   lifecycle,
	})

	return &testServer{server: s, ledger: ledger, directory: directory}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}

	rec := httptest.NewRecorder()
	ts.server.Router.ServeHTTP(rec, req)

	return rec
}

func (ts *testServer) login(t *testing.T) {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": operatorName,
		"password": operatorPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token    string          `json:"token"`
		Operator domain.Operator `json:"operator"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, operatorName, resp.Operator.Username)

	ts.token = resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func lotteryBody(end time.Time) map[string]any {
	return map[string]any{
		"ticket_price":         "1000000",
		"end_date":             end.Format(time.RFC3339),
		"winner_count":         2,
		"winners_distribution": []string{"70", "30"},
		"payment_receiver_id":  receiverID,
	}
}

func TestServer_PublicRoutes(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/metrics", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/api/v1/lotteries", nil).Code)
}

func TestServer_Login(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{"wrong password", map[string]string{"username": operatorName, "password": "nope"}, http.StatusUnauthorized},
		{"unknown operator", map[string]string{"username": "root", "password": operatorPassword}, http.StatusUnauthorized},
		{"missing password", map[string]string{"username": operatorName}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	ts.login(t)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/v1/lotteries", nil).Code)
}

func TestServer_LotteryLifecycle(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/lotteries", lotteryBody(time.Now().Add(24*time.Hour)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	lottery := decode[domain.Lottery](t, rec)
	assert.Equal(t, domain.LotteryStatusActive, lottery.Status)
	assert.Regexp(t, `^LOTTERY-\d{10}$`, lottery.Reference)

	ts.directory.Register(7, 90000007, "Pilot Seven")
	ts.ledger.Append(domain.LedgerEntry{
		TransactionID: "tx-1",
		PayerID:       90000007,
		ReceiverID:    receiverID,
		Memo:          lottery.Reference,
		Amount:        decimal.NewFromInt(3_500_000),
		Date:          time.Now(),
	})

	rec = ts.do(t, http.MethodPost, "/api/v1/ops/scan", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	scan := decode[service.ScanResult](t, rec)
	assert.Equal(t, 1, scan.Processed)

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/lotteries/%d/tickets", lottery.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tickets := decode[[]domain.Ticket](t, rec)
	require.Len(t, tickets, 1)
	assert.Equal(t, 3, tickets[0].Quantity)

	rec = ts.do(t, http.MethodGet, "/api/v1/anomalies?kind=overpayment", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	anomalies := decode[[]domain.Anomaly](t, rec)
	require.Len(t, anomalies, 1)
	assert.True(t, decimal.NewFromInt(500_000).Equal(anomalies[0].Amount))

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/anomalies/%d", anomalies[0].ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/anomalies/%d", anomalies[0].ID), nil).Code)

	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/lotteries/%d/cancel", lottery.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.LotteryStatusCancelled, decode[domain.Lottery](t, rec).Status)

	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/lotteries/%d/cancel", lottery.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/lotteries?status=cancelled", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Lottery](t, rec), 1)
}

func TestServer_LotteryErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	invalid := lotteryBody(time.Now().Add(time.Hour))
	invalid["winners_distribution"] = []string{"70", "20"}

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{"distribution not 100", http.MethodPost, "/api/v1/lotteries", invalid, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/v1/lotteries", "not an object", http.StatusBadRequest},
		{"unknown lottery", http.MethodGet, "/api/v1/lotteries/999", nil, http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/v1/lotteries/abc", nil, http.StatusBadRequest},
		{"unknown status filter", http.MethodGet, "/api/v1/lotteries?status=drawing", nil, http.StatusBadRequest},
		{"unknown anomaly kind", http.MethodGet, "/api/v1/anomalies?kind=fraud", nil, http.StatusBadRequest},
		{"unknown winner", http.MethodPost, "/api/v1/winners/5/distributed", nil, http.StatusNotFound},
		{"delete unknown lottery", http.MethodDelete, "/api/v1/lotteries/42", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestServer_Templates(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	body := map[string]any{
		"name":                 "Daily",
		"frequency":            map[string]any{"value": 1, "unit": "days"},
		"duration":             map[string]any{"value": 20, "unit": "hours"},
		"ticket_price":         "2000000",
		"winner_count":         1,
		"winners_distribution": []string{"100"},
		"payment_receiver_id":  receiverID,
	}

	rec := ts.do(t, http.MethodPost, "/api/v1/templates", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	template := decode[domain.RecurringTemplate](t, rec)
	assert.True(t, template.Active)
	assert.NotNil(t, template.LastRunAt)

	rec = ts.do(t, http.MethodGet, "/api/v1/lotteries?status=active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	spawned := decode[[]domain.Lottery](t, rec)
	require.Len(t, spawned, 1)
	require.NotNil(t, spawned[0].TemplateID)
	assert.Equal(t, template.ID, *spawned[0].TemplateID)

	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/api/v1/templates", body).Code)

	body["frequency"] = map[string]any{"value": 1, "unit": "fortnights"}
	body["name"] = "Broken"
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/api/v1/templates", body).Code)

	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/templates/%d/deactivate", template.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[domain.RecurringTemplate](t, rec).Active)

	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/templates/%d/run", template.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[map[string]any](t, rec)["created"].(bool))

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/templates/%d", template.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/templates/%d", template.ID), nil).Code)
}

func TestServer_RewardTiers(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/api/v1/rewards/tiers",
		map[string]any{"name": "Gold", "points_required": 0}).Code)

	rec := ts.do(t, http.MethodPost, "/api/v1/rewards/tiers", map[string]any{"name": "Gold", "points_required": 500})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/rewards/tiers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.RewardTier](t, rec), 1)
}

func TestServer_Sweep(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/ops/sweep", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[service.SweepResult](t, rec)
	assert.False(t, result.Skipped)
	assert.Empty(t, result.Completed)
}
