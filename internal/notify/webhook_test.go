package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

func TestWebhookSink_Notify(t *testing.T) {
	var (
		mu       sync.Mutex
		received []webhookPayload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload webhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		mu.Lock()
		received = append(received, payload)
		mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, 100, 10, time.Second)
	sink.Notify(context.Background(), domain.Direct(7, "Tickets purchased", "2 tickets", domain.SeveritySuccess))
	sink.Notify(context.Background(), domain.Broadcast("Lottery completed", "LOTTERY-0000000001", domain.SeverityInfo))
	sink.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)

	byTitle := map[string]webhookEmbed{}
	for _, payload := range received {
		require.Len(t, payload.Embeds, 1)
		byTitle[payload.Embeds[0].Title] = payload.Embeds[0]
	}

	direct := byTitle["Tickets purchased"]
	assert.Equal(t, "2 tickets", direct.Description)
	assert.Equal(t, severityColors[domain.SeveritySuccess], direct.Color)
	require.NotNil(t, direct.Footer)
	assert.Equal(t, "user #7", direct.Footer.Text)

	assert.Nil(t, byTitle["Lottery completed"].Footer)
}

func TestWebhookSink_FailuresAreSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, 100, 10, time.Second)

	assert.NotPanics(t, func() {
		sink.Notify(context.Background(), domain.Broadcast("x", "y", domain.SeverityDanger))
		sink.Wait()
	})
}

type recordingSink struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (r *recordingSink) Notify(_ context.Context, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func TestFanout(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}

	Fanout{a, b, LogSink{}}.Notify(context.Background(), domain.Broadcast("t", "m", domain.SeverityInfo))

	assert.Len(t, a.items, 1)
	assert.Len(t, b.items, 1)
}
