package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

var severityColors = map[domain.Severity]int{
	domain.SeverityInfo:    0x3498db,
	domain.SeveritySuccess: 0x2ecc71,
	domain.SeverityWarning: 0xf1c40f,
	domain.SeverityDanger:  0xe74c3c,
}

type webhookEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Footer      *struct {
		Text string `json:"text"`
	} `json:"footer,omitempty"`
}

type webhookPayload struct {
	Embeds []webhookEmbed `json:"embeds"`
}

// WebhookSink posts Discord-compatible embeds. Delivery happens on a
// background goroutine, throttled by a token bucket.
type WebhookSink struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewWebhookSink(url string, perSecond float64, burst int, timeout time.Duration) *WebhookSink {
	return &WebhookSink{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		timeout: timeout,
	}
}

// SetRate retunes the throttle without dropping queued deliveries.
func (s *WebhookSink) SetRate(perSecond float64, burst int) {
	s.limiter.SetLimit(rate.Limit(perSecond))
	s.limiter.SetBurst(burst)
}

func (s *WebhookSink) Notify(_ context.Context, n domain.Notification) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.deliver(ctx, n); err != nil {
			zap.L().Warn("webhook notification dropped", zap.String("title", n.Title), zap.Error(err))
		}
	}()
}

// Wait blocks until in-flight deliveries finish.
func (s *WebhookSink) Wait() {
	s.wg.Wait()
}

func (s *WebhookSink) deliver(ctx context.Context, n domain.Notification) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("s.limiter.Wait -> %w", err)
	}

	embed := webhookEmbed{
		Title:       n.Title,
		Description: n.Message,
		Color:       severityColors[n.Severity],
	}
	if n.Recipient != nil {
		embed.Footer = &struct {
			Text string `json:"text"`
		}{Text: fmt.Sprintf("user #%d", *n.Recipient)}
	}

	body, err := json.Marshal(webhookPayload{Embeds: []webhookEmbed{embed}})
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("s.client.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	return nil
}
