package response

import "github.com/vietanh2810/isk-lottery/internal/domain"

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int64           `json:"expires_in"`
	Operator  domain.Operator `json:"operator"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// TemplateRunResponse reports the lottery spawned by a manual template run.
type TemplateRunResponse struct {
	Created bool            `json:"created"`
	Lottery *domain.Lottery `json:"lottery,omitempty"`
}
