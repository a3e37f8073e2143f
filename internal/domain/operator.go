package domain

// Operator is the single administrative account of the service. Its
// credentials come from configuration rather than a user table.
type Operator struct {
	Username string `json:"username"`
}
