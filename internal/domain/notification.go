package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Notification is fire-and-forget. A nil Recipient is a broadcast.
type Notification struct {
	Recipient *uint    `json:"recipient,omitempty"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
}

func Broadcast(title, message string, severity Severity) Notification {
	return Notification{Title: title, Message: message, Severity: severity}
}

func Direct(userID uint, title, message string, severity Severity) Notification {
	return Notification{Recipient: &userID, Title: title, Message: message, Severity: severity}
}
