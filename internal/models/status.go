package models

// StatusType classifies a user-facing status line.
type StatusType string

const (
	StatusError   StatusType = "error"
	StatusSuccess StatusType = "success"
	StatusInfo    StatusType = "info"
)

// Status is a message meant for display, e.g. "Saved to Vault 🔒".
type Status struct {
	Type StatusType
	Text string
}
