package models

// Notice tones.
const (
	ToneInfo    = "info"
	ToneSuccess = "success"
	ToneError   = "error"
)

// Notice is a transient, auto-dismissing message shown to the host. Only one
// notice is visible at a time; a new one replaces any pending dismissal.
type Notice struct {
	ID      string
	Message string
	Tone    string
}
