package models

// Status is the outcome of one check cycle, reported by the trigger endpoint.
type Status string

const (
	StatusUnchanged   Status = "UNCHANGED"
	StatusNotified    Status = "NOTIFIED"
	StatusFailedFetch Status = "FAILED_FETCH"
	StatusFailedSend  Status = "FAILED_SEND"
	StatusError       Status = "ERROR"
)

// Message is the human readable text that accompanies a status in responses.
func (s Status) Message() string {
	switch s {
	case StatusUnchanged:
		return "Stock data is the same as last time."
	case StatusNotified:
		return "Notification sent successfully."
	case StatusFailedFetch:
		return "Could not fetch stock data from source."
	case StatusFailedSend:
		return "Failed to send Discord webhook."
	}
	return "Unknown error occurred."
}

// OK reports whether the status is a successful cycle outcome.
func (s Status) OK() bool {
	return s == StatusUnchanged || s == StatusNotified
}
