package alert

import "time"

// Alert is raised by the ingestion pipeline; this service only reads it.
type Alert struct {
	ID        uint
	Type      string
	Message   string
	Severity  string
	Timestamp time.Time
	Resolved  bool
}
