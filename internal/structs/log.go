package structs

import "time"

// LogRecord is the payload the forwarding hook posts to a log collector.
type LogRecord struct {
	Service string    `json:"service"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Caller  string    `json:"caller"`
	Time    time.Time `json:"time"`
}
