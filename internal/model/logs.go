// internal/model/logs.go
package model

import "time"

// LogEntry represents a single line in the panel log view
type LogEntry struct {
	Timestamp time.Time
	Message   string
	Origin    string // "server" or "panel"
}
