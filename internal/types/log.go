package types

import (
	"encoding/json"
	"time"
)

// LogEntry is one element of a task's terminal feed. Agents write
// structured JSON entries; older tooling pushed bare strings, which are
// normalized with NormalizeLogEntry.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// NormalizeLogEntry turns a raw feed element into a LogEntry. A JSON
// object with a message field is used as stored; anything else becomes
// an info-level entry with the raw text as the message and the current
// time as the timestamp. No element is ever dropped.
func NormalizeLogEntry(raw string, now time.Time) LogEntry {
	var entry LogEntry
	if err := json.Unmarshal([]byte(raw), &entry); err == nil && entry.Message != "" {
		if entry.Level == "" {
			entry.Level = "info"
		}
		return entry
	}

	return LogEntry{
		Timestamp: now.UTC().Format(time.RFC3339),
		Level:     "info",
		Message:   raw,
	}
}
