package types

import (
	"encoding/json"
	"time"
)

// TaskState represents the lifecycle state of a task. The state is not a
// field inside the task document; it is encoded by which state directory
// currently holds the record.
type TaskState string

const (
	TaskPending   TaskState = "pending"
	TaskActive    TaskState = "active"
	TaskCompleted TaskState = "completed"
	TaskFailed    TaskState = "failed"
	TaskArchived  TaskState = "archived"
)

// AllStates is the fixed probe order for lookups. When the single-state
// invariant is violated, the earliest directory in this order wins.
var AllStates = []TaskState{TaskPending, TaskActive, TaskCompleted, TaskFailed, TaskArchived}

// TaskRecord is one task document as the orchestrator writes it. Known
// fields are decoded explicitly; everything else the orchestrator put in
// the file survives round-trips through Extra.
type TaskRecord struct {
	TaskID      string `json:"task_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`

	// Location is the state directory the record was read from. It is
	// attached by the store and never present in the document itself.
	Location TaskState `json:"location,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// taskRecordAlias avoids UnmarshalJSON recursion.
type taskRecordAlias TaskRecord

var taskRecordKnownFields = map[string]bool{
	"task_id":     true,
	"title":       true,
	"description": true,
	"priority":    true,
	"status":      true,
	"created_at":  true,
	"location":    true,
}

// UnmarshalJSON decodes the known fields and keeps all remaining
// task-defined fields in Extra.
func (t *TaskRecord) UnmarshalJSON(data []byte) error {
	var alias taskRecordAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key := range raw {
		if taskRecordKnownFields[key] {
			delete(raw, key)
		}
	}
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*t = TaskRecord(alias)
	return nil
}

// MarshalJSON emits the known fields merged with the retained extras.
// Known fields win when a name collides.
func (t TaskRecord) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(taskRecordAlias(t))
	if err != nil {
		return nil, err
	}

	if len(t.Extra) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range t.Extra {
		if _, exists := merged[key]; !exists {
			merged[key] = value
		}
	}

	return json.Marshal(merged)
}

// createdAtLayouts covers the timestamp shapes the orchestrator has
// written over time, from full RFC3339 down to bare dates.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CreatedTime parses the record's created_at timestamp. A missing or
// unparseable timestamp yields the zero time, which sorts last in
// newest-first listings.
func (t TaskRecord) CreatedTime() time.Time {
	if t.CreatedAt == "" {
		return time.Time{}
	}
	for _, layout := range createdAtLayouts {
		if ts, err := time.Parse(layout, t.CreatedAt); err == nil {
			return ts
		}
	}
	return time.Time{}
}
