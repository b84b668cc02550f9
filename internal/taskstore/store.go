package taskstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"agentboard/internal/types"
)

var (
	// ErrTaskNotFound is returned when no state directory holds the task
	ErrTaskNotFound = errors.New("task not found")
	// ErrBadFilter is returned for an unrecognized state filter
	ErrBadFilter = errors.New("invalid status filter")
)

// FilterAll selects the union of pending, active, completed and failed.
// Archived records are only reachable by asking for them explicitly.
const FilterAll = "all"

// listStates is the directory set behind the "all" filter.
var listStates = []types.TaskState{
	types.TaskPending, types.TaskActive, types.TaskCompleted, types.TaskFailed,
}

// Store reads task records from the directory-per-state layout the
// orchestrator maintains. The store never moves records between states;
// transitions are the orchestrator's atomic renames.
type Store struct {
	selector ProjectSelector
}

// NewStore creates a task record store. The selector is consulted on
// every operation so a project switch takes effect immediately.
func NewStore(selector ProjectSelector) *Store {
	return &Store{selector: selector}
}

// List returns records in the requested lifecycle state, newest first.
// The filter is one of pending, active, completed, failed, archived or
// "all". Individual unreadable or malformed files are skipped; a missing
// state directory counts as empty.
func (s *Store) List(filter string) ([]types.TaskRecord, error) {
	states, err := resolveFilter(filter)
	if err != nil {
		return nil, err
	}

	root := s.selector.TasksDir()

	records := make([]types.TaskRecord, 0)
	for _, state := range states {
		records = append(records, scanStateDir(root, state)...)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedTime().After(records[j].CreatedTime())
	})

	return records, nil
}

// Get probes the state directories in the fixed lifecycle order and
// returns the first record parseable as {taskID}.json. With the
// one-directory-per-task invariant intact there is at most one match;
// if it is violated the earliest state wins.
func (s *Store) Get(taskID string) (types.TaskRecord, error) {
	root := s.selector.TasksDir()

	for _, state := range types.AllStates {
		path := filepath.Join(root, string(state), taskID+".json")
		record, err := readRecord(path)
		if err != nil {
			continue
		}
		record.Location = state
		if record.TaskID == "" {
			record.TaskID = taskID
		}
		return record, nil
	}

	return types.TaskRecord{}, ErrTaskNotFound
}

// GetAll scans every state directory, archived included, with no sort
// and no filter validation. A record without an embedded task_id takes
// its file base name as the id. Parse failures are skipped silently.
func (s *Store) GetAll() ([]types.TaskRecord, error) {
	root := s.selector.TasksDir()

	records := make([]types.TaskRecord, 0)
	for _, state := range types.AllStates {
		dir := filepath.Join(root, string(state))
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			record, err := readRecord(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			if record.TaskID == "" {
				record.TaskID = strings.TrimSuffix(entry.Name(), ".json")
			}
			record.Status = string(state)
			record.Location = state
			records = append(records, record)
		}
	}

	return records, nil
}

// resolveFilter maps a filter string to the directory set to scan.
func resolveFilter(filter string) ([]types.TaskState, error) {
	switch types.TaskState(filter) {
	case types.TaskPending, types.TaskActive, types.TaskCompleted, types.TaskFailed, types.TaskArchived:
		return []types.TaskState{types.TaskState(filter)}, nil
	}
	if filter == FilterAll {
		return listStates, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBadFilter, filter)
}

// scanStateDir is the parse-or-skip fold over one state directory:
// every parseable record is collected, every failure is logged and
// dropped so one bad file never poisons the listing.
func scanStateDir(root string, state types.TaskState) []types.TaskRecord {
	dir := filepath.Join(root, string(state))

	entries, err := os.ReadDir(dir)
	if err != nil {
		// A state directory the orchestrator has not created yet is
		// simply empty.
		return nil
	}

	records := make([]types.TaskRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		record, err := readRecord(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("taskstore: skipping %s/%s: %v", state, entry.Name(), err)
			continue
		}
		if record.TaskID == "" {
			record.TaskID = strings.TrimSuffix(entry.Name(), ".json")
		}
		record.Location = state
		records = append(records, record)
	}

	return records
}

func readRecord(path string) (types.TaskRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.TaskRecord{}, err
	}

	var record types.TaskRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return types.TaskRecord{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	return record, nil
}
