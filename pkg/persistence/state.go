package persistence

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// TimerRecord is the persisted form of one live timer.
type TimerRecord struct {
	// ID is the timer's stable identifier.
	ID string `json:"id"`

	// Name is the user-supplied label, or nil for the positional default.
	Name *string `json:"name"`

	// StartTime is the wall-clock time the timer was created.
	StartTime time.Time `json:"startTime"`

	// Duration is the countdown length in seconds.
	Duration float64 `json:"duration"`

	// ReminderID is the external reminder identifier, if one was created.
	ReminderID *string `json:"reminderId"`
}

// EndTime returns StartTime + Duration.
func (r TimerRecord) EndTime() time.Time {
	return r.StartTime.Add(r.DurationValue())
}

// DurationValue returns Duration as a time.Duration, rounded to the
// nearest nanosecond.
func (r TimerRecord) DurationValue() time.Duration {
	return time.Duration(math.Round(r.Duration * float64(time.Second)))
}

// TimerState is the on-disk document written by TimerStateStore.
type TimerState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Timers holds one record per live timer, in creation order.
	Timers []TimerRecord `json:"timers"`
}

// TimerStateStore manages persistence of timer records to a JSON file.
type TimerStateStore struct {
	mu   sync.Mutex
	path string
}

// NewTimerStateStore creates a new timer state store.
func NewTimerStateStore(path string) *TimerStateStore {
	return &TimerStateStore{path: path}
}

// Path returns the state file location.
func (s *TimerStateStore) Path() string {
	return s.path
}

// Save persists the timer state to disk.
func (s *TimerStateStore) Save(state *TimerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}
	if state.Timers == nil {
		state.Timers = []TimerRecord{}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the timer state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *TimerStateStore) Load() (*TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &TimerState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Clear removes the state file.
func (s *TimerStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// LoadTimerRecords returns the saved records, or an empty list if nothing
// has been saved.
func (s *TimerStateStore) LoadTimerRecords() ([]TimerRecord, error) {
	state, err := s.Load()
	if err != nil {
		return nil, err
	}
	if state == nil {
		return []TimerRecord{}, nil
	}
	return state.Timers, nil
}

// SaveTimerRecords replaces the saved records with records.
func (s *TimerStateStore) SaveTimerRecords(records []TimerRecord) error {
	return s.Save(&TimerState{
		SavedAt: time.Now(),
		Timers:  records,
	})
}
