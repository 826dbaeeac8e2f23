package sync

import (
	gosync "sync"
	"sync/atomic"
)

// RunState is the process-wide record of the current sync run, polled by
// external observers while workers mutate it concurrently. A single
// instance is owned by the coordinator and passed by reference to workers.
//
// The active flag doubles as the single-flight guard: Begin performs an
// atomic test-and-set so two concurrent starts cannot both pass.
type RunState struct {
	mu          gosync.Mutex
	active      bool
	currentItem string
	log         []string

	cancel atomic.Bool
}

// Snapshot is an immutable copy of the run state.
type Snapshot struct {
	Active      bool     `json:"active"`
	CurrentItem string   `json:"current_item"`
	Log         []string `json:"log"`
}

// NewRunState creates an idle run state.
func NewRunState() *RunState {
	return &RunState{log: make([]string, 0)}
}

// Begin marks the run active and resets the record for a fresh run.
// Returns false without touching any state when a run is already active.
func (s *RunState) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return false
	}
	s.active = true
	s.currentItem = ""
	s.log = make([]string, 0)
	s.cancel.Store(false)
	return true
}

// Finish clears the active flag and records the final marker, regardless of
// how the run ended.
func (s *RunState) Finish(marker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.currentItem = marker
}

// Active reports whether a run is in progress.
func (s *RunState) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Append adds a log entry. Entries from concurrent workers interleave in
// completion order.
func (s *RunState) Append(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, entry)
}

// SetCurrentItem records the item currently being processed.
func (s *RunState) SetCurrentItem(item string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentItem = item
}

// RequestCancel sets the cooperative cancellation flag. Workers observe it
// at the top of each page and each item; in-flight network calls are not
// interrupted.
func (s *RunState) RequestCancel() {
	s.cancel.Store(true)
}

// Cancelled reports whether cancellation has been requested.
func (s *RunState) Cancelled() bool {
	return s.cancel.Load()
}

// Snapshot returns an immutable copy of the state, safe to call at any
// time from any goroutine.
func (s *RunState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	logCopy := make([]string, len(s.log))
	copy(logCopy, s.log)
	return Snapshot{
		Active:      s.active,
		CurrentItem: s.currentItem,
		Log:         logCopy,
	}
}
