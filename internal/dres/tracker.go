package dres

import (
	"sync"
	"time"
)

// Per-submission display states.
const (
	StatusIdle       = "idle"
	StatusSubmitting = "submitting"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
)

const defaultIdleDelay = 1800 * time.Millisecond

// Tracker drives the idle → submitting → {succeeded | failed} state machine
// per submission attempt. Success returns to idle on its own after a short
// display delay; failure stays until explicitly dismissed.
type Tracker struct {
	mu        sync.Mutex
	statuses  map[string]string
	idleDelay time.Duration
}

func NewTracker(idleDelay time.Duration) *Tracker {
	return &Tracker{
		statuses:  make(map[string]string),
		idleDelay: idleDelay,
	}
}

func (t *Tracker) Begin(id string) {
	t.set(id, StatusSubmitting)
}

func (t *Tracker) Succeed(id string) {
	t.set(id, StatusSucceeded)
	time.AfterFunc(t.idleDelay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		// Only auto-idle if no newer transition happened meanwhile.
		if t.statuses[id] == StatusSucceeded {
			delete(t.statuses, id)
		}
	})
}

func (t *Tracker) Fail(id string) {
	t.set(id, StatusFailed)
}

// Dismiss clears a failed (or any) attempt back to idle.
func (t *Tracker) Dismiss(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.statuses, id)
}

// Status returns the display state of an attempt; unknown ids are idle.
func (t *Tracker) Status(id string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if status, ok := t.statuses[id]; ok {
		return status
	}
	return StatusIdle
}

func (t *Tracker) set(id, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statuses[id] = status
}
