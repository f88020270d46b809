package models

import (
	"time"

	"gorm.io/gorm"
)

// ActionType classifies an entry in an actor's action log
type ActionType string

const (
	ActionSubmit ActionType = "submit"
	ActionVote   ActionType = "vote"
)

// ActionLogCap bounds the per-actor action history. Older entries are
// evicted; behavior analysis only ever looks at this window.
const ActionLogCap = 100

// ActivityEvent is one entry in an actor's action log
type ActivityEvent struct {
	gorm.Model
	ActorID    string     `json:"actorId" gorm:"not null;index"`
	Action     ActionType `json:"action" gorm:"not null;size:20"`
	SubjectID  string     `json:"subjectId" gorm:"size:40"` // claim acted on
	OccurredAt time.Time  `json:"occurredAt" gorm:"not null;index"`
}

// ActionLog is a fixed-capacity, time-ordered window over an actor's
// activity. Appending beyond capacity evicts the oldest entry.
type ActionLog struct {
	cap     int
	entries []ActivityEvent
}

// NewActionLog creates a log with the given capacity (ActionLogCap if <= 0).
func NewActionLog(capacity int) *ActionLog {
	if capacity <= 0 {
		capacity = ActionLogCap
	}
	return &ActionLog{cap: capacity}
}

// Append adds an event, evicting the oldest once at capacity.
func (l *ActionLog) Append(ev ActivityEvent) {
	if len(l.entries) == l.cap {
		copy(l.entries, l.entries[1:])
		l.entries[len(l.entries)-1] = ev
		return
	}
	l.entries = append(l.entries, ev)
}

// Len returns the number of retained events.
func (l *ActionLog) Len() int {
	return len(l.entries)
}

// Events returns the retained events oldest-first. The slice is shared;
// callers must not mutate it.
func (l *ActionLog) Events() []ActivityEvent {
	return l.entries
}
