package task

import (
	"time"

	"github.com/google/uuid"
)

type ID string

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	// LastNotified is the shared cooldown marker for polled reminders.
	// Written only through SetLastNotified; nil until the first one fires.
	LastNotified *time.Time `json:"last_notified,omitempty"`
}

func newID() ID {
	return ID(uuid.NewString())
}

func (t Task) Open() bool {
	return t.Status != StatusCompleted
}

// Overdue reports whether the due date has passed outright, independent
// of the due-now tolerance window.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate.Before(now)
}
