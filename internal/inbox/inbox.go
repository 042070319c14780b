package inbox

import (
	"sync"
	"time"

	"github.com/AmanSahu13/Task-Management-App/internal/reminder"
	"github.com/AmanSahu13/Task-Management-App/internal/task"
)

// DefaultMaxAge is how long events stay before the age sweep removes
// them.
const DefaultMaxAge = 24 * time.Hour

// Event is one entry in the notification inbox. TaskID is a non-owning
// back-reference; cascade deletion matches on it, not on the message
// text. Events are immutable except for the Read flag.
type Event struct {
	ID        int           `json:"id"`
	Kind      reminder.Kind `json:"kind"`
	TaskID    task.ID       `json:"task_id"`
	TaskTitle string        `json:"task_title"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Read      bool          `json:"read"`
}

type Repo interface {
	Append(d reminder.Decision) Event
	List() []Event
	Acknowledge(id int) bool
	UnreadCount() int
	SweepOlderThan(now time.Time, maxAge time.Duration) int
	DeleteForTask(id task.ID) int
	Clear()
}

// MemoryRepo keeps events newest-first. The unread count is always
// derived from the entries, never tracked separately.
type MemoryRepo struct {
	mu     sync.RWMutex
	events []Event
	nextID int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

func (r *MemoryRepo) Append(d reminder.Decision) Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := Event{
		ID:        r.nextID,
		Kind:      d.Kind,
		TaskID:    d.TaskID,
		TaskTitle: d.TaskTitle,
		Title:     d.Title,
		Message:   d.Message,
		Timestamp: d.At,
	}
	r.nextID++

	r.events = append([]Event{e}, r.events...)
	return e
}

func (r *MemoryRepo) List() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *MemoryRepo) Acknowledge(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID == id {
			r.events[i].Read = true
			return true
		}
	}
	return false
}

func (r *MemoryRepo) UnreadCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, e := range r.events {
		if !e.Read {
			n++
		}
	}
	return n
}

func (r *MemoryRepo) SweepOlderThan(now time.Time, maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	cutoff := now.Add(-maxAge)

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeLocked(func(e Event) bool {
		return e.Timestamp.Before(cutoff)
	})
}

func (r *MemoryRepo) DeleteForTask(id task.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeLocked(func(e Event) bool {
		return e.TaskID == id
	})
}

func (r *MemoryRepo) Clear() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func (r *MemoryRepo) removeLocked(drop func(Event) bool) int {
	kept := r.events[:0]
	removed := 0
	for _, e := range r.events {
		if drop(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.events = kept
	return removed
}
