package task

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var ErrEmptyTitle = errors.New("task title is empty")

// Input carries the user-supplied fields for task creation. Status is
// ignored: new tasks always start pending.
type Input struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    Priority  `json:"priority"`
}

// Patch represents a partial update. nil pointer => "no change".
// ID, CreatedAt and LastNotified are not patchable.
type Patch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Status      *Status    `json:"status,omitempty"`
}

type ListFilter string

const (
	FilterAll        ListFilter = "all"
	FilterInProgress ListFilter = "in_progress"
	FilterCompleted  ListFilter = "completed"
)

type Repo interface {
	Create(in Input, now time.Time) (Task, error)
	Get(id ID) (Task, bool)
	// Update merges patch into the matching task. Unknown ids are a
	// no-op: ok is false and nothing changes. prev is the status before
	// the merge so callers can decide on status-change reminders.
	Update(id ID, p Patch) (updated Task, prev Status, ok bool)
	Delete(id ID) (Task, bool)
	List(filter ListFilter) []Task
	Len() int
	// SetLastNotified records the polled-reminder cooldown marker. The
	// marker only moves forward; an earlier timestamp is ignored.
	SetLastNotified(id ID, at time.Time) bool
	Stats(now time.Time) Stats
}

type MemoryRepo struct {
	mu    sync.RWMutex
	tasks map[ID]Task
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{tasks: map[ID]Task{}}
}

func (r *MemoryRepo) Create(in Input, now time.Time) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}

	t := Task{
		ID:          newID(),
		Title:       title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      StatusPending,
		CreatedAt:   now,
	}
	if t.DueDate.IsZero() {
		t.DueDate = now
	}
	if !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}

	r.mu.Lock()
	r.tasks[t.ID] = t
	r.mu.Unlock()

	return t, nil
}

func (r *MemoryRepo) Get(id ID) (Task, bool) {
	r.mu.RLock()
	t, ok := r.tasks[id]
	r.mu.RUnlock()
	return t, ok
}

func applyPatch(t *Task, p Patch) {
	if p.Title != nil {
		if title := strings.TrimSpace(*p.Title); title != "" {
			t.Title = title
		}
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil && !p.DueDate.IsZero() {
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil && p.Priority.Valid() {
		t.Priority = *p.Priority
	}
	if p.Status != nil && p.Status.Valid() {
		t.Status = *p.Status
	}
}

func (r *MemoryRepo) Update(id ID, p Patch) (Task, Status, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, "", false
	}

	prev := t.Status
	applyPatch(&t, p)
	r.tasks[id] = t
	return t, prev, true
}

func (r *MemoryRepo) Delete(id ID) (Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, false
	}
	delete(r.tasks, id)
	return t, true
}

func (r *MemoryRepo) List(filter ListFilter) []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		switch filter {
		case FilterInProgress:
			if t.Status != StatusInProgress {
				continue
			}
		case FilterCompleted:
			if t.Status != StatusCompleted {
				continue
			}
		}
		out = append(out, t)
	}

	// Due soonest first, then oldest created. Creation order breaks the
	// remaining ties so the sequence is stable.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

func (r *MemoryRepo) SetLastNotified(id ID, at time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return false
	}
	if t.LastNotified != nil && !at.After(*t.LastNotified) {
		return false
	}
	t.LastNotified = &at
	r.tasks[id] = t
	return true
}
