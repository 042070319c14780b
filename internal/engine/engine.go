// Package engine is the single mutation entry point for tasks and the
// inbox. All user commands and scheduler passes go through it, so
// reminder decisions are always recomputed from current task state.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/AmanSahu13/Task-Management-App/internal/inbox"
	"github.com/AmanSahu13/Task-Management-App/internal/notify"
	"github.com/AmanSahu13/Task-Management-App/internal/reminder"
	"github.com/AmanSahu13/Task-Management-App/internal/task"
)

type Engine struct {
	Tasks    task.Repo
	Inbox    inbox.Repo
	Delivery notify.Delivery
	Rules    reminder.Rules
	Clock    Clock
	Logger   *log.Logger

	// InboxMaxAge bounds event lifetime for SweepInbox. Zero means the
	// inbox default.
	InboxMaxAge time.Duration
}

func (e Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func (e Engine) logf(format string, args ...any) {
	if e.Logger == nil {
		return
	}
	e.Logger.Printf(format, args...)
}

// CreateTask inserts a new pending task and requests the due-date
// delivery trio. Delivery failure never affects the stored task.
func (e Engine) CreateTask(ctx context.Context, in task.Input) (task.Task, error) {
	t, err := e.Tasks.Create(in, e.now())
	if err != nil {
		return task.Task{}, err
	}
	e.scheduleDelivery(ctx, t)
	return t, nil
}

// UpdateTask merges the patch and handles the reminder side effects: a
// status change emits its one-shot event, a due-date change
// re-requests delivery. Unknown ids are a no-op.
func (e Engine) UpdateTask(ctx context.Context, id task.ID, p task.Patch) (task.Task, bool) {
	before, hadBefore := e.Tasks.Get(id)

	t, prev, ok := e.Tasks.Update(id, p)
	if !ok {
		return task.Task{}, false
	}

	now := e.now()
	if d, fire := e.Rules.EvaluateStatusChange(t, prev, now); fire {
		e.Inbox.Append(d)
	}
	if hadBefore && !before.DueDate.Equal(t.DueDate) {
		e.scheduleDelivery(ctx, t)
	}
	return t, true
}

// DeleteTask removes the task and cascades to its inbox events. When
// the last task goes, the whole inbox is cleared.
func (e Engine) DeleteTask(ctx context.Context, id task.ID) (task.Task, bool) {
	_ = ctx

	t, ok := e.Tasks.Delete(id)
	if !ok {
		return task.Task{}, false
	}

	e.Inbox.DeleteForTask(t.ID)
	if e.Tasks.Len() == 0 {
		e.Inbox.Clear()
	}
	return t, true
}

// DueNowPass runs the polled due-now check over every task and returns
// the number of reminders emitted.
func (e Engine) DueNowPass(ctx context.Context) int {
	return e.pass(ctx, e.Rules.EvaluateDueNow)
}

// OverduePass runs the polled overdue check over every task.
func (e Engine) OverduePass(ctx context.Context) int {
	return e.pass(ctx, e.Rules.EvaluateOverdue)
}

func (e Engine) pass(ctx context.Context, eval func(task.Task, time.Time) (reminder.Decision, bool)) int {
	_ = ctx
	now := e.now()

	emitted := 0
	for _, t := range e.Tasks.List(task.FilterAll) {
		d, fire := eval(t, now)
		if !fire {
			continue
		}
		e.Inbox.Append(d)
		e.Tasks.SetLastNotified(t.ID, now)
		emitted++
	}
	return emitted
}

// SweepInbox drops events past their age limit.
func (e Engine) SweepInbox(ctx context.Context) int {
	_ = ctx
	return e.Inbox.SweepOlderThan(e.now(), e.InboxMaxAge)
}

func (e Engine) Stats() task.Stats {
	return e.Tasks.Stats(e.now())
}

func (e Engine) scheduleDelivery(ctx context.Context, t task.Task) {
	if e.Delivery == nil {
		return
	}
	for _, req := range notify.DueDateRequests(t) {
		if err := e.Delivery.Schedule(ctx, req); err != nil {
			e.logf("delivery request failed: task=%s at=%s: %v", t.ID, req.At.Format(time.RFC3339), err)
		}
	}
}
