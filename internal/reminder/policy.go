package reminder

import (
	"time"

	"github.com/AmanSahu13/Task-Management-App/internal/task"
)

// Rules holds the timing knobs for the polled checks.
type Rules struct {
	// DueNowWindow is the tolerance around the due date during which a
	// due-now reminder may fire.
	DueNowWindow time.Duration
	// DueNowCooldown gates re-firing of due-now reminders.
	DueNowCooldown time.Duration
	// OverdueCooldown gates re-firing of overdue reminders. Overdue
	// state persists far longer than the due-now window, hence the
	// larger default.
	OverdueCooldown time.Duration
}

func DefaultRules() Rules {
	return Rules{
		DueNowWindow:    time.Minute,
		DueNowCooldown:  5 * time.Minute,
		OverdueCooldown: time.Hour,
	}
}

// Decision is one emitted reminder, ready for the inbox.
type Decision struct {
	Kind      Kind
	TaskID    task.ID
	TaskTitle string
	Title     string
	Message   string
	At        time.Time
}

func decide(k Kind, t task.Task, now time.Time) Decision {
	return Decision{
		Kind:      k,
		TaskID:    t.ID,
		TaskTitle: t.Title,
		Title:     k.Title(),
		Message:   k.Message(t.Title),
		At:        now,
	}
}

// cooled reports whether the shared cooldown marker permits firing.
func cooled(t task.Task, now time.Time, cooldown time.Duration) bool {
	return t.LastNotified == nil || now.Sub(*t.LastNotified) >= cooldown
}

// EvaluateDueNow is the polled due-now check: fires when now is within
// the tolerance window of the due date and the cooldown has elapsed.
// Completed tasks are permanently exempt.
func (r Rules) EvaluateDueNow(t task.Task, now time.Time) (Decision, bool) {
	if !t.Open() {
		return Decision{}, false
	}
	diff := now.Sub(t.DueDate)
	if diff < 0 {
		diff = -diff
	}
	if diff > r.DueNowWindow {
		return Decision{}, false
	}
	if !cooled(t, now, r.DueNowCooldown) {
		return Decision{}, false
	}

	k := KindDueNowPending
	if t.Status == task.StatusInProgress {
		k = KindDueNowInProgress
	}
	return decide(k, t, now), true
}

// EvaluateOverdue is the polled overdue check: fires once per cooldown
// while the due date lies in the past. Completed tasks are exempt.
func (r Rules) EvaluateOverdue(t task.Task, now time.Time) (Decision, bool) {
	if !t.Open() {
		return Decision{}, false
	}
	if !t.Overdue(now) {
		return Decision{}, false
	}
	if !cooled(t, now, r.OverdueCooldown) {
		return Decision{}, false
	}

	k := KindOverduePending
	if t.Status == task.StatusInProgress {
		k = KindOverdueInProgress
	}
	return decide(k, t, now), true
}

// EvaluateStatusChange is the one-shot check for user-initiated status
// changes. It never consults the cooldown marker: status changes are
// rare discrete events where the user already has context. Nothing
// fires when the status did not change, when the task was already
// completed, or when the change is a completion.
func (r Rules) EvaluateStatusChange(t task.Task, prev task.Status, now time.Time) (Decision, bool) {
	if prev == t.Status {
		return Decision{}, false
	}
	if prev == task.StatusCompleted || t.Status == task.StatusCompleted {
		return Decision{}, false
	}

	k := KindStatusChanged
	if t.Overdue(now) {
		k = KindOverdueStatusChanged
	}
	return decide(k, t, now), true
}
