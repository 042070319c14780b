package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanSahu13/Task-Management-App/internal/inbox"
	"github.com/AmanSahu13/Task-Management-App/internal/notify"
	"github.com/AmanSahu13/Task-Management-App/internal/reminder"
	"github.com/AmanSahu13/Task-Management-App/internal/task"
)

var start = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type recordingDelivery struct {
	mu       sync.Mutex
	requests []notify.Request
}

func (d *recordingDelivery) Schedule(_ context.Context, req notify.Request) error {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()
	return nil
}

func (d *recordingDelivery) all() []notify.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]notify.Request, len(d.requests))
	copy(out, d.requests)
	return out
}

func newTestEngine() (Engine, *FakeClock, *recordingDelivery) {
	clock := NewFakeClock(start)
	delivery := &recordingDelivery{}
	e := Engine{
		Tasks:    task.NewMemoryRepo(),
		Inbox:    inbox.NewMemoryRepo(),
		Delivery: delivery,
		Rules:    reminder.DefaultRules(),
		Clock:    clock,
	}
	return e, clock, delivery
}

func TestCreateTask_RequestsDeliveryTrio(t *testing.T) {
	e, _, delivery := newTestEngine()
	ctx := context.Background()

	due := start.Add(4 * time.Hour)
	tk, err := e.CreateTask(ctx, task.Input{Title: "Pay rent", DueDate: due})
	require.NoError(t, err)

	reqs := delivery.all()
	require.Len(t, reqs, 3)
	assert.Equal(t, due.Add(-time.Hour), reqs[0].At)
	assert.Equal(t, due, reqs[1].At)
	assert.Equal(t, due.Add(time.Hour), reqs[2].At)
	for _, req := range reqs {
		assert.Equal(t, tk.ID, req.TaskID)
	}
}

func TestCreateTask_EmptyTitle(t *testing.T) {
	e, _, delivery := newTestEngine()

	_, err := e.CreateTask(context.Background(), task.Input{Title: ""})

	assert.ErrorIs(t, err, task.ErrEmptyTitle)
	assert.Empty(t, delivery.all(), "rejected creation schedules nothing")
}

func TestUpdateTask_DueDateChangeReschedules(t *testing.T) {
	e, _, delivery := newTestEngine()
	ctx := context.Background()

	tk, err := e.CreateTask(ctx, task.Input{Title: "Dentist", DueDate: start.Add(24 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, delivery.all(), 3)

	newDue := start.Add(48 * time.Hour)
	_, ok := e.UpdateTask(ctx, tk.ID, task.Patch{DueDate: &newDue})
	require.True(t, ok)

	reqs := delivery.all()
	require.Len(t, reqs, 6)
	assert.Equal(t, newDue, reqs[4].At)
}

func TestUpdateTask_StatusChangeEmitsOneShot(t *testing.T) {
	e, _, _ := newTestEngine()
	ctx := context.Background()

	tk, err := e.CreateTask(ctx, task.Input{Title: "Call plumber", DueDate: start.Add(time.Hour)})
	require.NoError(t, err)

	inProgress := task.StatusInProgress
	_, ok := e.UpdateTask(ctx, tk.ID, task.Patch{Status: &inProgress})
	require.True(t, ok)

	events := e.Inbox.List()
	require.Len(t, events, 1)
	assert.Equal(t, reminder.KindStatusChanged, events[0].Kind)
}

// Moving an already-overdue task to in-progress fires exactly one
// OverdueStatusChanged event immediately, independent of cooldown
// state.
func TestUpdateTask_OverdueStatusChange(t *testing.T) {
	e, clock, _ := newTestEngine()
	ctx := context.Background()

	tk, err := e.CreateTask(ctx, task.Input{Title: "Taxes", DueDate: start.Add(time.Minute)})
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	// A polled reminder just fired; the one-shot path must not care.
	require.Equal(t, 1, e.OverduePass(ctx))

	inProgress := task.StatusInProgress
	_, ok := e.UpdateTask(ctx, tk.ID, task.Patch{Status: &inProgress})
	require.True(t, ok)

	events := e.Inbox.List()
	require.Len(t, events, 2)
	assert.Equal(t, reminder.KindOverdueStatusChanged, events[0].Kind)
}

func TestUpdateTask_CompletionEmitsNothing(t *testing.T) {
	e, clock, _ := newTestEngine()
	ctx := context.Background()

	tk, err := e.CreateTask(ctx, task.Input{Title: "Done deal", DueDate: start})
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	completed := task.StatusCompleted
	_, ok := e.UpdateTask(ctx, tk.ID, task.Patch{Status: &completed})
	require.True(t, ok)

	assert.Empty(t, e.Inbox.List())

	// And no polled reminder ever fires for it again.
	clock.Advance(48 * time.Hour)
	assert.Zero(t, e.DueNowPass(ctx))
	assert.Zero(t, e.OverduePass(ctx))
	assert.Empty(t, e.Inbox.List())
}

func TestUpdateTask_UnknownID(t *testing.T) {
	e, _, _ := newTestEngine()

	_, ok := e.UpdateTask(context.Background(), "missing", task.Patch{})

	assert.False(t, ok)
	assert.Empty(t, e.Inbox.List())
}

// Spec scenario: a pending task due "now", ticked at +30s, +120s and
// +310s.
func TestDueNowScenario_PayRent(t *testing.T) {
	e, clock, _ := newTestEngine()
	ctx := context.Background()

	_, err := e.CreateTask(ctx, task.Input{Title: "Pay rent", DueDate: start})
	require.NoError(t, err)

	clock.Set(start.Add(30 * time.Second))
	assert.Equal(t, 1, e.DueNowPass(ctx), "within the window, first fire")

	events := e.Inbox.List()
	require.Len(t, events, 1)
	assert.Equal(t, reminder.KindDueNowPending, events[0].Kind)
	assert.Equal(t, "Task Due Now - Still Pending", events[0].Title)

	clock.Set(start.Add(120 * time.Second))
	assert.Zero(t, e.DueNowPass(ctx), "within the 5 minute cooldown")

	clock.Set(start.Add(310 * time.Second))
	assert.Zero(t, e.DueNowPass(ctx), "cooldown elapsed but the window has passed")

	// The overdue check takes over at its own cadence once the shared
	// cooldown allows it.
	clock.Set(start.Add(30*time.Second + time.Hour))
	require.Equal(t, 1, e.OverduePass(ctx))
	assert.Equal(t, reminder.KindOverduePending, e.Inbox.List()[0].Kind)
}

// Both polled checks share the lastNotified marker, so a due-now fire
// suppresses an overdue fire on the same tick.
func TestPolledChecks_ShareCooldownMarker(t *testing.T) {
	e, clock, _ := newTestEngine()
	ctx := context.Background()

	_, err := e.CreateTask(ctx, task.Input{Title: "Water plants", DueDate: start})
	require.NoError(t, err)

	clock.Set(start.Add(30 * time.Second))
	require.Equal(t, 1, e.DueNowPass(ctx))
	assert.Zero(t, e.OverduePass(ctx))
}

func TestCooldownMonotonicity_RepeatedTicks(t *testing.T) {
	e, clock, _ := newTestEngine()
	ctx := context.Background()

	_, err := e.CreateTask(ctx, task.Input{Title: "Renew passport", DueDate: start.Add(-time.Hour)})
	require.NoError(t, err)

	require.Equal(t, 1, e.OverduePass(ctx))

	fired := 0
	for i := 0; i < 11; i++ {
		clock.Advance(5 * time.Minute)
		fired += e.OverduePass(ctx)
	}
	assert.Zero(t, fired, "no re-fire inside the hour, however many ticks run")

	clock.Advance(5 * time.Minute)
	assert.Equal(t, 1, e.OverduePass(ctx), "re-fires once the hour elapsed")
}

func TestDeleteTask_CascadesInbox(t *testing.T) {
	e, clock, _ := newTestEngine()
	ctx := context.Background()

	a, err := e.CreateTask(ctx, task.Input{Title: "Groceries", DueDate: start.Add(-time.Hour)})
	require.NoError(t, err)
	b, err := e.CreateTask(ctx, task.Input{Title: "Groceries", DueDate: start.Add(-time.Hour)})
	require.NoError(t, err)

	clock.Advance(time.Second)
	require.Equal(t, 2, e.OverduePass(ctx))

	_, ok := e.DeleteTask(ctx, a.ID)
	require.True(t, ok)

	events := e.Inbox.List()
	require.Len(t, events, 1, "only the deleted task's events go, despite the shared title")
	assert.Equal(t, b.ID, events[0].TaskID)
}

func TestDeleteTask_LastTaskClearsInbox(t *testing.T) {
	e, clock, _ := newTestEngine()
	ctx := context.Background()

	a, err := e.CreateTask(ctx, task.Input{Title: "One", DueDate: start.Add(-time.Hour)})
	require.NoError(t, err)
	b, err := e.CreateTask(ctx, task.Input{Title: "Two", DueDate: start.Add(-time.Hour)})
	require.NoError(t, err)

	clock.Advance(time.Second)
	require.Equal(t, 2, e.OverduePass(ctx))

	e.DeleteTask(ctx, a.ID)
	assert.NotEmpty(t, e.Inbox.List())

	e.DeleteTask(ctx, b.ID)
	assert.Empty(t, e.Inbox.List(), "draining the task set empties the inbox")
	assert.Zero(t, e.Inbox.UnreadCount())
}

func TestSweepInbox(t *testing.T) {
	e, clock, _ := newTestEngine()
	ctx := context.Background()

	_, err := e.CreateTask(ctx, task.Input{Title: "Old news", DueDate: start.Add(-time.Hour)})
	require.NoError(t, err)
	require.Equal(t, 1, e.OverduePass(ctx))

	clock.Advance(25 * time.Hour)
	assert.Equal(t, 1, e.SweepInbox(ctx))
	assert.Empty(t, e.Inbox.List())
}

func TestStats(t *testing.T) {
	e, _, _ := newTestEngine()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := e.CreateTask(ctx, task.Input{Title: "t", DueDate: start.Add(time.Hour)})
		require.NoError(t, err)
	}
	tasks := e.Tasks.List(task.FilterAll)
	completed := task.StatusCompleted
	_, ok := e.UpdateTask(ctx, tasks[0].ID, task.Patch{Status: &completed})
	require.True(t, ok)

	s := e.Stats()
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 25, s.PercentComplete)
}
