// Package notify is the contract with the OS-level notification
// delivery service. Delivery is fire-and-forget: the core never
// observes success or failure beyond the returned error, which callers
// log and swallow.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/AmanSahu13/Task-Management-App/internal/task"
)

// Request asks the collaborator to deliver a message at a point in
// time.
type Request struct {
	TaskID task.ID   `json:"task_id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	At     time.Time `json:"at"`
}

type Delivery interface {
	Schedule(ctx context.Context, req Request) error
}

// DueDateRequests builds the standard trio anchored on the due date:
// one hour before, at the due date, and one hour after.
func DueDateRequests(t task.Task) []Request {
	return []Request{
		{
			TaskID: t.ID,
			Title:  "Upcoming Task",
			Body:   fmt.Sprintf("%q is due in one hour.", t.Title),
			At:     t.DueDate.Add(-time.Hour),
		},
		{
			TaskID: t.ID,
			Title:  "Task Due",
			Body:   fmt.Sprintf("%q is due now.", t.Title),
			At:     t.DueDate,
		},
		{
			TaskID: t.ID,
			Title:  "Task Overdue",
			Body:   fmt.Sprintf("%q was due an hour ago.", t.Title),
			At:     t.DueDate.Add(time.Hour),
		},
	}
}

// LogDelivery stands in for a real delivery backend by logging each
// request.
type LogDelivery struct {
	Logger *log.Logger
}

func (d LogDelivery) Schedule(ctx context.Context, req Request) error {
	_ = ctx
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("delivery scheduled: task=%s at=%s title=%q", req.TaskID, req.At.Format(time.RFC3339), req.Title)
	return nil
}
