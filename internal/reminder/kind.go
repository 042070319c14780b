package reminder

import "fmt"

// Kind tags each reminder variant. Message rendering is per-kind so the
// templates live in one place instead of being concatenated at call
// sites.
type Kind string

const (
	KindDueNowPending        Kind = "due_now_pending"
	KindDueNowInProgress     Kind = "due_now_in_progress"
	KindOverduePending       Kind = "overdue_pending"
	KindOverdueInProgress    Kind = "overdue_in_progress"
	KindStatusChanged        Kind = "status_changed"
	KindOverdueStatusChanged Kind = "overdue_status_changed"
)

func (k Kind) Title() string {
	switch k {
	case KindDueNowPending:
		return "Task Due Now - Still Pending"
	case KindDueNowInProgress:
		return "Task Due Now - In Progress"
	case KindOverduePending:
		return "Task Overdue - Pending"
	case KindOverdueInProgress:
		return "Task Overdue - In Progress"
	case KindStatusChanged:
		return "Task Status Changed"
	case KindOverdueStatusChanged:
		return "Overdue Task Status Changed"
	}
	return "Task Reminder"
}

// Message embeds the task title in double quotes.
func (k Kind) Message(taskTitle string) string {
	switch k {
	case KindDueNowPending:
		return fmt.Sprintf("%q is due now and still pending.", taskTitle)
	case KindDueNowInProgress:
		return fmt.Sprintf("%q is due now and still in progress.", taskTitle)
	case KindOverduePending:
		return fmt.Sprintf("%q is overdue and still pending.", taskTitle)
	case KindOverdueInProgress:
		return fmt.Sprintf("%q is overdue and still in progress.", taskTitle)
	case KindStatusChanged:
		return fmt.Sprintf("Status of %q changed.", taskTitle)
	case KindOverdueStatusChanged:
		return fmt.Sprintf("Status of overdue task %q changed.", taskTitle)
	}
	return fmt.Sprintf("Reminder for %q.", taskTitle)
}
