package task

import (
	"math"
	"time"
)

// Stats backs the dashboard cards: totals plus the due-today and
// due-this-week counts over open tasks.
type Stats struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	DueToday        int `json:"due_today"`
	DueThisWeek     int `json:"due_this_week"`
	PercentComplete int `json:"percent_complete"`
}

func (r *MemoryRepo) Stats(now time.Time) Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Stats
	for _, t := range r.tasks {
		s.Total++
		if t.Status == StatusCompleted {
			s.Completed++
			continue
		}
		if sameDay(t.DueDate, now) {
			s.DueToday++
		}
		if sameWeek(t.DueDate, now) {
			s.DueThisWeek++
		}
	}
	s.PercentComplete = PercentComplete(s.Completed, s.Total)
	return s
}

// PercentComplete is round(100 * completed / total), 0 when total is 0.
func PercentComplete(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameWeek(a, b time.Time) bool {
	return startOfWeek(a).Equal(startOfWeek(b))
}

// Weeks start on Monday.
func startOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
