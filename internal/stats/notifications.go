package stats

import "github.com/ukydev/scooter-console/internal/models"

// CountUnread returns how many notifications have not been read.
func CountUnread(notifications []models.Notification) int {
	n := 0
	for _, item := range notifications {
		if item.Status == models.NotificationUnread {
			n++
		}
	}
	return n
}

// CountByPriority tallies notifications per priority.
func CountByPriority(notifications []models.Notification) map[models.Priority]int {
	out := map[models.Priority]int{
		models.PriorityLow:    0,
		models.PriorityMedium: 0,
		models.PriorityHigh:   0,
	}
	for _, item := range notifications {
		out[item.Priority]++
	}
	return out
}
