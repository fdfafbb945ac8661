package handlers

import (
	"net/http"

	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/stats"
)

// notificationList is the notifications screen payload.
type notificationList struct {
	Notifications []models.Notification   `json:"notifications"`
	Unread        int                     `json:"unread"`
	ByPriority    map[models.Priority]int `json:"byPriority"`
}

// Notifications returns the filtered alerts. Counts cover every alert, not
// only the filtered ones.
func (h *ConsoleHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	all := []models.Notification{}
	if h.feed != nil {
		if n := h.feed.Notifications(); n != nil {
			all = n
		}
	}
	items := parseNotificationFilter(r).Apply(all)
	writeJSON(w, http.StatusOK, notificationList{
		Notifications: items,
		Unread:        stats.CountUnread(all),
		ByPriority:    stats.CountByPriority(all),
	})
}

// MarkNotificationRead marks one alert as read
func (h *ConsoleHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil || !h.feed.MarkRead(pathID(r)) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
