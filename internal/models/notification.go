package models

// NotificationStatus is the read state of a notification.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Notification is an operator-facing alert.
type Notification struct {
	ID        ID                 `json:"id"`
	Type      string             `json:"type"` // "booking", "user", "scooter", "payment", "system"
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Timestamp Timestamp          `json:"timestamp"`
	Status    NotificationStatus `json:"status"`
	Priority  Priority           `json:"priority"`
}
