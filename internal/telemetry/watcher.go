// Package telemetry follows the live scooter feed on the MQTT broker and
// raises notifications when a scooter runs low on battery.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/scooter-console/internal/models"
)

// DefaultTopic matches the per-scooter telemetry topics.
const DefaultTopic = "scooters/+/telemetry"

// maxNotifications bounds the in-memory feed; the oldest entries drop first.
const maxNotifications = 200

// criticalBattery marks a low-battery notification as high priority.
const criticalBattery = 10

var ErrNoScooterID = errors.New("telemetry has no scooter id")

// Watcher keeps the newest reading per scooter.
type Watcher struct {
	mu            sync.RWMutex
	threshold     float64
	latest        map[models.ID]models.Telemetry
	low           map[models.ID]bool
	notifications []models.Notification
	client        mqtt.Client
	now           func() time.Time
	retryInterval time.Duration
}

// NewWatcher creates a watcher that flags readings below threshold percent.
func NewWatcher(threshold float64) *Watcher {
	return &Watcher{
		threshold:     threshold,
		latest:        make(map[models.ID]models.Telemetry),
		low:           make(map[models.ID]bool),
		now:           time.Now,
		retryInterval: 5 * time.Second,
	}
}

// Connect subscribes to topic on broker. The subscription is renewed on
// every reconnect.
func (w *Watcher) Connect(ctx context.Context, broker, topic, clientID string) error {
	if topic == "" {
		topic = DefaultTopic
	}
	if clientID == "" {
		clientID = "scooter-console-" + uuid.NewString()[:8]
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(w.retryInterval).
		SetConnectTimeout(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			token := c.Subscribe(topic, 1, w.onMessage)
			token.Wait()
			if err := token.Error(); err != nil {
				log.WithError(err).WithField("topic", topic).Error("Failed to subscribe to telemetry")
				return
			}
			log.WithFields(log.Fields{"broker": broker, "topic": topic}).Info("Subscribed to scooter telemetry")
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("Lost connection to telemetry broker")
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()

	deadline := 10 * time.Second
	if d, ok := ctx.Deadline(); ok {
		deadline = time.Until(d)
	}
	// A client that never connected keeps redialling until disconnected.
	if !token.WaitTimeout(deadline) {
		client.Disconnect(0)
		return fmt.Errorf("timed out connecting to %s", broker)
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return fmt.Errorf("failed to connect to %s: %w", broker, err)
	}

	w.mu.Lock()
	w.client = client
	w.mu.Unlock()
	return nil
}

// Close disconnects from the broker.
func (w *Watcher) Close() {
	w.mu.Lock()
	client := w.client
	w.client = nil
	w.mu.Unlock()

	if client != nil {
		client.Disconnect(250)
	}
}

func (w *Watcher) onMessage(_ mqtt.Client, msg mqtt.Message) {
	if err := w.HandleMessage(msg.Topic(), msg.Payload()); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("Dropping telemetry message")
	}
}

// HandleMessage records one telemetry payload. The scooter id comes from the
// payload, or from the topic segment before the last when the payload has none.
func (w *Watcher) HandleMessage(topic string, payload []byte) error {
	var t models.Telemetry
	if err := json.Unmarshal(payload, &t); err != nil {
		return fmt.Errorf("failed to decode telemetry: %w", err)
	}
	if t.ScooterID == "" {
		t.ScooterID = scooterIDFromTopic(topic)
	}
	if t.ScooterID == "" {
		return ErrNoScooterID
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = models.NewTimestamp(w.now())
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if prev, ok := w.latest[t.ScooterID]; ok && prev.Timestamp.After(t.Timestamp.Time) {
		return nil
	}
	w.latest[t.ScooterID] = t

	isLow := t.BatteryLevel < w.threshold
	if isLow && !w.low[t.ScooterID] {
		w.push(lowBatteryNotification(t))
		log.WithFields(log.Fields{
			"scooter_id": t.ScooterID,
			"battery":    t.BatteryLevel,
		}).Warn("Scooter battery low")
	}
	w.low[t.ScooterID] = isLow
	return nil
}

func scooterIDFromTopic(topic string) models.ID {
	parts := strings.Split(strings.Trim(topic, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return models.ID(parts[len(parts)-2])
}

func lowBatteryNotification(t models.Telemetry) models.Notification {
	priority := models.PriorityMedium
	if t.BatteryLevel < criticalBattery {
		priority = models.PriorityHigh
	}
	return models.Notification{
		ID:        models.ID(uuid.NewString()),
		Type:      "scooter",
		Title:     "Low battery",
		Message:   fmt.Sprintf("Scooter %s battery at %.0f%%", t.ScooterID, t.BatteryLevel),
		Timestamp: t.Timestamp,
		Status:    models.NotificationUnread,
		Priority:  priority,
	}
}

// push must be called with the lock held.
func (w *Watcher) push(n models.Notification) {
	w.notifications = append(w.notifications, n)
	if over := len(w.notifications) - maxNotifications; over > 0 {
		w.notifications = append([]models.Notification(nil), w.notifications[over:]...)
	}
}

// Latest returns the newest reading for a scooter.
func (w *Watcher) Latest(id models.ID) (models.Telemetry, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t, ok := w.latest[id]
	return t, ok
}

// LowBattery returns the scooters whose newest reading is under the threshold, by id.
func (w *Watcher) LowBattery() []models.Telemetry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]models.Telemetry, 0)
	for id, low := range w.low {
		if low {
			out = append(out, w.latest[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScooterID < out[j].ScooterID })
	return out
}

// Notifications returns the feed, newest first.
func (w *Watcher) Notifications() []models.Notification {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]models.Notification, len(w.notifications))
	for i, n := range w.notifications {
		out[len(out)-1-i] = n
	}
	return out
}

// MarkRead marks a notification as read. It reports whether the id was found.
func (w *Watcher) MarkRead(id models.ID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.notifications {
		if w.notifications[i].ID == id {
			w.notifications[i].Status = models.NotificationRead
			return true
		}
	}
	return false
}
