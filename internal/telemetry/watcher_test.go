package telemetry

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/scooter-console/internal/models"
)

func TestHandleMessage_RecordsLatest(t *testing.T) {
	w := NewWatcher(20)

	require.NoError(t, w.HandleMessage("scooters/SCT-1/telemetry", []byte(`{"batteryLevel":80,"speed":12.5,"timestamp":"2024-02-06T10:00:00Z"}`)))
	require.NoError(t, w.HandleMessage("scooters/SCT-1/telemetry", []byte(`{"batteryLevel":78,"speed":14,"timestamp":"2024-02-06T10:00:05Z"}`)))

	got, ok := w.Latest("SCT-1")
	require.True(t, ok)
	assert.Equal(t, models.ID("SCT-1"), got.ScooterID)
	assert.Equal(t, 78.0, got.BatteryLevel)

	_, ok = w.Latest("SCT-2")
	assert.False(t, ok)
}

func TestHandleMessage_IgnoresOlderReadings(t *testing.T) {
	w := NewWatcher(20)

	require.NoError(t, w.HandleMessage("t", []byte(`{"scooterId":"SCT-1","batteryLevel":50,"timestamp":"2024-02-06T10:00:05Z"}`)))
	require.NoError(t, w.HandleMessage("t", []byte(`{"scooterId":"SCT-1","batteryLevel":90,"timestamp":"2024-02-06T10:00:00Z"}`)))

	got, _ := w.Latest("SCT-1")
	assert.Equal(t, 50.0, got.BatteryLevel)
}

func TestHandleMessage_Rejects(t *testing.T) {
	w := NewWatcher(20)

	assert.Error(t, w.HandleMessage("scooters/SCT-1/telemetry", []byte(`not json`)))
	assert.ErrorIs(t, w.HandleMessage("telemetry", []byte(`{"batteryLevel":50}`)), ErrNoScooterID)
}

func TestHandleMessage_LowBatteryNotifiesOncePerCrossing(t *testing.T) {
	w := NewWatcher(20)
	send := func(level string, ts string) {
		require.NoError(t, w.HandleMessage("scooters/SCT-7/telemetry",
			[]byte(`{"batteryLevel":`+level+`,"timestamp":"2024-02-06T10:00:`+ts+`Z"}`)))
	}

	send("25", "00")
	assert.Empty(t, w.Notifications())

	send("19", "01")
	send("15", "02")
	require.Len(t, w.Notifications(), 1)
	n := w.Notifications()[0]
	assert.Equal(t, "scooter", n.Type)
	assert.Equal(t, models.PriorityMedium, n.Priority)
	assert.Equal(t, models.NotificationUnread, n.Status)
	assert.Contains(t, n.Message, "SCT-7")
	assert.Len(t, w.LowBattery(), 1)

	send("60", "03")
	assert.Empty(t, w.LowBattery())

	send("5", "04")
	notes := w.Notifications()
	require.Len(t, notes, 2)
	assert.Equal(t, models.PriorityHigh, notes[0].Priority, "newest first")
}

func TestMarkRead(t *testing.T) {
	w := NewWatcher(20)
	require.NoError(t, w.HandleMessage("t", []byte(`{"scooterId":"SCT-1","batteryLevel":3}`)))

	notes := w.Notifications()
	require.Len(t, notes, 1)
	assert.True(t, w.MarkRead(notes[0].ID))
	assert.Equal(t, models.NotificationRead, w.Notifications()[0].Status)
	assert.False(t, w.MarkRead("missing"))
}

func TestNotificationFeedIsBounded(t *testing.T) {
	w := NewWatcher(20)
	for i := 0; i < maxNotifications+10; i++ {
		w.mu.Lock()
		w.push(models.Notification{ID: models.IDFromInt(i)})
		w.mu.Unlock()
	}

	notes := w.Notifications()
	assert.Len(t, notes, maxNotifications)
	assert.Equal(t, models.IDFromInt(maxNotifications+9), notes[0].ID)
}

func TestScooterIDFromTopic(t *testing.T) {
	assert.Equal(t, models.ID("SCT-1"), scooterIDFromTopic("scooters/SCT-1/telemetry"))
	assert.Equal(t, models.ID("SCT-1"), scooterIDFromTopic("/fleet/scooters/SCT-1/telemetry/"))
	assert.Equal(t, models.ID(""), scooterIDFromTopic("telemetry"))
}

func TestConnect_FailureStopsRedialling(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	var dials atomic.Int32
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			dials.Add(1)
			conn.Close()
		}
	}()

	w := NewWatcher(20)
	w.retryInterval = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	err = w.Connect(ctx, "tcp://"+ln.Addr().String(), "", "test-client")
	require.Error(t, err)
	w.Close()

	require.Eventually(t, func() bool { return dials.Load() > 0 }, time.Second, 10*time.Millisecond)
	before := dials.Load()
	time.Sleep(300 * time.Millisecond)
	assert.LessOrEqual(t, dials.Load(), before+1, "client kept redialling after a failed connect")
}
