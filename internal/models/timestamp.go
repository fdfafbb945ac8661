package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Timestamp is a point in time decoded leniently from the backend.
// RFC 3339 values keep their zone; zone-less values are read in local time.
// Anything absent or unparseable decodes to the zero time.
type Timestamp struct {
	time.Time
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses s using the layouts the services are known to emit.
func ParseTimestamp(s string) (Timestamp, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}, true
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, true
		}
	}
	return Timestamp{}, false
}

// MustParseTimestamp is ParseTimestamp for literals; it panics on bad input.
func MustParseTimestamp(s string) Timestamp {
	ts, ok := ParseTimestamp(s)
	if !ok {
		panic("models: bad timestamp " + s)
	}
	return ts
}

// UnmarshalJSON accepts a string, epoch milliseconds or null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*t = Timestamp{}
			return nil
		}
		*t, _ = ParseTimestamp(s)
		return nil
	}
	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil && ms > 0 {
		*t = Timestamp{Time: time.UnixMilli(int64(ms))}
		return nil
	}
	*t = Timestamp{}
	return nil
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Ptr returns nil for the zero time, otherwise a pointer to the wrapped time.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	tt := t.Time
	return &tt
}
