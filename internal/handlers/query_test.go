package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/validation"
)

func get(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func TestParseRideFilter(t *testing.T) {
	f, err := parseRideFilter(get("/api/bookings?status=active&status=pending,%20completed&status=all" +
		"&minDuration=5&maxDuration=30&location=Central&startDate=2024-03-01&endDate=2024-03-02"))

	require.NoError(t, err)
	assert.Equal(t, []string{"active", "pending", "completed"}, f.Statuses)
	assert.Equal(t, 5.0, *f.MinDuration)
	assert.Equal(t, 30.0, *f.MaxDuration)
	assert.Equal(t, "Central", f.Location)

	start := models.MustParseTimestamp("2024-03-01").Time
	require.NotNil(t, f.StartDate)
	require.NotNil(t, f.EndDate)
	assert.True(t, f.StartDate.Equal(start))
	assert.True(t, f.EndDate.Equal(start.AddDate(0, 0, 2).Add(-time.Nanosecond)), "bare end date covers the whole day")
}

func TestParseRideFilter_EmptyQuery(t *testing.T) {
	f, err := parseRideFilter(get("/api/bookings"))

	require.NoError(t, err)
	assert.Empty(t, f.Search)
	assert.Nil(t, f.Statuses)
	assert.Nil(t, f.MinAmount)
	assert.Nil(t, f.StartDate)
	assert.Empty(t, f.Predicates())
}

func TestParseRideFilter_TimestampEndIsExact(t *testing.T) {
	f, err := parseRideFilter(get("/api/bookings?endDate=2024-03-02T10:30:00Z"))

	require.NoError(t, err)
	assert.True(t, f.EndDate.Equal(time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC)))
}

func TestParseRideFilter_CollectsEveryError(t *testing.T) {
	_, err := parseRideFilter(get("/api/bookings?minAmount=x&maxDuration=y&startDate=yesterday"))

	require.Error(t, err)
	fe, ok := err.(validation.FieldErrors)
	require.True(t, ok)
	assert.Len(t, fe, 3)
	assert.Equal(t, "must be a number", fe["minAmount"])
	assert.Equal(t, "must be a number", fe["maxDuration"])
	assert.Contains(t, fe["startDate"], "invalid date")
}

func TestParseRideFilter_InvertedRange(t *testing.T) {
	_, err := parseRideFilter(get("/api/bookings?startDate=2024-03-05&endDate=2024-03-01"))

	require.Error(t, err)
	assert.Equal(t, "End date must not be before start date", err.(validation.FieldErrors)["endDate"])
}

func TestParseScooterFilter(t *testing.T) {
	f, err := parseScooterFilter(get("/api/scooters?search=sc-1&status=in-use&minBattery=20&maxBattery=80"))

	require.NoError(t, err)
	assert.Equal(t, "sc-1", f.Search)
	assert.Equal(t, "in-use", f.Status)
	assert.Equal(t, 20.0, *f.MinBattery)
	assert.Equal(t, 80.0, *f.MaxBattery)

	_, err = parseScooterFilter(get("/api/scooters?minBattery=full"))
	assert.Error(t, err)
}

func TestParsePaymentFilter(t *testing.T) {
	f, err := parsePaymentFilter(get("/api/reports/payments?status=completed&search=visa&startDate=2024-01-01"))

	require.NoError(t, err)
	assert.Equal(t, "completed", f.Status)
	assert.Equal(t, "visa", f.Search)
	assert.NotNil(t, f.StartDate)
	assert.Nil(t, f.EndDate)
}

func TestParseSimpleFilters(t *testing.T) {
	u := parseUserFilter(get("/api/users?search=%20ada%20&status=blocked"))
	assert.Equal(t, "ada", u.Search)
	assert.Equal(t, "blocked", u.Status)

	p := parsePromotionFilter(get("/api/promotions?status=expired"))
	assert.Equal(t, "expired", p.Status)

	n := parseNotificationFilter(get("/api/notifications?type=scooter&priority=high&status=unread"))
	assert.Equal(t, "scooter", n.Type)
	assert.Equal(t, "high", n.Priority)
	assert.Equal(t, "unread", n.Status)
}
