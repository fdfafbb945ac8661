package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/ukydev/scooter-console/internal/models"
)

// DayBucket is one weekday on the bookings chart.
type DayBucket struct {
	Day          string  `json:"day"`
	BookingCount int     `json:"bookings"`
	RevenueSum   float64 `json:"revenue"`
}

// HourBand is one three-hour slot on the active rides chart.
type HourBand struct {
	Band        string `json:"hour"`
	ActiveCount int    `json:"active"`
}

// Summary holds the headline numbers of the bookings screen.
type Summary struct {
	TotalCount      int     `json:"totalCount"`
	ActiveCount     int     `json:"activeCount"`
	UniqueUserCount int     `json:"uniqueUserCount"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// Weekdays is the canonical bucket order, Monday first.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// HourBands are the predefined band keys.
var HourBands = []string{"00:00", "03:00", "06:00", "09:00", "12:00", "15:00", "18:00", "21:00"}

// GroupByDayOfWeek buckets rides by the local weekday of their start time.
func GroupByDayOfWeek(rides []models.Ride) []DayBucket {
	return GroupByDayOfWeekIn(rides, time.Local)
}

// GroupByDayOfWeekIn is GroupByDayOfWeek with an explicit time zone.
// All seven buckets are always returned. Rides without a start time land in
// the first bucket, so the counts always add up to len(rides).
func GroupByDayOfWeekIn(rides []models.Ride, loc *time.Location) []DayBucket {
	if loc == nil {
		loc = time.Local
	}
	index := make(map[time.Weekday]int, len(Weekdays))
	buckets := make([]DayBucket, len(Weekdays))
	amounts := make([][]float64, len(Weekdays))
	for i, d := range Weekdays {
		index[d] = i
		buckets[i] = DayBucket{Day: d.String()[:3]}
	}

	for _, r := range rides {
		i := 0
		if !r.StartTime.IsZero() {
			i = index[r.StartTime.In(loc).Weekday()]
		}
		buckets[i].BookingCount++
		amounts[i] = append(amounts[i], r.Amount)
	}
	for i := range buckets {
		buckets[i].RevenueSum = sumSorted(amounts[i])
	}
	return buckets
}

// bandKey formats the band a start hour falls in.
func bandKey(hour int) string {
	return fmt.Sprintf("%02d:00", hour/3*3)
}

// GroupByHourBand counts rides per three-hour band of their local start hour.
func GroupByHourBand(rides []models.Ride) []HourBand {
	return GroupByHourBandIn(rides, time.Local)
}

// GroupByHourBandIn is GroupByHourBand with an explicit time zone.
// Rides without a start time count towards the "00:00" band.
func GroupByHourBandIn(rides []models.Ride, loc *time.Location) []HourBand {
	if loc == nil {
		loc = time.Local
	}
	bands := make([]HourBand, len(HourBands))
	index := make(map[string]int, len(HourBands))
	for i, key := range HourBands {
		bands[i] = HourBand{Band: key}
		index[key] = i
	}

	for _, r := range rides {
		hour := 0
		if !r.StartTime.IsZero() {
			hour = r.StartTime.In(loc).Hour()
		}
		bands[index[bandKey(hour)]].ActiveCount++
	}
	return bands
}

// ComputeSummary totals a ride list. Rides with an empty user reference do
// not count towards UniqueUserCount.
func ComputeSummary(rides []models.Ride) Summary {
	users := make(map[models.ID]struct{})
	amounts := make([]float64, 0, len(rides))
	s := Summary{TotalCount: len(rides)}
	for _, r := range rides {
		if r.Status == models.RideStatusActive {
			s.ActiveCount++
		}
		if r.UserID != "" {
			users[r.UserID] = struct{}{}
		}
		amounts = append(amounts, r.Amount)
	}
	s.UniqueUserCount = len(users)
	s.TotalRevenue = sumSorted(amounts)
	return s
}

// MonthBucket is one calendar month on the revenue report.
type MonthBucket struct {
	Month       string  `json:"month"` // "2024-02"
	Label       string  `json:"label"` // "Feb"
	Rides       int     `json:"rides"`
	Revenue     float64 `json:"revenue"`
	UniqueUsers int     `json:"users"`
}

// GroupByMonth buckets rides by the local calendar month of their start time,
// oldest month first. Only months with at least one ride appear.
func GroupByMonth(rides []models.Ride, loc *time.Location) []MonthBucket {
	if loc == nil {
		loc = time.Local
	}
	type acc struct {
		first   time.Time
		rides   int
		amounts []float64
		users   map[models.ID]struct{}
	}
	months := make(map[string]*acc)
	for _, r := range rides {
		if r.StartTime.IsZero() {
			continue
		}
		t := r.StartTime.In(loc)
		key := t.Format("2006-01")
		a, ok := months[key]
		if !ok {
			a = &acc{
				first: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc),
				users: make(map[models.ID]struct{}),
			}
			months[key] = a
		}
		a.rides++
		a.amounts = append(a.amounts, r.Amount)
		if r.UserID != "" {
			a.users[r.UserID] = struct{}{}
		}
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		a := months[k]
		out = append(out, MonthBucket{
			Month:       k,
			Label:       a.first.Month().String()[:3],
			Rides:       a.rides,
			Revenue:     sumSorted(a.amounts),
			UniqueUsers: len(a.users),
		})
	}
	return out
}
