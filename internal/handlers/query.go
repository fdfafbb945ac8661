package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ukydev/scooter-console/internal/filter"
	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/validation"
)

// queryParser collects every malformed parameter instead of stopping at the first.
type queryParser struct {
	q    url.Values
	errs validation.FieldErrors
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{q: r.URL.Query(), errs: validation.FieldErrors{}}
}

func (p *queryParser) err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs
}

func (p *queryParser) str(key string) string {
	return strings.TrimSpace(p.q.Get(key))
}

// strs returns every value of a repeatable key, also splitting comma lists.
func (p *queryParser) strs(key string) []string {
	var out []string
	for _, v := range p.q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" && part != "all" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (p *queryParser) number(key string) *float64 {
	v := p.str(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs[key] = "must be a number"
		return nil
	}
	return &f
}

func (p *queryParser) integer(key string, fallback int) int {
	v := p.str(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		p.errs[key] = "must be a non-negative integer"
		return fallback
	}
	return n
}

// date parses a date or timestamp. A bare date used as an end bound covers
// the whole day.
func (p *queryParser) date(key string, endOfDay bool) *time.Time {
	v := p.str(key)
	if v == "" {
		return nil
	}
	ts, ok := models.ParseTimestamp(v)
	if !ok {
		p.errs[key] = fmt.Sprintf("invalid date %q", v)
		return nil
	}
	t := ts.Time
	if endOfDay && len(v) == len("2006-01-02") {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t
}

func (p *queryParser) dateRange() (*time.Time, *time.Time) {
	start := p.date("startDate", false)
	end := p.date("endDate", true)
	if err := validation.DateRange(start, end); err != nil {
		for k, v := range err.(validation.FieldErrors) {
			p.errs[k] = v
		}
	}
	return start, end
}

func parseRideFilter(r *http.Request) (filter.RideFilter, error) {
	p := newQueryParser(r)
	start, end := p.dateRange()
	f := filter.RideFilter{
		Search:      p.str("search"),
		Statuses:    p.strs("status"),
		MinAmount:   p.number("minAmount"),
		MaxAmount:   p.number("maxAmount"),
		MinDuration: p.number("minDuration"),
		MaxDuration: p.number("maxDuration"),
		StartDate:   start,
		EndDate:     end,
		Location:    p.str("location"),
	}
	return f, p.err()
}

func parseScooterFilter(r *http.Request) (filter.ScooterFilter, error) {
	p := newQueryParser(r)
	f := filter.ScooterFilter{
		Search:     p.str("search"),
		Status:     p.str("status"),
		MinBattery: p.number("minBattery"),
		MaxBattery: p.number("maxBattery"),
	}
	return f, p.err()
}

func parseUserFilter(r *http.Request) filter.UserFilter {
	p := newQueryParser(r)
	return filter.UserFilter{Search: p.str("search"), Status: p.str("status")}
}

func parsePromotionFilter(r *http.Request) filter.PromotionFilter {
	p := newQueryParser(r)
	return filter.PromotionFilter{Search: p.str("search"), Status: p.str("status")}
}

func parsePaymentFilter(r *http.Request) (filter.PaymentFilter, error) {
	p := newQueryParser(r)
	start, end := p.dateRange()
	f := filter.PaymentFilter{
		Search:    p.str("search"),
		Status:    p.str("status"),
		StartDate: start,
		EndDate:   end,
	}
	return f, p.err()
}

func parseNotificationFilter(r *http.Request) filter.NotificationFilter {
	p := newQueryParser(r)
	return filter.NotificationFilter{Type: p.str("type"), Priority: p.str("priority"), Status: p.str("status")}
}
