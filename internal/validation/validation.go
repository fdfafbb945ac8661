// Package validation checks operator input before it is sent to a service.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ukydev/scooter-console/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// err returns nil when no field failed.
func (fe FieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateEmail checks email format
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && emailRegex.MatchString(email) && len(email) <= 200
}

// ValidatePhone checks an E.164-style phone number
func ValidatePhone(phone string) bool {
	phone = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	return phone != "" && phoneRegex.MatchString(phone)
}

// Scooter validates the add/edit scooter form. Model is only required on create.
func Scooter(in models.ScooterInput, create bool) error {
	fe := FieldErrors{}
	if blank(in.Name) {
		fe.add("name", "Scooter ID is required")
	}
	if create && blank(in.Model) {
		fe.add("model", "Model is required")
	}
	if in.BatteryLevel < 0 || in.BatteryLevel > 100 {
		fe.add("batteryLevel", "Battery must be between 0 and 100")
	}
	if blank(in.Location) {
		fe.add("location", "Location is required")
	}
	if in.Status != "" && !models.IsValidScooterStatus(models.NormalizeScooterStatus(in.Status)) {
		fe.add("status", "Unknown status")
	}
	return fe.err()
}

// ScooterStatus validates a status change.
func ScooterStatus(status models.ScooterStatus) error {
	if !models.IsValidScooterStatus(models.NormalizeScooterStatus(status)) {
		return FieldErrors{"status": "Unknown status"}
	}
	return nil
}

// Promotion validates the create/edit promotion form.
func Promotion(p models.Promotion) error {
	fe := FieldErrors{}
	if blank(p.Title) {
		fe.add("title", "Title is required")
	}
	if blank(p.Code) {
		fe.add("code", "Promotion code is required")
	}
	if p.Value <= 0 {
		fe.add("value", "Value is required")
	}
	switch p.Unit {
	case models.PromotionUnitPercent:
		if p.Value > 100 {
			fe.add("value", "Percentage cannot exceed 100")
		}
	case models.PromotionUnitFixed:
	default:
		fe.add("unit", "Unit must be percent or fixed")
	}
	if p.StartDate.IsZero() {
		fe.add("startDate", "Start date is required")
	}
	if p.EndDate.IsZero() {
		fe.add("endDate", "End date is required")
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && !p.EndDate.After(p.StartDate.Time) {
		fe.add("endDate", "End date must be after start date")
	}
	if p.UsageLimit <= 0 {
		fe.add("usageLimit", "Usage limit is required")
	}
	if p.Status != "" && !models.IsValidPromotionStatus(p.Status) {
		fe.add("status", "Unknown status")
	}
	return fe.err()
}

// Maintenance validates a maintenance request. The scheduled date may be
// today but not earlier.
func Maintenance(req models.MaintenanceRequest, now time.Time) error {
	fe := FieldErrors{}
	if blank(req.Reason) {
		fe.add("reason", "Reason is required")
	}
	if !models.IsValidPriority(req.Priority) {
		fe.add("priority", "Priority must be low, medium or high")
	}
	if req.ScheduledDate.IsZero() {
		fe.add("scheduledDate", "Scheduled date is required")
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if req.ScheduledDate.Before(today) {
			fe.add("scheduledDate", "Scheduled date cannot be in the past")
		}
	}
	return fe.err()
}

// User validates the rider form.
func User(in models.UserInput) error {
	fe := FieldErrors{}
	if blank(in.FirstName) {
		fe.add("firstName", "First name is required")
	}
	if blank(in.LastName) {
		fe.add("lastName", "Last name is required")
	}
	if !ValidateEmail(in.Email) {
		fe.add("email", "Invalid email format")
	}
	if !blank(in.Phone) && !ValidatePhone(in.Phone) {
		fe.add("phone", "Invalid phone number")
	}
	return fe.err()
}

// Admin validates a new console operator.
func Admin(req models.CreateAdminRequest) error {
	fe := FieldErrors{}
	if blank(req.Name) {
		fe.add("name", "Name is required")
	}
	if !ValidateEmail(req.Email) {
		fe.add("email", "Invalid email format")
	}
	if len(req.Password) < 8 {
		fe.add("password", "Password must be at least 8 characters")
	}
	if req.Role != "" && !models.IsValidRole(req.Role) {
		fe.add("role", "Invalid role")
	}
	return fe.err()
}

// Credentials validates the login form.
func Credentials(req models.LoginRequest) error {
	fe := FieldErrors{}
	if blank(req.Email) {
		fe.add("email", "Email is required")
	}
	if req.Password == "" {
		fe.add("password", "Password is required")
	}
	return fe.err()
}

// DateRange checks that a report range is not inverted. Either bound may be absent.
func DateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return FieldErrors{"endDate": "End date must not be before start date"}
	}
	return nil
}
