package models

import (
	"encoding/json"
	"strings"
)

// Role represents console operator roles
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleOperator, RoleViewer:
		return true
	default:
		return false
	}
}

// Admin is the authenticated console operator.
type Admin struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// UnmarshalJSON accepts either "id" or "_id".
func (a *Admin) UnmarshalJSON(data []byte) error {
	type plain Admin
	if err := json.Unmarshal(data, (*plain)(a)); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = mongoID(data)
	}
	return nil
}

// EffectiveRole returns the admin's role. The auth service only issues
// tokens to admins, so an unset role means full access.
func (a *Admin) EffectiveRole() Role {
	if a == nil {
		return ""
	}
	if a.Role == "" {
		return RoleAdmin
	}
	return a.Role
}

// HasPermission checks if an admin may perform a console action
func (a *Admin) HasPermission(action string) bool {
	switch a.EffectiveRole() {
	case RoleAdmin:
		return true
	case RoleManager:
		return action != "delete_user" && action != "manage_admins"
	case RoleOperator:
		return action == "view_reports" || action == "manage_scooters" ||
			action == "schedule_maintenance" || action == "end_ride"
	case RoleViewer:
		return action == "view_reports"
	default:
		return false
	}
}

// LoginRequest represents an admin login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the auth service's answer to a login
type LoginResponse struct {
	Token string `json:"token"`
	Admin *Admin `json:"admin,omitempty"`
}

// CreateAdminRequest represents an admin creation request
type CreateAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// Claims represents the parts of a bearer token the console reads
type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Exp     int64  `json:"exp"`
}

// UserStatus is the account state of a rider.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// PaymentMethod is a card or wallet on file for a rider.
type PaymentMethod struct {
	Type      string `json:"type"`
	Last4     string `json:"last4,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// User represents a rider account held by the auth service
type User struct {
	ID             ID              `json:"id"`
	FirstName      string          `json:"firstName,omitempty"`
	LastName       string          `json:"lastName,omitempty"`
	Name           string          `json:"name,omitempty"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone,omitempty"`
	Status         UserStatus      `json:"status"`
	JoinDate       Timestamp       `json:"joinDate"`
	TotalRides     int             `json:"totalRides"`
	TotalSpent     float64         `json:"totalSpent"`
	PaymentMethods []PaymentMethod `json:"paymentMethods,omitempty"`
}

// UnmarshalJSON accepts either "id" or "_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	if err := json.Unmarshal(data, (*plain)(u)); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = mongoID(data)
	}
	return nil
}

// FullName returns Name, or the first and last name joined.
func (u User) FullName() string {
	if u.Name != "" {
		return u.Name
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserInput is the body sent when signing up or editing a rider.
type UserInput struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Password  string     `json:"password,omitempty"`
	Status    UserStatus `json:"status,omitempty"`
}
