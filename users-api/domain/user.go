package domain

import (
	"strings"
	"time"
)

// UserRole defines the roles a user can hold.
type UserRole string

const (
	RoleTenant   UserRole = "TENANT"
	RoleLandlord UserRole = "LANDLORD"
	RoleAdmin    UserRole = "ADMIN"
)

// ParseRole maps a raw string to a UserRole, case-insensitively.
func ParseRole(raw string) (UserRole, bool) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleTenant:
		return RoleTenant, true
	case RoleLandlord:
		return RoleLandlord, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// User represents an account on the platform. Landlords own properties,
// tenants request bookings, admins manage accounts.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"unique;not null" json:"username"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Role        UserRole  `gorm:"type:varchar(20);default:'TENANT'" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the MySQL table name.
func (User) TableName() string {
	return "users"
}
