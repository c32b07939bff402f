package domain

import (
	"errors"
	"time"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("role must be buyer or seller")
)

// ValidRole reports whether role is one of the marketplace roles.
func ValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller
}

// User models a registered marketplace identity.
type User struct {
	ID           string    `json:"_id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	MobileNumber string    `json:"mobileNumber"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DisplayName is the "first last" form returned on login.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
