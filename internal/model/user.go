package model

import (
	"strings"
	"sync"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
)

// Role tags a user record.  Only customers own a booking history.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole accepts a role name in any case.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", apperror.New(apperror.InvalidInput, "invalid role %q", raw)
}

// User represents an account in the directory.  The Role field decides
// which of the role specific fields are meaningful: only a CUSTOMER keeps
// a booking history.  The history is append-only and is written by the
// booking engine while it holds the movie lock; it has its own mutex so
// that it can be read while other movies are being booked.
//
// Fields:
//  Username     – unique login name.
//  PasswordHash – bcrypt hash of the password.
//  Role         – CUSTOMER or ADMIN.
type User struct {
	Username     string // users are looked up by this name
	PasswordHash string // bcrypt hash
	Role         Role   // CUSTOMER | ADMIN

	mu       sync.Mutex
	bookings []string
}

// NewUser builds a user for the given role name.
func NewUser(role, username, passwordHash string) (*User, error) {
	r, err := ParseRole(role)
	if err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.New(apperror.InvalidInput, "username is required")
	}
	return &User{Username: username, PasswordHash: passwordHash, Role: r}, nil
}

// IsCustomer reports whether the user can book tickets.
func (u *User) IsCustomer() bool { return u.Role == RoleCustomer }

// AppendBooking records a booking description.  Admin accounts have no
// history and are rejected.
func (u *User) AppendBooking(description string) error {
	if !u.IsCustomer() {
		return apperror.New(apperror.InvalidRequest, "user %q is not a customer", u.Username)
	}
	u.mu.Lock()
	u.bookings = append(u.bookings, description)
	u.mu.Unlock()
	return nil
}

// Bookings returns a copy of the booking history in the order it was written.
func (u *User) Bookings() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, len(u.bookings))
	copy(out, u.bookings)
	return out
}
