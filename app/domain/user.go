package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User represents a credential record inside one tenant's backing
// database. Email is the login identity and is unique per tenant,
// matched case-insensitively.
type User struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	FullName            string     `json:"full_name"`
	PasswordHash        string     `json:"-"` // Exclude from JSON
	Status              UserStatus `json:"status"`
	Roles               []string   `json:"roles"`
	FailedLoginAttempts int        `json:"-"`
	LockoutUntil        *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
}

// NewUser creates a new user with validation
func NewUser(email, fullName, passwordHash string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", err)
	}

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, fmt.Errorf("full name is required")
	}

	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now()

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Status:       UserStatusActive,
		Roles:        []string{"user"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return user, nil
}

// NormalizeEmail folds a login identity to its canonical form: trimmed
// and lowercased. Lookups and uniqueness both use the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsActive returns true if the account may authenticate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsLockedOut returns true while a lockout window is in effect
func (u *User) IsLockedOut(now time.Time) bool {
	return u.LockoutUntil != nil && now.Before(*u.LockoutUntil)
}

// HasRole checks whether the user carries a specific role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
