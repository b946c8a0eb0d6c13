package auth

import "time"

// User represents an authenticated staff account. Staff sign in with a
// phone number and a numeric PIN.
type User struct {
	ID        int64
	Phone     string
	Name      string
	PINHash   string
	IsActive  bool
	Roles     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
