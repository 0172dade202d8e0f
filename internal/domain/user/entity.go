package user

import "time"

// User represents a user of the bookkeeping system. Instances are value
// objects: mutation helpers return a fresh copy and never write in place.
type User struct {
	ID        string // Opaque unique identifier (UUID)
	Email     string // Unique email address
	FirstName string
	LastName  string
	Password  string // Stored as an opaque string, compared verbatim
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the user's display name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Updates carries optional field overrides for an update. Nil fields keep
// the current value.
type Updates struct {
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
}

// WithUpdates returns a copy of the user with the supplied overrides
// applied. ID and CreatedAt never change; UpdatedAt is refreshed.
func (u User) WithUpdates(up Updates) User {
	next := u
	if up.Email != nil {
		next.Email = *up.Email
	}
	if up.FirstName != nil {
		next.FirstName = *up.FirstName
	}
	if up.LastName != nil {
		next.LastName = *up.LastName
	}
	if up.Password != nil {
		next.Password = *up.Password
	}
	next.UpdatedAt = time.Now().UTC()
	return next
}

// WithPassword returns a copy of the user with a replaced password and a
// refreshed UpdatedAt.
func (u User) WithPassword(password string) User {
	return u.WithUpdates(Updates{Password: &password})
}
