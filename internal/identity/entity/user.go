package entity

import "time"

// User is an account identified by its phone number.
type User struct {
	ID          int64
	PhoneNumber string
	FullName    string
	Email       string
	Verified    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
