package domain

import "time"

// PendingVerification is the transient state for an email address that
// has submitted a registration but not yet confirmed its code. At most
// one record exists per email; a repeat registration overwrites it.
type PendingVerification struct {
	Email           string
	Code            string
	Name            string
	PasswordHash    string
	ExpiresAt       time.Time
	ResendAllowedAt time.Time
}
