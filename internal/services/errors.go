package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEmail       = errors.New("a valid email address is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrDuplicateAccount   = errors.New("email already registered")
	ErrNoPendingFlow      = errors.New("no pending verification for this email")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrCodeMismatch       = errors.New("verification code does not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrMailNotConfigured  = errors.New("mail credentials are not configured")
)

// MailDispatchError wraps a transport failure from the mailer so
// handlers can show a generic notice while the cause is logged
// server-side only.
type MailDispatchError struct {
	Err error
}

func (e *MailDispatchError) Error() string {
	return fmt.Sprintf("mail dispatch failed: %v", e.Err)
}

func (e *MailDispatchError) Unwrap() error { return e.Err }

// CooldownError reports how long the caller must wait before the next
// resend, in whole seconds (rounded down).
type CooldownError struct {
	Remaining int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting a new code", e.Remaining)
}
