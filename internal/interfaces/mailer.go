package interfaces

import "context"

// Mailer delivers a one-time verification code to a recipient. Failure
// is surfaced to the caller; there is no retry inside the mailer.
type Mailer interface {
	SendCode(ctx context.Context, to string, name string, code string) error
}
