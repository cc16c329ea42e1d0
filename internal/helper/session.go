package helper

// Session keys. The session carries at most these two identities:
// a pending email mid-registration, an authenticated email once
// logged in.
const (
	SessionPendingEmail = "pending_email"
	SessionUserEmail    = "user_email"
)
