package assessment

import "errors"

var (
	ErrSessionNotFound = errors.New("assessment session not found or expired")
	ErrTooManySessions = errors.New("too many open assessment sessions")
	ErrMailDisabled    = errors.New("mailing exports is not enabled")
	ErrNoRecipients    = errors.New("at least one recipient is required")
)
