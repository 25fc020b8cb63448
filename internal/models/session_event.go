package models

import "time"

type SessionEventType string

const (
	SessionSignedIn      SessionEventType = "signed_in"
	SessionSignedOut     SessionEventType = "signed_out"
	SessionPasswordReset SessionEventType = "password_reset"
)

// SessionEvent describes a change to a user's authentication state.
type SessionEvent struct {
	Type      SessionEventType `json:"type"`
	UserID    int64            `json:"user_id"`
	SessionID string           `json:"session_id,omitempty"`
	At        time.Time        `json:"at"`
}
