package domain

import "time"

// Principal is the signed-in identity of the current session.
type Principal struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email"`
	SignedInAt time.Time `json:"signed_in_at"`
	// IDToken is the provider's token for the sign-in; never sent to clients.
	IDToken string `json:"-"`
}

// Session binds a Principal to an opaque session id.
type Session struct {
	ID        string     `json:"session_id"`
	Principal *Principal `json:"principal"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// State of the authentication gate for one session.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)
