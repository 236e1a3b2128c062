package domain

import "errors"

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidCredentials   = errors.New("INVALID_LOGIN_CREDENTIALS")
	ErrSessionNotFound      = errors.New("session not found")
)
