package model

import "errors"

var (
	// Credential/token mismatch (forbidden outcome)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenMismatch      = errors.New("token mismatch")

	// Protocol violation (client-error outcome)
	ErrProfileAlreadySelected = errors.New("profile already selected")

	// Silent absence (not-found / no-content outcome)
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrTicketNotFound  = errors.New("join ticket not found")
	ErrTextureNotFound = errors.New("texture not found")
)
