package domain

import "errors"

var (
	// ErrUserExists indicates the email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound indicates no account matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates the email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the access token failed verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden indicates the caller's role lacks a required capability.
	ErrForbidden = errors.New("forbidden")
)
