package service

import "errors"

var (
	// ErrUnauthorized means the caller identity is missing or does not match
	// the owner of the resource being mutated.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the referenced user or post does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidToken is returned for malformed or mis-signed JWTs.
	ErrInvalidToken = errors.New("invalid token")
)
