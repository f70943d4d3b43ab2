package services

import "errors"

var (
	// ErrInvalidCredentials is returned when a username is unknown or a
	// password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
)
