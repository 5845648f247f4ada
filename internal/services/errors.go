package services

import (
	"errors"

	"breeder-site-backend/internal/repository"
)

var (
	// ErrNotFound is returned when the addressed entity does not exist
	ErrNotFound = repository.ErrNotFound
	// ErrConflict is returned when a unique value is already taken
	ErrConflict = repository.ErrConflict
	// ErrInvalidCredentials is returned by Login for an unknown e-mail or a wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")
)
