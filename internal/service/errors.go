// Package service holds the authenticated operations behind the HTTP API.
// Every operation checks authorization before it touches the store.
package service

import (
	"errors"
	"fmt"
)

// Error kinds. Callers classify with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUpstream     = errors.New("upstream failure")
)

// ErrAlreadyFavorited is returned when the game is already in the user's favorites.
var ErrAlreadyFavorited = fmt.Errorf("%w: game already in favorites", ErrInvalidInput)

func upstream(err error) error {
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
