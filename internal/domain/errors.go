package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Callers match on these with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
)

// Domain errors
var (
	ErrGameNotFound   = fmt.Errorf("game %w", ErrNotFound)
	ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)
	ErrNotWaiting     = fmt.Errorf("%w: game has already started", ErrInvalidState)
	ErrNotActive      = fmt.Errorf("%w: game is not active", ErrInvalidState)
	ErrEmptyName      = fmt.Errorf("%w: name is required", ErrInvalidInput)
)
