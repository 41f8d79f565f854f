package resolver

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("no playable tracks found")
	ErrTimeout      = errors.New("resolution timed out")
	ErrInvalidInput = errors.New("not a valid URL or query")
)

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resolver api status %d: %s", e.Status, e.Body)
}
