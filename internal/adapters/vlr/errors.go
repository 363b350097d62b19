package vlr

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("vlr: not found")

type APIError struct {
	URL    string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vlr status %d for %s: %s", e.Status, e.URL, e.Body)
}

// ParseError indica que la página no tiene la forma esperada.
type ParseError struct {
	What string
}

func (e *ParseError) Error() string { return "vlr parse: " + e.What }

func parseErr(format string, args ...any) error {
	return &ParseError{What: fmt.Sprintf(format, args...)}
}
