package service

import (
	"errors"
	"fmt"

	"iate-log/internal/completion"
	"iate-log/internal/parser"
	"iate-log/internal/storage"
)

// ErrInvalidInput marks a request the caller has to fix.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Error kinds reported to users.
const (
	KindInvalid  = "invalid_input"
	KindNotFound = "not_found"
	KindParse    = "parse"
	KindNetwork  = "network"
	KindStorage  = "storage"
	KindInternal = "internal"
)

// Kind classifies an error returned by the service.
func Kind(err error) string {
	var (
		perr *parser.ParseError
		nerr *completion.NetworkError
		serr *storage.StorageError
	)
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalid
	case errors.Is(err, storage.ErrNotFound):
		return KindNotFound
	case errors.As(err, &perr):
		return KindParse
	case errors.As(err, &nerr):
		return KindNetwork
	case errors.As(err, &serr):
		return KindStorage
	default:
		return KindInternal
	}
}

// Message is the text shown to the user for err.
func Message(err error) string {
	switch Kind(err) {
	case KindParse:
		return "Could not understand the meal estimate, nothing was saved."
	case KindNetwork:
		return "The meal estimator could not be reached, nothing was saved."
	case KindStorage:
		return "Your food log could not be read or written."
	case KindNotFound:
		return "Not found."
	case KindInvalid:
		return err.Error()
	default:
		return "Something went wrong."
	}
}
