package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds returned by the client. Callers branch on them with errors.Is.
var (
	ErrDuplicateReference = errors.New("reference already used")
	ErrInvalidInput       = errors.New("request rejected, check your input")
	ErrUnauthorized       = errors.New("session is no longer valid, log in again")
	ErrNotFound           = errors.New("journal not found or already deleted")
	ErrServer             = errors.New("server failed to process the request")
	ErrConnection         = errors.New("connection to the server lost")
)

// DuplicateReferenceMessage is the error text the API sends when no_ref is
// already used by another journal of the same type.
const DuplicateReferenceMessage = "Reference number already exists for this type"

// APIError is a failed API call. Error() only ever shows the kind; the raw
// server message is kept in Detail for logs.
type APIError struct {
	StatusCode int
	Kind       error
	Detail     string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", e.Kind, e.StatusCode)
	}
	return e.Kind.Error()
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// classify maps a status code and server message to an error kind.
func classify(status int, message string) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusBadRequest && isDuplicateReference(message):
		return ErrDuplicateReference
	case status >= 400 && status < 500:
		return ErrInvalidInput
	default:
		return ErrServer
	}
}

func isDuplicateReference(message string) bool {
	if message == DuplicateReferenceMessage {
		return true
	}
	m := strings.ToLower(message)
	return strings.Contains(m, "reference") && strings.Contains(m, "already exists")
}
