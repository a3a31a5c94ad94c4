package mfiles

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrTransport      = errors.New("mfiles: transport error")
	ErrNotFound       = errors.New("mfiles: not found")
	ErrAuthentication = errors.New("mfiles: authentication failed")
)

// TransportError is returned when the server answers with a non-200 status
// or the request never reached it (StatusCode is 0 then).
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	// Body is the raw response body, kept as diagnostic text.
	Body string
	Err  error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("mfiles: %s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("mfiles: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, strings.TrimSpace(e.Body))
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// NotFoundError is returned when a name cannot be translated into an ID.
type NotFoundError struct {
	// Kind is what was looked up: "object", "class", "property", "value", "file", "category".
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mfiles: %s %q not found in vault", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AuthenticationError is returned when the login request fails or yields no token.
type AuthenticationError struct {
	User  string
	Vault string
	Err   error
}

func (e *AuthenticationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("mfiles: authentication of %q to vault %s failed", e.User, e.Vault)
	}
	return fmt.Sprintf("mfiles: authentication of %q to vault %s failed: %v", e.User, e.Vault, e.Err)
}

func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

func (e *AuthenticationError) Unwrap() error { return e.Err }
