package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError carries field-scoped messages keyed by the request field name.
type ValidationError struct {
	Fields map[string][]string

	cause error
}

func NewFieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

// Add appends msg to field and returns e so calls can be chained.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

// WithCause records the sentinel behind the field error so errors.Is still matches it.
func (e *ValidationError) WithCause(err error) *ValidationError {
	e.cause = err
	return e
}

func (e *ValidationError) Unwrap() error { return e.cause }

// Has reports whether field carries at least one message.
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Owned is implemented by resources whose mutation is restricted to one user.
type Owned interface {
	OwnerUserID() int64
}

// AuthorizeMutation allows the change only when actingUserID owns r.
func AuthorizeMutation(r Owned, actingUserID int64) error {
	if r.OwnerUserID() != actingUserID {
		return ErrForbidden
	}
	return nil
}
