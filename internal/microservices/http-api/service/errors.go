package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"yamdb/internal/microservices/http-api/policy"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid confirmation code")
	ErrUnauthenticated    = errors.New("authentication credentials were not provided or are invalid")
	ErrPermissionDenied   = errors.New("you do not have permission to perform this action")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMailDelivery       = errors.New("confirmation mail could not be delivered")
)

// ValidationError carries per-field messages for malformed or out-of-range input.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Merge(other error) {
	var ve *ValidationError
	if errors.As(other, &ve) {
		for f, msgs := range ve.Fields {
			for _, m := range msgs {
				e.Add(f, m)
			}
		}
	}
}

// OrNil returns e when it holds at least one message.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func fieldError(field, msg string) error {
	ve := &ValidationError{}
	ve.Add(field, msg)
	return ve
}

// ConflictError reports a uniqueness clash. It matches ErrConflict with errors.Is.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func notFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// authorize turns a policy decision into the matching service error.
func authorize(s policy.Subject, res policy.Resource, act policy.Action, isOwner bool) error {
	switch policy.Decide(s, res, act, isOwner) {
	case policy.Allow:
		return nil
	case policy.Unauthenticated:
		return ErrUnauthenticated
	default:
		return ErrPermissionDenied
	}
}
