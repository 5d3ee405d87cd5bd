package models

import "errors"

// ErrorKind classifies a domain failure so the HTTP layer can pick a status
// code without string-matching messages.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindPermissionDenied ErrorKind = "permission_denied"
	KindForbidden        ErrorKind = "forbidden"
	KindNotFound         ErrorKind = "not_found"
	KindConflict         ErrorKind = "conflict"
	KindInvalidState     ErrorKind = "invalid_state"
)

type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func ErrValidation(msg string) error {
	return &DomainError{Kind: KindValidation, Message: msg}
}

func ErrPermissionDenied(msg string) error {
	return &DomainError{Kind: KindPermissionDenied, Message: msg}
}

func ErrForbidden(msg string) error {
	return &DomainError{Kind: KindForbidden, Message: msg}
}

func ErrNotFound(msg string) error {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

func ErrConflict(msg string) error {
	return &DomainError{Kind: KindConflict, Message: msg}
}

func ErrInvalidState(msg string) error {
	return &DomainError{Kind: KindInvalidState, Message: msg}
}

// KindOf returns the error's kind, or "" for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
