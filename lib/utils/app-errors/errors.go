package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInvalidState Kind = "invalid_state"
	KindForbidden    Kind = "forbidden"
	KindPersistence  Kind = "persistence"
	KindDispatch     Kind = "dispatch"
)

// Error ошибка предметной области, Message можно показывать пользователю
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, cause error, format string, args ...interface{}) error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		cause:   cause,
	}
}

func NewValidation(format string, args ...interface{}) error {
	return newError(KindValidation, nil, format, args...)
}

func NewNotFound(format string, args ...interface{}) error {
	return newError(KindNotFound, nil, format, args...)
}

func NewConflict(format string, args ...interface{}) error {
	return newError(KindConflict, nil, format, args...)
}

func NewInvalidState(format string, args ...interface{}) error {
	return newError(KindInvalidState, nil, format, args...)
}

func NewForbidden(format string, args ...interface{}) error {
	return newError(KindForbidden, nil, format, args...)
}

func Persistence(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return newError(KindPersistence, err, "%s", message)
}

func Dispatch(err error, message string) error {
	if err == nil {
		return nil
	}
	return newError(KindDispatch, err, "%s", message)
}

// KindOf для ошибок вне таксономии возвращает KindPersistence
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// UserMessage текст для ответа api, детали ошибок хранилища наружу не отдаются
func UserMessage(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindPersistence {
		return appErr.Message
	}
	return fallback
}
