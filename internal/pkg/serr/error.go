package serr

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// Kind classifies an error by how the caller is expected to recover from it.
type Kind int

const (
	KindInternal Kind = iota
	// KindValidation is raised before any network call; nothing was changed.
	KindValidation
	// KindRequest is a single failed request inside a multi-step operation.
	KindRequest
	// KindLoad is a failed load of the data a screen depends on.
	KindLoad
	// KindAuth means no signed-in user was found.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRequest:
		return "request"
	case KindLoad:
		return "load"
	case KindAuth:
		return "auth"
	default:
		return "internal"
	}
}

type ServiceError struct {
	Err        error
	Kind       Kind
	Msg        string
	StackTrace string
	StatusCode int
	Env        map[string]string
}

func NewServiceError(err error, statusCode int, msg string, args ...any) *ServiceError {
	return &ServiceError{
		Err:        err,
		Kind:       kindFromStatus(statusCode),
		Msg:        fmt.Sprintf(msg, args...),
		StatusCode: statusCode,
		StackTrace: string(debug.Stack()),
		Env:        make(map[string]string),
	}
}

func Validation(msg string, args ...any) *ServiceError {
	se := NewServiceError(nil, http.StatusBadRequest, msg, args...)
	se.Kind = KindValidation
	return se
}

func Request(err error, statusCode int, msg string, args ...any) *ServiceError {
	se := NewServiceError(err, statusCode, msg, args...)
	se.Kind = KindRequest
	return se
}

func Load(err error, msg string, args ...any) *ServiceError {
	status := http.StatusBadGateway
	var inner *ServiceError
	if errors.As(err, &inner) && inner.StatusCode != 0 {
		status = inner.StatusCode
	}

	se := NewServiceError(err, status, msg, args...)
	se.Kind = KindLoad
	return se
}

func Unauthenticated(msg string, args ...any) *ServiceError {
	se := NewServiceError(nil, http.StatusUnauthorized, msg, args...)
	se.Kind = KindAuth
	return se
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsKind reports whether any ServiceError in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var se *ServiceError
		if !errors.As(err, &se) {
			return false
		}
		if se.Kind == kind {
			return true
		}
		err = se.Err
	}
	return false
}

// Message returns the user facing message of the outermost ServiceError, or
// the error text when there is none.
func Message(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Msg
	}
	return err.Error()
}

func kindFromStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindInternal
	}
}
