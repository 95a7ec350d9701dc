package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"video_sharing_service/pkg/logger"

	"go.uber.org/zap"
)

// Kind classifies an error so handlers can map it to a status code.
type Kind int

const (
	// KindUnknown uncategorized failure
	KindUnknown Kind = iota
	// KindValidation malformed or missing input
	KindValidation
	// KindNotFound referenced entity absent
	KindNotFound
	// KindForbidden actor lacks ownership or authorship
	KindForbidden
	// KindConflict duplicate email, duplicate channel ownership
	KindConflict
	// KindAuth missing, invalid or expired credential
	KindAuth
	// KindMediaUpload media store upload failure, fatal to the operation
	KindMediaUpload
	// KindMediaDelete media store delete failure, logged and ignored
	KindMediaDelete
)

// Error carries a kind, a client-facing message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap exposes the cause for errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error and logs it.
func New(kind Kind, msg string) error {
	e := &Error{Kind: kind, Msg: msg}
	logger.Log.Error(msg, zap.Int("kind", int(kind)))
	return e
}

// Wrap classifies an underlying error and logs it.
func Wrap(kind Kind, msg string, err error) error {
	e := &Error{Kind: kind, Msg: msg, Err: err}
	logger.Log.Error(msg, zap.Int("kind", int(kind)), zap.Error(err))
	return e
}

// KindOf reports the kind of err, KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the client-facing message of err. Unclassified errors are
// hidden behind a generic message unless debug mode is on.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	if logger.Log != nil && logger.Log.DebugMode() {
		return err.Error()
	}
	return "internal server error"
}

// StatusCode maps an error kind to the HTTP status the API declares.
// Conflict returns 400, not 409, matching the documented surface.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
