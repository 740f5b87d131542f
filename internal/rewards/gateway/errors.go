package gateway

import (
	"fmt"

	"github.com/go-faster/errors"
)

type Kind string

const (
	KindTransport   Kind = "transport"
	KindAPI         Kind = "api"
	KindValidation  Kind = "validation"
	KindAlreadyDone Kind = "already_done"
	KindRejected    Kind = "rejected"
	KindUnknown     Kind = "unknown"
)

// RequestError is returned for every failed call to the rewards API.
type RequestError struct {
	Status  int
	Message string
	Kind    Kind
	cause   error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.cause
}

func genericMessage(status int) string {
	return fmt.Sprintf("Request failed with status %d", status)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}

// AlreadyDoneError is informational: the action was already performed today.
type AlreadyDoneError struct {
	Action  string
	Message string
}

func (e *AlreadyDoneError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Action + " already done today"
}

// ErrRejected marks errors decided locally, without a network call.
var ErrRejected = errors.New("rejected locally")

func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	var already *AlreadyDoneError
	if errors.As(err, &already) {
		return KindAlreadyDone
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return KindValidation
	}
	var req *RequestError
	if errors.As(err, &req) {
		return req.Kind
	}
	if errors.Is(err, ErrRejected) {
		return KindRejected
	}
	return KindUnknown
}

// UserMessage is the text shown in a notification for err.
func UserMessage(err error) string {
	var already *AlreadyDoneError
	if errors.As(err, &already) {
		return already.Error()
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Error()
	}
	var req *RequestError
	if errors.As(err, &req) {
		return req.Message
	}
	return err.Error()
}

type rejection struct {
	msg string
}

func (r *rejection) Error() string {
	return r.msg
}

func (r *rejection) Is(target error) bool {
	return target == ErrRejected
}

// Rejection builds a sentinel that classifies as KindRejected.
func Rejection(msg string) error {
	return &rejection{msg: msg}
}
