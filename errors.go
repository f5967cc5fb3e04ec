package mqstub

import (
	"errors"
)

// ErrStreamClosed is returned when the peer closes the stream on a packet boundary.
// It ends a connection normally and is not a DecodeError.
var ErrStreamClosed = errors.New("stream closed")

// Decode error kinds.
var (
	ErrTruncatedRead   = errors.New("truncated read")
	ErrMalformedLength = errors.New("malformed remaining length")
	ErrMalformedBody   = errors.New("malformed body")
)

var ErrServerClosed = errors.New("server closed")

// DecodeError is any failure to produce a well-formed packet or field from the stream.
// It matches its Kind and its cause with errors.Is.
type DecodeError struct {
	Kind   error
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := e.Kind.Error() + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func truncated(reason string, err error) *DecodeError {
	return &DecodeError{Kind: ErrTruncatedRead, Reason: reason, Err: err}
}

func malformedLength(reason string, err error) *DecodeError {
	return &DecodeError{Kind: ErrMalformedLength, Reason: reason, Err: err}
}

func malformedBody(reason string) *DecodeError {
	return &DecodeError{Kind: ErrMalformedBody, Reason: reason}
}
