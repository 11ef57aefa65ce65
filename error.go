package dbconnect

import (
	"errors"
	"fmt"
)

type ErrorCode int

const (
	Unknown ErrorCode = iota
	// RemoteWriteError is a failed write (put/set) round trip to the remote service.
	RemoteWriteError
	// RemoteReadError is a failed read (get) round trip to the remote service.
	RemoteReadError
	// DecodeError means a payload could not be encoded for, or decoded from, the remote service.
	DecodeError
	// ConfigurationError is returned by constructors given unusable parameters.
	ConfigurationError
)

func (c ErrorCode) String() string {
	switch c {
	case RemoteWriteError:
		return "RemoteWriteError"
	case RemoteReadError:
		return "RemoteReadError"
	case DecodeError:
		return "DecodeError"
	case ConfigurationError:
		return "ConfigurationError"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by all facades. UserData carries the key the
// operation was issued for.
type Error struct {
	Code     ErrorCode
	Err      error
	UserData any
}

func (e Error) Error() string {
	return fmt.Errorf("error code: %v, user data: %v, details: %w", e.Code, e.UserData, e.Err).Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// NewError is a convenience ctor.
func NewError(code ErrorCode, key any, err error) Error {
	return Error{
		Code:     code,
		Err:      err,
		UserData: key,
	}
}

// CodeOf returns the ErrorCode of err if it is (or wraps) an Error, Unknown otherwise.
func CodeOf(err error) ErrorCode {
	var e Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}

// IsRemoteWriteError reports whether err is a failed remote write.
func IsRemoteWriteError(err error) bool {
	return err != nil && CodeOf(err) == RemoteWriteError
}

// IsRemoteReadError reports whether err is a failed remote read.
func IsRemoteReadError(err error) bool {
	return err != nil && CodeOf(err) == RemoteReadError
}
