package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode declares that the processing was successful and no
	// error is returned.
	SuccessCode = 0

	// All unclassified errors that do not provide a code are clubbed under
	// an internal error code and a generic message instead of detailed
	// error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

type coder interface {
	Code() uint32
}

// Code returns the code of the root error wrapped by given error. Errors not
// declared with Register are reported as internal errors.
func Code(err error) uint32 {
	if isNilErr(err) {
		return SuccessCode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Info returns the code and a log message that can be presented to a client.
// When not running in a debug mode messages of errors without a code are
// replaced with a generic "internal error".
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}

	if code := Code(err); code != internalCode {
		if debug {
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalLog
}

// Redact replace all errors that do not initialize with a registered error
// with a generic internal error instance. Panics are always redacted unless
// running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	if Code(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
