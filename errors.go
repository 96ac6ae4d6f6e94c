// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

import (
	"errors"
	"fmt"
)

// ErrMissingCode is returned when the compiler did not produce any code
// for the pass to wrap. It usually means the compiler was configured to
// stop before generating JavaScript.
var ErrMissingCode = errors.New("pegts requires the compiler to generate JavaScript source before continuing, but no generated source code was found")

// InvalidIdentifierError is returned when the configured error name can't
// be spliced into the module as an identifier.
type InvalidIdentifierError struct {
	Name   string
	Reason string
	Err    error // set when the name could not be encoded at all
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("the error name %q is not a valid JavaScript identifier: %s", e.Name, e.Reason)
}

func (e *InvalidIdentifierError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a grammar output or configuration file
// can't be decoded.
type DecodeError struct {
	Path string // empty when decoding from memory
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Error codes reported by the command line tool and stored with failed runs.
const (
	ErrCodeMissingCode       = "MISSING_CODE"
	ErrCodeInvalidIdentifier = "INVALID_IDENTIFIER"
	ErrCodeDecode            = "DECODE"
	ErrCodeUnknown           = "UNKNOWN"
)

// ErrorCode returns the error code for err, looking through wrapped errors.
func ErrorCode(err error) string {
	var invalid *InvalidIdentifierError
	var decode *DecodeError
	switch {
	case errors.Is(err, ErrMissingCode):
		return ErrCodeMissingCode
	case errors.As(err, &invalid):
		return ErrCodeInvalidIdentifier
	case errors.As(err, &decode):
		return ErrCodeDecode
	default:
		return ErrCodeUnknown
	}
}
