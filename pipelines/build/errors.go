// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package build

import (
	"errors"
	"fmt"

	"github.com/mdhender/pegts"
)

// ErrFile is returned when file I/O operations fail.
type ErrFile struct {
	Op   string // mkdir, write, read
	Path string
	Err  error
}

func (e *ErrFile) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ErrFile) Unwrap() error {
	return e.Err
}

// ErrDatabase is returned when cache operations fail.
type ErrDatabase struct {
	Op  string
	Err error
}

func (e *ErrDatabase) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *ErrDatabase) Unwrap() error {
	return e.Err
}

// ErrSyntax is returned when a generated module fails the syntax check.
type ErrSyntax struct {
	Path  string
	Count int
}

func (e *ErrSyntax) Error() string {
	if e.Count == 1 {
		return fmt.Sprintf("%s: 1 syntax error", e.Path)
	}
	return fmt.Sprintf("%s: %d syntax errors", e.Path, e.Count)
}

// Error code constants, extending the ones defined by pegts.
const (
	ErrCodeFile     = "WRITE_FILE"
	ErrCodeDatabase = "DATABASE"
	ErrCodeSyntax   = "SYNTAX"
)

// ErrorCode returns the error code string for a given error.
func ErrorCode(err error) string {
	var fileErr *ErrFile
	var dbErr *ErrDatabase
	var syntaxErr *ErrSyntax
	switch {
	case errors.As(err, &fileErr):
		return ErrCodeFile
	case errors.As(err, &dbErr):
		return ErrCodeDatabase
	case errors.As(err, &syntaxErr):
		return ErrCodeSyntax
	default:
		return pegts.ErrorCode(err)
	}
}
