package internals

import (
	"errors"
	"fmt"
)

// This file handles the error kinds shared by every phase of the front end

type ErrorKind = string

const (
	LexError           ErrorKind = "LexError"
	SyntaxError        ErrorKind = "SyntaxError"
	TypeError          ErrorKind = "TypeError"
	DeclarationError   ErrorKind = "DeclarationError"
	AllocationError    ErrorKind = "AllocationError"
	NullReferenceError ErrorKind = "NullReferenceError"
	LeakError          ErrorKind = "LeakError"
)

// Error is the single failure a pass stops at.
type Error struct {
	Kind     ErrorKind
	FilePath string
	Row      int
	Col      int
	Msg      string
	// set when the input ended before the construct did, the repl keeps reading on it
	Incomplete bool
}

func (e *Error) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.FilePath, e.Row, e.Col, e.Kind, e.Msg)
}

func NewError(kind ErrorKind, filePath string, row, col int, msg ...interface{}) *Error {
	return &Error{
		Kind:     kind,
		FilePath: filePath,
		Row:      row,
		Col:      col,
		Msg:      fmt.Sprint(msg...),
	}
}

// KindOf returns the kind of err, or "" when err isn't one of ours
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func IsIncomplete(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Incomplete
	}
	return false
}

// At fills in the position of err when the phase that raised it didn't know one
func At(err error, filePath string, row, col int) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if e.FilePath == "" {
		e.FilePath = filePath
	}
	if e.Row == 0 {
		e.Row = row
		e.Col = col
	}
	return err
}
