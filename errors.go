package main

import (
	"errors"
	"fmt"
)

//
// Manifest constants for the runtime error messages
//

const (
	EOVERFLOW      = "Overflow"
	EDIVZERO       = "Division by zero"
	EOUTOFDATA     = "Out of data"
	EDUPLICATEDEF  = "Duplicate definition"
	ERETURNNOGOSUB = "RETURN without GOSUB"
	ENEXTNOFOR     = "NEXT without FOR"
	EUNDEFINEDLINE = "Undefined line number"
	EBADSUBSCRIPT  = "Bad subscript"
	ESUBSCRIPT     = "Subscript out of range"
	EZEROSTEP      = "STEP cannot be 0"
	ECANTCONTINUE  = "Cannot CONTINUE"
	EINPUTABORTED  = "Input aborted"
	EEXPECTEDVAR   = "Expected variable name"
	ELOGARG        = "Argument to LOG <= 0"
	ESQRARG        = "Argument to SQR is negative"
	EBADINTERVAL   = "Interval must be positive"
)

//
// The two user-visible error kinds.  Reported while running as
// '<kind> in <line>: <message>', or without the line number in
// immediate mode
//

const (
	kindSyntax  = "Syntax error"
	kindRuntime = "Runtime error"
)

type basicError struct {
	kind string
	msg  string
}

func (e *basicError) Error() string {

	return e.kind + ": " + e.msg
}

func syntaxErrorf(f string, args ...any) error {

	return &basicError{kind: kindSyntax, msg: fmt.Sprintf(f, args...)}
}

func runtimeErrorf(f string, args ...any) error {

	return &basicError{kind: kindRuntime, msg: fmt.Sprintf(f, args...)}
}

//
// errBreak is not an error in the user-visible sense: it marks a ^C
// (or a STOP statement) sampled at a statement boundary.  The run
// loop reports 'Break in <line>' and leaves the program resumable
//

var errBreak = errors.New("Break")

//
// Format an error for the user.  lineNo 0 means immediate mode
//

func formatError(lineNo int, err error) string {

	var kind, msg string

	if be, ok := err.(*basicError); ok {
		kind, msg = be.kind, be.msg
	} else {
		kind, msg = kindRuntime, err.Error()
	}

	if lineNo > 0 {
		return fmt.Sprintf("%s in %d: %s", kind, lineNo, msg)
	}

	return fmt.Sprintf("%s: %s", kind, msg)
}

//
// The three-way result of executing one statement.  A jump is a
// normal outcome, consumed entirely by the run loop, and is never
// surfaced to the user as an error
//

type stmtResult int

const (
	resNext stmtResult = iota // fall through to the next statement
	resJump                   // cursor repositioned, do not auto-advance
	resStop                   // END: terminal stop
)
