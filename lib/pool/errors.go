package pool

import "fmt"

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInvalidConfig:
		errorCode = "InvalidConfig"
	case RetCWorkerFailure:
		errorCode = "WorkerFailure"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("PoolError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new pool Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess       RetCode = iota // 0: Operation executed successfully.
	RetCInvalidConfig                // 1: The pool configuration is invalid.
	RetCWorkerFailure                // 2: A collection worker failed on an environment call.
)
