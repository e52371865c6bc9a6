// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the corun runtime.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the runtime.
var (
	ErrCoroutineFinished = errors.New("coroutine already finished")
	ErrNoActiveCoroutine = errors.New("no active coroutine")
	ErrChannelClosed     = errors.New("channel closed")
	ErrTimeout           = errors.New("operation timed out")
	ErrQueueFull         = errors.New("queue full")
	ErrQueueEmpty        = errors.New("queue empty")
	ErrDeadlock          = errors.New("deadlock: all coroutines parked")
	ErrSchedulerClosed   = errors.New("scheduler is closed")
)

// ErrorCode represents specific error conditions in the runtime.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeCoroutineFinished
	ErrCodeNoActiveCoroutine
	ErrCodeChannelClosed
	ErrCodeTimeout
	ErrCodeQueueFull
	ErrCodeQueueEmpty
	ErrCodeDeadlock
	ErrCodeSchedulerClosed
	ErrCodeInternal
)

// sentinel maps a code to its package-level error value.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeCoroutineFinished:
		return ErrCoroutineFinished
	case ErrCodeNoActiveCoroutine:
		return ErrNoActiveCoroutine
	case ErrCodeChannelClosed:
		return ErrChannelClosed
	case ErrCodeTimeout:
		return ErrTimeout
	case ErrCodeQueueFull:
		return ErrQueueFull
	case ErrCodeQueueEmpty:
		return ErrQueueEmpty
	case ErrCodeDeadlock:
		return ErrDeadlock
	case ErrCodeSchedulerClosed:
		return ErrSchedulerClosed
	default:
		return nil
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap lets errors.Is match the sentinel for this error's code.
func (e *Error) Unwrap() error {
	return e.Code.sentinel()
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
