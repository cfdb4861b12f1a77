package plugin

import (
	"errors"
	"fmt"
)

// Errors returned by the host.
var (
	// ErrClosed is returned when running code on a closed host.
	ErrClosed = errors.New("plugin host is closed")

	// ErrUnknownEvent is raised in Lua for an unsupported event kind.
	ErrUnknownEvent = errors.New("unknown event kind")
)

// ScriptError wraps a failure raised while running Lua code.
type ScriptError struct {
	// Script names the chunk: a file path, or the name given to DoString.
	Script string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("plugin script %s: %v", e.Script, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
