package content

import (
	"errors"
	"fmt"
)

// InvalidScriptError indicates that a scripts file could not be turned into
// usable scripts. It is a typed error so callers can adjust UX (e.g., print a
// hint pointing at the offending file).
type InvalidScriptError struct {
	Category string
	Line     int // 1-based; 0 when the problem is not tied to a line
	Reason   string
	cause    error
}

func (e *InvalidScriptError) Error() string {
	if e == nil {
		return "invalid script"
	}
	switch {
	case e.Category == "":
		return fmt.Sprintf("invalid script: %s", e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("invalid script %q line %d: %s", e.Category, e.Line, e.Reason)
	default:
		return fmt.Sprintf("invalid script %q: %s", e.Category, e.Reason)
	}
}

func (e *InvalidScriptError) Unwrap() error { return e.cause }

func IsInvalidScript(err error) bool {
	var e *InvalidScriptError
	return errors.As(err, &e)
}
