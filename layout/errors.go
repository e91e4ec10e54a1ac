package layout

import "fmt"

type ErrorKind string

const (
	ErrImbalancedHierarchy    ErrorKind = "ImbalancedHierarchy"
	ErrTerminalLevelNotUnique ErrorKind = "TerminalLevelNotUnique"
	ErrInvalidOffset          ErrorKind = "InvalidOffset"
	ErrInvalidWidthMethod     ErrorKind = "InvalidWidthMethod"
	ErrNotMultiIndex          ErrorKind = "NotMultiIndex"
	ErrColumnNotFound         ErrorKind = "ColumnNotFound"
	ErrShapeMismatch          ErrorKind = "ShapeMismatch"
	ErrInvalidFormat          ErrorKind = "InvalidFormat"
	ErrInvalidAlign           ErrorKind = "InvalidAlign"
)

func (k ErrorKind) Error() string {
	return string(k)
}

// Error is returned by every planner in this package. Value holds the
// offending input (a method string, an offset, a column name ...).
type Error struct {
	Kind  ErrorKind
	Value any
	Msg   string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Value)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Msg, e.Value)
}

// Is makes errors.Is(err, ErrColumnNotFound) work.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func newError(kind ErrorKind, value any, format string, args ...any) *Error {
	return &Error{Kind: kind, Value: value, Msg: fmt.Sprintf(format, args...)}
}
