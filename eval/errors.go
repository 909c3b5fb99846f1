package eval

import (
	"errors"
	"fmt"

	"github.com/tsani/nutcalc/token"
)

var (
	ErrDuplicateFood    = errors.New("food already defined")
	ErrUnknownFood      = errors.New("food not defined")
	ErrUnknownUnit      = errors.New("unit not defined for food")
	ErrUnitRedefined    = errors.New("unit already defined for food")
	ErrNutrientUnit     = errors.New("new units cannot be defined for nutrients")
	ErrImportsNotLoaded = errors.New("imports not loaded")
)

// Error is an interpretation error. Where is nil when no location is known.
// Err is one of the sentinel errors of this package or an error of package
// model.
type Error struct {
	Where *token.Span
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Err.Error()
	}
	if e.Where == nil {
		return msg
	}
	return e.Where.Prefix() + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorf(where *token.Span, err error, format string, args ...any) error {
	return &Error{Where: where, Msg: fmt.Sprintf(format, args...), Err: err}
}

// locate attaches where to err unless err already carries a location.
func locate(where *token.Span, err error) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Where == nil {
			e.Where = where
		}
		return e
	}
	return &Error{Where: where, Err: err}
}
