package config

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	MissingRequired ErrorKind = iota + 1
	UnknownParameter
	TypeMismatch
)

var (
	ErrMissingRequired  = errors.New("missing required parameter")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrTypeMismatch     = errors.New("parameter type mismatch")
)

// Error is returned by resolution and lookup. Use errors.Is with the
// ErrMissingRequired/ErrUnknownParameter/ErrTypeMismatch sentinels to match a kind.
type Error struct {
	Kind     ErrorKind
	Param    string
	Expected ParamType
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingRequired:
		return fmt.Sprintf("config: parameter %s is required", e.Param)
	case UnknownParameter:
		return fmt.Sprintf("config: parameter %s is not declared", e.Param)
	case TypeMismatch:
		return fmt.Sprintf("config: parameter %s has wrong type, expected %s", e.Param, e.Expected)
	default:
		return fmt.Sprintf("config: invalid parameter %s", e.Param)
	}
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case MissingRequired:
		return ErrMissingRequired
	case UnknownParameter:
		return ErrUnknownParameter
	case TypeMismatch:
		return ErrTypeMismatch
	}
	return nil
}
