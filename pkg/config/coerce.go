package config

import (
	"strconv"
	"strings"
)

type ParamType int

const (
	TypeString ParamType = iota
	TypeBool
	TypeInt
)

func (t ParamType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	}
	return "unknown"
}

func coerce(p Param, raw string) (any, error) {
	switch p.Type {
	case TypeString:
		return raw, nil
	case TypeBool:
		return coerceBool(raw), nil
	case TypeInt:
		n, err := coerceInt(raw)
		if err != nil {
			return nil, &Error{Kind: TypeMismatch, Param: p.Name, Expected: p.Type}
		}
		return n, nil
	}
	return nil, &Error{Kind: TypeMismatch, Param: p.Name, Expected: p.Type}
}

// coerceBool accepts true, 1 and yes in any case; everything else is false.
func coerceBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func coerceInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}
