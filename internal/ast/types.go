package ast

import (
	"strings"

	"minic/internal/source"
)

// BaseType is one of the builtin scalar types.
type BaseType uint8

const (
	TypeInvalid BaseType = iota
	TypeInt
	TypeFloat
	TypeChar
	TypeVoid
)

func (t BaseType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeChar:
		return "char"
	case TypeVoid:
		return "void"
	}
	return "<invalid>"
}

// TypeSpec is a base type plus pointer stars, e.g. "char*".
type TypeSpec struct {
	Base     BaseType
	Pointers uint8
	Span     source.Span
}

func (t TypeSpec) String() string {
	return t.Base.String() + strings.Repeat("*", int(t.Pointers))
}
