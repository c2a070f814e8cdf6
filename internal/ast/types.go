package ast

import (
	"strconv"
	"strings"
)

type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeInt
	TypeStr
	TypeFloat32
	TypeFloat64
	TypeBool
	TypeDynamic
	TypeVoid
	// TypeNone is the type of the `none` literal; it has no source spelling.
	TypeNone
	TypeList
	TypeArray
	TypeMap
	TypeTensor
	TypeNamed
)

var scalarTypes = map[string]TypeKind{
	"int":     TypeInt,
	"str":     TypeStr,
	"float32": TypeFloat32,
	"float64": TypeFloat64,
	"bool":    TypeBool,
	"dynamic": TypeDynamic,
	"void":    TypeVoid,
}

// LookupScalarType resolves the spelling of a non-generic built-in type.
func LookupScalarType(name string) (TypeKind, bool) {
	k, ok := scalarTypes[name]
	return k, ok
}

// Type is a written or inferred type.
//
//	list[T], array[T]  -> Args = [T]
//	map[K, V]          -> Args = [K, V]
//	Tensor[T, [d...]]  -> Args = [T], Dims = d
//	Name               -> Name
type Type struct {
	Base
	Kind TypeKind
	Name string
	Args []*Type
	Dims []int
}

// Simple returns a type of a non-generic kind.
func Simple(k TypeKind) *Type {
	return &Type{Kind: k}
}

// Named returns a user-defined class type.
func Named(name string) *Type {
	return &Type{Kind: TypeNamed, Name: name}
}

// ListOf returns list[elem].
func ListOf(elem *Type) *Type {
	return &Type{Kind: TypeList, Args: []*Type{elem}}
}

// Elem returns the first type argument, or nil.
func (t *Type) Elem() *Type {
	if t == nil || len(t.Args) == 0 {
		return nil
	}
	return t.Args[0]
}

// IsNumeric reports whether values of t support arithmetic.
func (t *Type) IsNumeric() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeInt, TypeFloat32, TypeFloat64:
		return true
	}
	return false
}

// IsFloat reports float32/float64.
func (t *Type) IsFloat() bool {
	return t != nil && (t.Kind == TypeFloat32 || t.Kind == TypeFloat64)
}

func (t *Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	if t == nil {
		b.WriteString("?")
		return
	}
	switch t.Kind {
	case TypeInt:
		b.WriteString("int")
	case TypeStr:
		b.WriteString("str")
	case TypeFloat32:
		b.WriteString("float32")
	case TypeFloat64:
		b.WriteString("float64")
	case TypeBool:
		b.WriteString("bool")
	case TypeDynamic:
		b.WriteString("dynamic")
	case TypeVoid:
		b.WriteString("void")
	case TypeNone:
		b.WriteString("none")
	case TypeList, TypeArray, TypeMap, TypeTensor:
		b.WriteString(t.genericName())
		b.WriteByte('[')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.write(b)
		}
		if t.Kind == TypeTensor {
			b.WriteString(", [")
			for i, d := range t.Dims {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(strconv.Itoa(d))
			}
			b.WriteByte(']')
		}
		b.WriteByte(']')
	case TypeNamed:
		b.WriteString(t.Name)
	default:
		b.WriteString("<invalid>")
	}
}

func (t *Type) genericName() string {
	switch t.Kind {
	case TypeList:
		return "list"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	case TypeTensor:
		return "Tensor"
	}
	return ""
}

// GenericName returns "list", "array", "map" or "Tensor" for generic kinds, "" otherwise.
func (t *Type) GenericName() string {
	if t == nil {
		return ""
	}
	return t.genericName()
}
