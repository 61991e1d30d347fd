package cpu

import (
	"strconv"
)

// ValueKind is the kind of data held by a register.
type ValueKind int

//go:generate go tool stringer -linecomment -type=ValueKind
const (
	VALUE_INTEGER = ValueKind(0) // int
	VALUE_SYMBOL  = ValueKind(1) // sym
)

// Value is the content of a register: an integer, or the name of a memory
// cell. The zero Value is Integer(0).
type Value struct {
	Kind   ValueKind
	Int    int64
	Symbol string
}

// Integer makes an integer value.
func Integer(value int64) Value {
	return Value{Kind: VALUE_INTEGER, Int: value}
}

// Symbol makes a symbolic address value.
func Symbol(name string) Value {
	return Value{Kind: VALUE_SYMBOL, Symbol: name}
}

// IsSymbol returns true if the value is a symbolic address.
func (v Value) IsSymbol() bool {
	return v.Kind == VALUE_SYMBOL
}

// Key returns the memory key addressed by the value.
// Symbols address the cell of the same name, integers their decimal form.
func (v Value) Key() string {
	if v.Kind == VALUE_SYMBOL {
		return v.Symbol
	}
	return strconv.FormatInt(v.Int, 10)
}

// AsInteger returns the integer content, or ErrTypeMismatch for a symbol.
func (v Value) AsInteger() (value int64, err error) {
	if v.Kind != VALUE_INTEGER {
		err = ErrTypeMismatch
		return
	}

	value = v.Int
	return
}

// String renders the value the way the state dumps print it.
func (v Value) String() string {
	return v.Key()
}
