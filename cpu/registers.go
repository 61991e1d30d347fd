package cpu

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

const (
	REGISTER_COUNT = 31 // General purpose registers x0-x30
)

// Registers is the general purpose register bank.
type Registers struct {
	X [REGISTER_COUNT]Value
}

// RegisterName returns the assembler name of register n.
func RegisterName(n int) string {
	return fmt.Sprintf("x%d", n)
}

// RegisterIndex decodes a register name into its bank index.
func RegisterIndex(name string) (n int, err error) {
	digits, ok := strings.CutPrefix(name, "x")
	if !ok || len(digits) == 0 || digits[0] < '0' || digits[0] > '9' || (len(digits) > 1 && digits[0] == '0') {
		err = errors.Join(ErrRegisterInvalid, ErrOperand(name))
		return
	}

	n, err = strconv.Atoi(digits)
	if err != nil || n < 0 || n >= REGISTER_COUNT {
		err = errors.Join(ErrRegisterInvalid, ErrOperand(name))
		return
	}

	return
}

// Get reads a register by name.
func (r *Registers) Get(name string) (value Value, err error) {
	n, err := RegisterIndex(name)
	if err != nil {
		return
	}

	value = r.X[n]
	return
}

// Set writes a register by name.
func (r *Registers) Set(name string, value Value) (err error) {
	n, err := RegisterIndex(name)
	if err != nil {
		return
	}

	r.X[n] = value
	return
}

// Integer reads a register that must hold an integer.
func (r *Registers) Integer(name string) (value int64, err error) {
	v, err := r.Get(name)
	if err != nil {
		return
	}

	value, err = v.AsInteger()
	if err != nil {
		err = &ErrRegisterType{Register: name, Kind: v.Kind}
		return
	}

	return
}

// Reset sets all registers to Integer(0).
func (r *Registers) Reset() {
	clear(r.X[:])
}

// All iterates the registers in bank order.
func (r *Registers) All() iter.Seq2[string, Value] {
	return func(yield func(name string, value Value) bool) {
		for n, value := range r.X {
			if !yield(RegisterName(n), value) {
				return
			}
		}
	}
}
