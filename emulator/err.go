package emulator

import (
	"errors"

	"github.com/ezrec/armsim/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrStepLimit = errors.New(f("step limit exceeded"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrMemoryInit indicates a memory initializer script failed.
type ErrMemoryInit struct {
	Name string
	Err  error
}

func (err *ErrMemoryInit) Error() string {
	return f("memory %v: %v", err.Name, err.Err)
}

func (err *ErrMemoryInit) Unwrap() error {
	return err.Err
}

// ErrMemoryValue is a memory initializer entry that is not a 64-bit integer.
type ErrMemoryValue string

func (err ErrMemoryValue) Error() string {
	return f("'%v' is not a 64-bit integer", string(err))
}
