package cpu

import (
	"errors"

	"github.com/ezrec/armsim/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcEmpty            = errors.New(f("pc past end of program"))
	ErrPcInvalid          = errors.New(f("pc invalid"))
	ErrProgramMissing     = errors.New(f("program missing"))
	ErrInstructionUnknown = errors.New(f("instruction unrecognized"))
	ErrTypeMismatch       = errors.New(f("type mismatch"))

	// Operand decode errors
	ErrOperandMalformed = errors.New(f("operand malformed"))
	ErrOperandCount     = errors.New(f("operand count"))
	ErrRegisterInvalid  = errors.New(f("register invalid"))
)

// ErrLabelMissing is raised by a branch to a label that was never declared.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrMnemonic is the warning recorded for an unrecognized mnemonic.
type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("unknown instruction: %v", string(em))
}

func (em ErrMnemonic) Unwrap() error {
	return ErrInstructionUnknown
}

// ErrOperand is a malformed operand token.
type ErrOperand string

func (err ErrOperand) Error() string {
	return f("'%v' operand malformed", string(err))
}

func (err ErrOperand) Unwrap() error {
	return ErrOperandMalformed
}

// ErrParseNumber is an immediate that is not a valid integer.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return ErrOperandMalformed
}

// ErrRegisterType is raised when a register holds the wrong kind of value.
type ErrRegisterType struct {
	Register string
	Kind     ValueKind
}

func (err *ErrRegisterType) Error() string {
	return f("register %v holds %v, not int", err.Register, err.Kind.String())
}

func (err *ErrRegisterType) Unwrap() error {
	return ErrTypeMismatch
}

// ErrStep locates an error at an instruction in the program.
type ErrStep struct {
	Index int
	Line  string
	Err   error
}

func (err *ErrStep) Error() string {
	return f("pc %d '%v' %v", err.Index, err.Line, err.Err)
}

func (err *ErrStep) Unwrap() error {
	return err.Err
}
