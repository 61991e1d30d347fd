package cpu

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Cpu is the execution engine: program counter, registers and memory.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Program being executed.

	Pc       int       // Index of the next opcode to execute.
	Register Registers // Register bank.
	Memory   Memory    // Memory cells.

	Ticks    int     // Executed opcodes counter.
	Warnings []error // Recoverable errors, as *ErrStep.
}

// NewCpu creates a new CPU with empty memory and no program.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %v\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "ticks", cpu.Ticks)
	for name, value := range cpu.Register.All() {
		if value == (Value{}) {
			continue
		}
		text += fmt.Sprintf("% 5s: %v\n", name, value)
	}

	return
}

// Reset the CPU state.
// - Clears the registers.
// - Zeros the program counter and statistics counters.
// - Drops collected warnings.
//
// Memory is left as is; it is seeded by the host before a run.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.Warnings = nil
}

// Halted returns true once the program counter has left the program.
func (cpu *Cpu) Halted() bool {
	return cpu.Pc >= cpu.Program.Len()
}

// FetchCode fetches the opcode at the program counter.
func (cpu *Cpu) FetchCode() (op *Opcode, err error) {
	if cpu.Program == nil {
		err = ErrProgramMissing
		return
	}

	if cpu.Pc == cpu.Program.Len() {
		err = ErrPcEmpty
		return
	}

	op, ok := cpu.Program.Opcode(cpu.Pc)
	if !ok {
		log.Printf("cpu: pc %v outside program of %v lines", cpu.Pc, cpu.Program.Len())
		err = ErrPcInvalid
		return
	}

	return
}

// Tick executes a single opcode.
// Returns ErrPcEmpty once the program has run to completion.
func (cpu *Cpu) Tick() (err error) {
	op, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(op)
	return
}

// warn records a recoverable error for the opcode.
func (cpu *Cpu) warn(op *Opcode, err error) {
	warning := &ErrStep{Index: cpu.Pc, Line: op.Text, Err: err}
	log.Printf("cpu: warning: %v", warning)
	cpu.Warnings = append(cpu.Warnings, warning)
}

// Execute executes a single opcode at the program counter.
// On error, the program counter is left at the failing opcode.
func (cpu *Cpu) Execute(op *Opcode) (err error) {
	defer func() {
		if err != nil {
			err = &ErrStep{Index: cpu.Pc, Line: op.Text, Err: err}
		}
	}()
	if cpu.Verbose {
		log.Printf("cpu: %03d: %v", cpu.Pc, op.Text)
	}

	next_pc := cpu.Pc + 1

	mnemonic, ok := op.Mnemonic()
	switch {
	case op.IsLabel():
		// Label declaration only.
	case !ok:
		var name string
		if len(op.Words) > 0 {
			name = op.Words[0]
		}
		cpu.warn(op, ErrMnemonic(name))
	default:
		args := op.Args()
		switch mnemonic {
		case OP_LDR:
			err = cpu.doLdr(args)
		case OP_STR:
			err = cpu.doStr(args)
		case OP_ADD, OP_MUL:
			err = cpu.doAlu(mnemonic, args)
		case OP_MOV:
			err = cpu.doMov(args)
		case OP_SVC:
			// Reserved for system calls.
		case OP_B:
			next_pc, err = cpu.doBranch(args)
		}
	}
	if err != nil {
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks += 1

	return
}

// addressOf resolves a bracketed address register into its memory key.
func (cpu *Cpu) addressOf(word string) (key string, err error) {
	reg, ok := strings.CutPrefix(word, "[")
	if ok {
		reg, ok = strings.CutSuffix(reg, "]")
	}
	if !ok {
		err = ErrOperand(word)
		return
	}

	addr, err := cpu.Register.Get(reg)
	if err != nil {
		return
	}

	key = addr.Key()
	return
}

// doLdr loads a symbolic address (=name), or the memory cell addressed
// by a register ([reg]).
func (cpu *Cpu) doLdr(args []string) (err error) {
	if len(args) != 2 {
		err = ErrOperandCount
		return
	}

	dst, src := args[0], args[1]

	var value Value
	if name, ok := strings.CutPrefix(src, "="); ok {
		if len(name) == 0 {
			err = ErrOperand(src)
			return
		}
		value = Symbol(name)
	} else {
		var key string
		key, err = cpu.addressOf(src)
		if err != nil {
			return
		}
		value = Integer(cpu.Memory.Load(key))
	}

	err = cpu.Register.Set(dst, value)
	return
}

// doStr stores a register into the memory cell addressed by a register.
func (cpu *Cpu) doStr(args []string) (err error) {
	if len(args) != 2 {
		err = ErrOperandCount
		return
	}

	value, err := cpu.Register.Integer(args[0])
	if err != nil {
		return
	}

	key, err := cpu.addressOf(args[1])
	if err != nil {
		return
	}

	cpu.Memory.Store(key, value)
	return
}

// doAlu performs the requested arithmetic on two registers.
func (cpu *Cpu) doAlu(op Mnemonic, args []string) (err error) {
	if len(args) != 3 {
		err = ErrOperandCount
		return
	}

	a, err := cpu.Register.Integer(args[1])
	if err != nil {
		return
	}
	b, err := cpu.Register.Integer(args[2])
	if err != nil {
		return
	}

	var output int64
	switch op {
	case OP_ADD:
		output = a + b
	case OP_MUL:
		output = a * b
	}

	err = cpu.Register.Set(args[0], Integer(output))
	return
}

// parseImmediate parses a decimal immediate, or hexadecimal with a 0x prefix.
// A leading zero is still decimal.
func parseImmediate(imm string) (value int64, ok bool) {
	sign, digits, _ := strings.Cut(imm, "0x")
	if len(sign) < len(imm) && (sign == "" || sign == "-") {
		if len(digits) == 0 || digits[0] == '+' || digits[0] == '-' {
			return
		}
		v, err := strconv.ParseInt(sign+digits, 16, 64)
		return v, err == nil
	}

	v, err := strconv.ParseInt(imm, 10, 64)
	return v, err == nil
}

// doMov sets a register to an immediate.
func (cpu *Cpu) doMov(args []string) (err error) {
	if len(args) != 2 {
		err = ErrOperandCount
		return
	}

	value, ok := parseImmediate(strings.TrimPrefix(args[1], "#"))
	if !ok {
		err = ErrParseNumber(args[1])
		return
	}

	err = cpu.Register.Set(args[0], Integer(value))
	return
}

// doBranch returns the index of the branch target.
func (cpu *Cpu) doBranch(args []string) (next_pc int, err error) {
	if len(args) != 1 {
		err = ErrOperandCount
		return
	}

	next_pc, err = cpu.Program.Target(args[0])
	return
}
