// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"io"
	"log"
	"strings"

	"github.com/ezrec/armsim/cpu"
)

// Emulator state. CPU + program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	MaxSteps int // If non-zero, the most opcodes a run may execute.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.Program = emu.Program

	return
}

// Load assembles program text and resets the emulator to run it.
func (emu *Emulator) Load(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog

	err = emu.Reset()
	return
}

// LoadString assembles program text held in a string.
func (emu *Emulator) LoadString(text string) (err error) {
	return emu.Load(strings.NewReader(text))
}

// InitMemory replaces the memory contents.
func (emu *Emulator) InitMemory(init map[string]int64) {
	if emu.Verbose {
		log.Printf("emu: memory init, %v cells", len(init))
	}

	emu.Cpu.Memory.Reset(init)
}

// Reset the emulator to the start of the program.
// Memory is not modified.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Program = emu.Program
	emu.Cpu.Reset()

	return
}

// Steps returns the total opcodes executed since a reset.
func (emu *Emulator) Steps() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Pc
}

// Code returns the opcode at the program counter.
func (emu *Emulator) Code() cpu.Opcode {
	op, ok := emu.Program.Opcode(emu.Cpu.Pc)
	if !ok {
		return cpu.Opcode{}
	}

	return *op
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.Code().LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.MaxSteps > 0 && emu.Cpu.Ticks >= emu.MaxSteps && !emu.Cpu.Halted() {
		err = ErrStepLimit
		return
	}

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrPcEmpty) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks the emulator until the program completes or fails.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	if emu.Verbose {
		log.Printf("emu: done in %v steps, %v warnings", emu.Steps(), len(emu.Warnings))
	}

	return
}
