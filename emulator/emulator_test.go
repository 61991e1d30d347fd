package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/armsim/cpu"
)

var sumProduct = []string{
	"ldr x0, =num1",
	"ldr x1, [x0]",
	"ldr x0, =num2",
	"ldr x2, [x0]",
	"add x3, x1, x2",
	"ldr x0, =multiplier",
	"ldr x4, [x0]",
	"mul x5, x3, x4",
	"ldr x0, =result",
	"str x5, [x0]",
}

func reg(t *testing.T, emu *Emulator, name string) cpu.Value {
	value, err := emu.Register.Get(name)
	assert.NoError(t, err)
	return value
}

func doRun(emu *Emulator, program []string, t *testing.T) (err error) {
	assert := assert.New(t)

	err = emu.LoadString(strings.Join(program, "\n"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Run()
	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(0, emu.MaxSteps)

	// An empty program is done immediately.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorSumProduct(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.InitMemory(map[string]int64{
		"num1":       5,
		"num2":       7,
		"multiplier": 3,
		"result":     0,
	})

	err := doRun(emu, sumProduct, t)
	assert.NoError(err)

	assert.Equal(cpu.Integer(12), reg(t, emu, "x3"))
	assert.Equal(cpu.Integer(36), reg(t, emu, "x5"))
	assert.Equal(cpu.Symbol("result"), reg(t, emu, "x0"))

	assert.Equal(map[string]int64{
		"num1":       5,
		"num2":       7,
		"multiplier": 3,
		"result":     36,
	}, emu.Memory.Cell)

	assert.Equal(len(sumProduct), emu.Steps())
	assert.Empty(emu.Warnings)
	assert.True(emu.Halted())
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"",
		"mov x0, #1",
		"",
		"b end",
		"mov x0, #2",
		"end:",
	}

	emu := NewEmulator()
	assert.NoError(emu.LoadString(strings.Join(program, "\n")))

	lines := []int{2, 4, 6}
	for _, lineno := range lines {
		assert.Equal(lineno, emu.LineNo())
		assert.Equal(program[lineno-1], emu.Code().Text)
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(0, emu.LineNo())
	assert.Equal(cpu.Integer(1), reg(t, emu, "x0"))
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.InitMemory(map[string]int64{"num1": 5, "num2": 7, "multiplier": 3})
	assert.NoError(doRun(emu, sumProduct, t))
	assert.Equal(int64(36), emu.Memory.Load("result"))

	assert.NoError(emu.Reset())
	assert.Equal(0, emu.Pc())
	assert.Equal(0, emu.Steps())
	assert.Equal(cpu.Integer(0), reg(t, emu, "x5"))
	// Memory survives a reset, only InitMemory replaces it.
	assert.Equal(int64(36), emu.Memory.Load("result"))

	emu.InitMemory(map[string]int64{"num1": 1, "num2": 2, "multiplier": 10})
	assert.NoError(emu.Run())
	assert.Equal(int64(30), emu.Memory.Load("result"))
	assert.Equal(4, emu.Memory.Len())
}

func TestEmulatorUndefinedLabel(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"mov x0, #1",
		"b missing",
		"mov x0, #2",
	}

	emu := NewEmulator()
	err := doRun(emu, program, t)

	var label cpu.ErrLabelMissing
	assert.ErrorAs(err, &label)
	assert.Equal(cpu.ErrLabelMissing("missing"), label)

	var rt *ErrRuntime
	if assert.ErrorAs(err, &rt) {
		assert.Equal(2, rt.LineNo)
	}

	var step *cpu.ErrStep
	if assert.ErrorAs(err, &step) {
		assert.Equal(1, step.Index)
		assert.Equal("b missing", step.Line)
	}

	assert.Equal(cpu.Integer(1), reg(t, emu, "x0"))
	assert.False(emu.Halted())
}

func TestEmulatorStepLimit(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"mov x1, #1",
		"loop:",
		"add x0, x0, x1",
		"b loop",
	}

	emu := NewEmulator()
	emu.MaxSteps = 31
	err := doRun(emu, program, t)

	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(31, emu.Steps())
	// 1 mov, then 10 passes of label, add and branch.
	assert.Equal(cpu.Integer(10), reg(t, emu, "x0"))
}

func TestEmulatorStepLimitExact(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.InitMemory(map[string]int64{"num1": 5, "num2": 7, "multiplier": 3})
	emu.MaxSteps = len(sumProduct)

	assert.NoError(doRun(emu, sumProduct, t))
	assert.Equal(int64(36), emu.Memory.Load("result"))
}

func TestEmulatorWarnings(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"mov x0, #4",
		"sub x0, x0, x0",
		"mul x0, x0, x0",
	}

	emu := NewEmulator()
	assert.NoError(doRun(emu, program, t))
	assert.Equal(cpu.Integer(16), reg(t, emu, "x0"))

	if assert.Equal(1, len(emu.Warnings)) {
		assert.ErrorIs(emu.Warnings[0], cpu.ErrInstructionUnknown)
		assert.Contains(emu.Warnings[0].Error(), "sub")
	}
}

func TestEmulatorTypeMismatch(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"ldr x0, =num1",
		"ldr x1, =num2",
		"add x2, x0, x1",
	}

	emu := NewEmulator()
	emu.InitMemory(map[string]int64{"num1": 5, "num2": 7})
	err := doRun(emu, program, t)

	assert.ErrorIs(err, cpu.ErrTypeMismatch)
	assert.True(errors.Is(err, cpu.ErrTypeMismatch))

	var rt *ErrRuntime
	if assert.ErrorAs(err, &rt) {
		assert.Equal(3, rt.LineNo)
	}
}

func TestEmulatorDump(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.InitMemory(map[string]int64{
		"num1":       5,
		"num2":       7,
		"multiplier": 3,
		"result":     0,
	})
	assert.NoError(doRun(emu, sumProduct, t))

	regs := &bytes.Buffer{}
	assert.NoError(emu.WriteRegisters(regs))
	lines := strings.Split(strings.TrimSuffix(regs.String(), "\n"), "\n")
	if assert.Equal(1+cpu.REGISTER_COUNT, len(lines)) {
		assert.Equal("Registers:", lines[0])
		assert.Equal("x0: result", lines[1])
		assert.Equal("x1: 5", lines[2])
		assert.Equal("x3: 12", lines[4])
		assert.Equal("x5: 36", lines[6])
		assert.Equal("x30: 0", lines[31])
	}

	mem := &bytes.Buffer{}
	assert.NoError(emu.WriteMemory(mem))
	assert.Equal(strings.Join([]string{
		"Memory:",
		"multiplier: 3",
		"num1: 5",
		"num2: 7",
		"result: 36",
		"",
	}, "\n"), mem.String())
}
