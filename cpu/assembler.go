// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"slices"
	"strings"
)

// Assembler is a single pass assembler for the interpreter.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	Label map[string]int // Map of jump labels to opcode indexes.
}

// parseLabel records the label declared by a line, if any.
// A repeated label takes the index of its last declaration.
func (asm *Assembler) parseLabel(op *Opcode) {
	label, _, ok := strings.Cut(op.Text, ":")
	if !ok {
		return
	}

	label = strings.TrimSpace(label)
	if asm.Verbose {
		if prior, dup := asm.Label[label]; dup {
			log.Printf("asm: %v: label %v redefined (was %v)", op.LineNo, label, prior)
		}
	}
	asm.Label[label] = op.Index
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int

	asm.Opcode = asm.Opcode[:0]
	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)

	for scanner.Scan() {
		lineno += 1

		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, line)
		}

		op := MakeOpcode(len(asm.Opcode), line)
		op.LineNo = lineno
		asm.Opcode = append(asm.Opcode, op)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	for n := range asm.Opcode {
		asm.parseLabel(&asm.Opcode[n])
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
		Label:   maps.Clone(asm.Label),
	}

	return
}
