package cpu

import (
	"strings"
)

// Mnemonic is an instruction name.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	OP_LDR = Mnemonic(0) // ldr
	OP_STR = Mnemonic(1) // str
	OP_ADD = Mnemonic(2) // add
	OP_MUL = Mnemonic(3) // mul
	OP_MOV = Mnemonic(4) // mov
	OP_SVC = Mnemonic(5) // svc
	OP_B   = Mnemonic(6) // b
)

// mnemonicMap maps instruction names to mnemonics.
var mnemonicMap = map[string]Mnemonic{
	"ldr": OP_LDR,
	"str": OP_STR,
	"add": OP_ADD,
	"mul": OP_MUL,
	"mov": OP_MOV,
	"svc": OP_SVC,
	"b":   OP_B,
}

// Opcode is a single line of the program.
type Opcode struct {
	LineNo int      // Source line number, 1-based.
	Index  int      // Index in the program.
	Text   string   // Trimmed source text.
	Words  []string // Whitespace separated words, trailing commas removed.
}

// MakeOpcode splits a trimmed line of text into an opcode.
func MakeOpcode(index int, text string) Opcode {
	words := strings.Fields(text)
	for n, word := range words {
		words[n] = strings.TrimSuffix(word, ",")
	}

	return Opcode{
		Index: index,
		Text:  text,
		Words: words,
	}
}

// IsLabel returns true if the line only declares a label.
func (op *Opcode) IsLabel() bool {
	return strings.HasSuffix(op.Text, ":")
}

// Mnemonic decodes the instruction name.
func (op *Opcode) Mnemonic() (mnemonic Mnemonic, ok bool) {
	if len(op.Words) == 0 {
		return
	}

	mnemonic, ok = mnemonicMap[op.Words[0]]
	return
}

// Args returns the operand words.
func (op *Opcode) Args() []string {
	if len(op.Words) == 0 {
		return nil
	}
	return op.Words[1:]
}

// String returns the source text.
func (op Opcode) String() string {
	return op.Text
}
