package cpu

// Program is an assembled instruction sequence and its jump labels.
type Program struct {
	Opcodes []Opcode
	Label   map[string]int // Map of jump labels to opcode indexes.
}

// Len returns the number of opcodes, label lines included.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Opcodes)
}

// Opcode returns the opcode at index, if present.
func (prog *Program) Opcode(index int) (op *Opcode, ok bool) {
	if index < 0 || index >= prog.Len() {
		return
	}

	return &prog.Opcodes[index], true
}

// Target resolves a jump label to its opcode index.
func (prog *Program) Target(label string) (index int, err error) {
	if prog == nil {
		err = ErrLabelMissing(label)
		return
	}

	index, ok := prog.Label[label]
	if !ok {
		err = ErrLabelMissing(label)
		return
	}

	return
}
