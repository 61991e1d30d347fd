package emulator

import (
	"io"
	"strconv"

	"github.com/ezrec/armsim/translate"
)

// WriteRegisters writes the register listing.
func (emu *Emulator) WriteRegisters(w io.Writer) (err error) {
	_, err = translate.Fprintf(w, "Registers:\n")
	if err != nil {
		return
	}

	for name, value := range emu.Cpu.Register.All() {
		_, err = translate.Fprintf(w, "%v: %v\n", name, value.String())
		if err != nil {
			return
		}
	}

	return
}

// WriteMemory writes the memory listing, in key order.
func (emu *Emulator) WriteMemory(w io.Writer) (err error) {
	_, err = translate.Fprintf(w, "Memory:\n")
	if err != nil {
		return
	}

	for key, value := range emu.Cpu.Memory.All() {
		_, err = translate.Fprintf(w, "%v: %v\n", key, strconv.FormatInt(value, 10))
		if err != nil {
			return
		}
	}

	return
}
