// Package cpu implements the interpreter core for a small ARM64-flavoured
// assembly language.
//
// The CPU consists of a program counter (Pc), thirty-one 64-bit general
// purpose registers (x0-x30) and a sparse, string keyed memory. A register
// holds either an integer or a symbolic address: the name of a memory cell
// loaded with the `ldr reg, =name` form, which is then dereferenced with
// `ldr reg, [reg]`.
//
// The assembler splits program text into one opcode per non-empty line and
// records jump labels. Label lines keep their slot in the program and execute
// as no-ops.
package cpu
