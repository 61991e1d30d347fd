package cpu

import (
	"iter"
	"maps"

	"github.com/ezrec/armsim/internal"
)

// Memory is a sparse store of integer cells keyed by name.
// Cells never written read as zero.
type Memory struct {
	Cell map[string]int64
}

// Load reads a cell.
func (m *Memory) Load(key string) int64 {
	return m.Cell[key]
}

// Store writes a cell.
func (m *Memory) Store(key string, value int64) {
	if m.Cell == nil {
		m.Cell = make(map[string]int64, 16)
	}
	m.Cell[key] = value
}

// Reset replaces the memory contents with a copy of init.
func (m *Memory) Reset(init map[string]int64) {
	m.Cell = maps.Clone(init)
}

// Len returns the number of cells that have been set.
func (m *Memory) Len() int {
	return len(m.Cell)
}

// All iterates the set cells in key order.
func (m *Memory) All() iter.Seq2[string, int64] {
	return internal.SortedSeq2(m.Cell)
}
