package emulator

import (
	"io"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// LoadMemory seeds memory from a Starlark initializer script.
//
// Every global integer becomes the memory cell of the same name. A global
// dict named 'memory' adds cells whose keys are not identifiers, such as
// numeric addresses. Globals starting with '_', and non-integer globals,
// are ignored.
//
//	num1 = 5
//	num2 = num1 + 2
//	memory = {"0": 36}
func (emu *Emulator) LoadMemory(name string, src io.Reader) (err error) {
	defer func() {
		if err != nil {
			err = &ErrMemoryInit{Name: name, Err: err}
		}
	}()

	thread := starlark.Thread{Name: name}
	opts := syntax.FileOptions{}
	dict, err := starlark.ExecFileOptions(&opts, &thread, name, src, nil)
	if err != nil {
		return
	}

	init := make(map[string]int64, len(dict))
	var cells *starlark.Dict
	for key, value := range dict {
		if strings.HasPrefix(key, "_") {
			continue
		}
		switch st := value.(type) {
		case starlark.Int:
			init[key], err = memoryValue(key, st)
			if err != nil {
				return
			}
		case *starlark.Dict:
			if key == "memory" {
				cells = st
			}
		}
	}

	if cells != nil {
		for _, item := range cells.Items() {
			var key string
			switch st := item[0].(type) {
			case starlark.String:
				key = st.GoString()
			case starlark.Int:
				key = st.String()
			default:
				err = ErrMemoryValue(item[0].String())
				return
			}
			st_int, ok := item[1].(starlark.Int)
			if !ok {
				err = ErrMemoryValue(key)
				return
			}
			init[key], err = memoryValue(key, st_int)
			if err != nil {
				return
			}
		}
	}

	emu.InitMemory(init)

	return
}

// memoryValue converts a Starlark integer to a memory cell value.
func memoryValue(key string, st starlark.Int) (value int64, err error) {
	value, ok := st.Int64()
	if !ok {
		err = ErrMemoryValue(key)
		return
	}

	return
}
