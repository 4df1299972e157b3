package ir

import (
	"fmt"

	"github.com/wippyai/wasm-ir/wasm"
)

// Local is one local variable or parameter of a function. The type is fixed
// at creation; Name is a debugging aid and freely mutable.
type Local struct {
	Name string
	id   LocalID
	typ  wasm.ValType
}

// ID returns the local's identity within its function.
func (l *Local) ID() LocalID { return l.id }

// Type returns the local's value type.
func (l *Local) Type() wasm.ValType { return l.typ }

// Locals is a function's append-only local variable table. The zero value
// is ready to use.
type Locals struct {
	locals []Local
}

// Add registers a new local of the given type and returns its id.
func (ls *Locals) Add(typ wasm.ValType) LocalID {
	id := LocalID(len(ls.locals))
	ls.locals = append(ls.locals, Local{id: id, typ: typ})
	return id
}

// Get resolves a LocalID. Passing an id foreign to this function is a
// programming error and panics.
func (ls *Locals) Get(id LocalID) *Local {
	if int(id) >= len(ls.locals) {
		panic(fmt.Sprintf("ir: local id %d out of range (%d locals)", id, len(ls.locals)))
	}
	return &ls.locals[id]
}

// Len returns the number of registered locals.
func (ls *Locals) Len() int { return len(ls.locals) }
