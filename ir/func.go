package ir

import "github.com/wippyai/wasm-ir/wasm"

// Function is one fully self-contained expression graph: its arena, its
// local table, and the entry block holding the body. No node or id is ever
// shared across functions.
type Function struct {
	Name    string
	Arena   Arena
	Locals  Locals
	Params  []wasm.ValType
	Results []wasm.ValType
	Entry   BlockID
}

// NewFunction creates a function with an empty entry block and one local
// registered per parameter, in signature order.
func NewFunction(sig wasm.FuncType) *Function {
	f := &Function{
		Params:  sig.Params,
		Results: sig.Results,
	}
	for _, p := range sig.Params {
		f.Locals.Add(p)
	}
	f.Entry = f.Arena.AllocBlock(NewBlock(BlockKindFunctionEntry, nil, sig.Results))
	return f
}

// EntryBlock returns the function's entry block node.
func (f *Function) EntryBlock() *Block {
	return f.Arena.Block(f.Entry)
}
