package ir

import "github.com/wippyai/wasm-ir/wasm"

// Expr is one node in the expression graph. Implementations form a closed
// set; every consumer that switches over node kinds must handle each one.
//
// Operand fields typed ExprID are evaluated left to right in declared field
// order. That order is authoritative: it encodes the side-effect ordering of
// the source stack machine and must be preserved by construction and by
// rewrite passes. Fields typed BlockID denote control destinations, not
// values to evaluate.
type Expr interface {
	isExpr()
}

// BlockKind tags the control role of a Block node.
type BlockKind byte

const (
	// BlockKindBlock is a forward-exit target: branching to it exits the
	// block, carrying its declared results.
	BlockKindBlock BlockKind = iota

	// BlockKindLoop is a backward-exit target: branching to it re-enters at
	// the top, carrying its declared params.
	BlockKindLoop

	// BlockKindIfElse is one of the two arms of a conditional. Exit
	// semantics match BlockKindBlock.
	BlockKindIfElse

	// BlockKindFunctionEntry is the outermost frame of a function body.
	BlockKindFunctionEntry
)

// Block is a sequence of expressions and also a control frame. Exprs is the
// body in evaluation order.
type Block struct {
	Kind    BlockKind
	Params  []wasm.ValType
	Results []wasm.ValType
	Exprs   []ExprID
}

// NewBlock constructs an empty block of the given kind and arities.
func NewBlock(kind BlockKind, params, results []wasm.ValType) *Block {
	return &Block{Kind: kind, Params: params, Results: results}
}

// BranchArity returns the number of values a branch targeting this block
// carries: the declared results for forward-exit kinds, the declared params
// for a loop, which re-enters at the top.
func (b *Block) BranchArity() int {
	if b.Kind == BlockKindLoop {
		return len(b.Params)
	}
	return len(b.Results)
}

// Call invokes a function with already-evaluated arguments.
type Call struct {
	Func FunctionID
	Args []ExprID
}

// CallIndirect invokes a function selected at runtime by a table index.
type CallIndirect struct {
	Type  TypeID
	Table TableID
	Func  ExprID
	Args  []ExprID
}

// LocalGet reads a local.
type LocalGet struct {
	Local LocalID
}

// LocalSet writes a local, yielding no value.
type LocalSet struct {
	Local LocalID
	Value ExprID
}

// LocalTee writes a local and yields the written value. It is a single node
// with both effects; it is never modeled as a LocalSet plus LocalGet pair.
type LocalTee struct {
	Local LocalID
	Value ExprID
}

// GlobalGet reads a global.
type GlobalGet struct {
	Global GlobalID
}

// GlobalSet writes a global.
type GlobalSet struct {
	Global GlobalID
	Value  ExprID
}

// Const is a constant value.
type Const struct {
	Value Value
}

// Binop applies a two-operand numeric operation.
type Binop struct {
	Op  BinaryOp
	LHS ExprID
	RHS ExprID
}

// Unop applies a one-operand numeric operation.
type Unop struct {
	Op   UnaryOp
	Expr ExprID
}

// Select picks one of two values by a condition. Both values are evaluated
// regardless of the condition.
type Select struct {
	Condition   ExprID
	Consequent  ExprID
	Alternative ExprID
}

// Unreachable traps.
type Unreachable struct{}

// Br branches unconditionally to a block, carrying Args per the target's
// branch arity.
type Br struct {
	Block BlockID
	Args  []ExprID
}

// BrIf branches to a block when the condition is non-zero.
type BrIf struct {
	Condition ExprID
	Block     BlockID
	Args      []ExprID
}

// IfElse is a structured conditional. Both arms always exist as blocks,
// even when one is semantically empty.
type IfElse struct {
	Condition   ExprID
	Consequent  BlockID
	Alternative BlockID
}

// BrTable branches to Blocks[Which], or Default when Which is out of the
// table's bounds.
type BrTable struct {
	Which   ExprID
	Blocks  []BlockID
	Default BlockID
	Args    []ExprID
}

// Drop evaluates an expression and discards its result.
type Drop struct {
	Expr ExprID
}

// Return exits the function, carrying the returned values.
type Return struct {
	Values []ExprID
}

// MemorySize yields the current size of a memory, in pages.
type MemorySize struct {
	Memory MemoryID
}

// MemoryGrow grows a memory by a number of pages.
type MemoryGrow struct {
	Memory MemoryID
	Pages  ExprID
}

// Load reads a value from memory.
type Load struct {
	Memory  MemoryID
	Kind    LoadKind
	Arg     MemArg
	Address ExprID
}

// Store writes a value to memory.
type Store struct {
	Memory  MemoryID
	Kind    StoreKind
	Arg     MemArg
	Address ExprID
	Value   ExprID
}

func (*Block) isExpr()        {}
func (*Call) isExpr()         {}
func (*CallIndirect) isExpr() {}
func (*LocalGet) isExpr()     {}
func (*LocalSet) isExpr()     {}
func (*LocalTee) isExpr()     {}
func (*GlobalGet) isExpr()    {}
func (*GlobalSet) isExpr()    {}
func (*Const) isExpr()        {}
func (*Binop) isExpr()        {}
func (*Unop) isExpr()         {}
func (*Select) isExpr()       {}
func (*Unreachable) isExpr()  {}
func (*Br) isExpr()           {}
func (*BrIf) isExpr()         {}
func (*IfElse) isExpr()       {}
func (*BrTable) isExpr()      {}
func (*Drop) isExpr()         {}
func (*Return) isExpr()       {}
func (*MemorySize) isExpr()   {}
func (*MemoryGrow) isExpr()   {}
func (*Load) isExpr()         {}
func (*Store) isExpr()        {}
