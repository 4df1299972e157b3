package ir

import "fmt"

// ExprID identifies one node in a function's arena. Ids are arena-scoped:
// an ExprID is only meaningful with the Function that issued it, and is
// never reused within that function's lifetime.
type ExprID uint32

func (id ExprID) String() string {
	return fmt.Sprintf("e%d", uint32(id))
}

// BlockID is an ExprID whose arena entry is guaranteed to be a *Block.
type BlockID ExprID

func (id BlockID) String() string {
	return ExprID(id).String()
}

// LocalID identifies a local variable within one function.
type LocalID uint32

// Module-level identifiers. These are foreign keys into registries the IR
// core does not own; they are resolved by the module environment, never
// dereferenced directly by a graph node.
type (
	// FunctionID indexes the module's combined import + declared function space.
	FunctionID uint32

	// GlobalID indexes the module's combined import + declared global space.
	GlobalID uint32

	// MemoryID indexes the module's memory space.
	MemoryID uint32

	// TableID indexes the module's table space.
	TableID uint32

	// TypeID indexes the module's type section.
	TypeID uint32
)
