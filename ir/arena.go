package ir

import "fmt"

// Arena is the append-only node store of one function. Nodes are addressed
// by the ExprID returned at allocation; an id stays valid for the arena's
// whole lifetime. There is no deletion.
type Arena struct {
	exprs []Expr
}

// Alloc appends a node and returns its fresh identity.
func (a *Arena) Alloc(e Expr) ExprID {
	id := ExprID(len(a.exprs))
	a.exprs = append(a.exprs, e)
	return id
}

// AllocBlock appends a block node and returns its identity as a BlockID.
func (a *Arena) AllocBlock(b *Block) BlockID {
	return BlockID(a.Alloc(b))
}

// Get resolves an ExprID. A foreign id is a programming error and panics.
func (a *Arena) Get(id ExprID) Expr {
	if int(id) >= len(a.exprs) {
		panic(fmt.Sprintf("ir: expr id %d out of range (%d nodes)", id, len(a.exprs)))
	}
	return a.exprs[id]
}

// Block resolves a BlockID to its *Block. Panics if the id is foreign or
// the referenced node is not a block, since a BlockID guarantees its entry
// is a block variant.
func (a *Arena) Block(id BlockID) *Block {
	b, ok := a.Get(ExprID(id)).(*Block)
	if !ok {
		panic(fmt.Sprintf("ir: expr id %d is not a block", id))
	}
	return b
}

// Replace overwrites a node's payload in place, preserving its identity.
// Every other node referencing the id observes the new payload; no
// reference is invalidated.
func (a *Arena) Replace(id ExprID, e Expr) {
	if int(id) >= len(a.exprs) {
		panic(fmt.Sprintf("ir: expr id %d out of range (%d nodes)", id, len(a.exprs)))
	}
	a.exprs[id] = e
}

// Len returns the number of allocated nodes.
func (a *Arena) Len() int { return len(a.exprs) }
