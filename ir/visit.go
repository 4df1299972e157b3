package ir

import "fmt"

// Visitor reacts to each node the walk reaches. Implementations ignore the
// kinds they do not care about by switching on the concrete type.
type Visitor interface {
	VisitExpr(id ExprID, e Expr)
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(id ExprID, e Expr)

func (f VisitorFunc) VisitExpr(id ExprID, e Expr) { f(id, e) }

// Walk traverses the graph from start, dispatching each node to v and then
// recursing into the node's operand fields in declared field order.
//
// Branch-target BlockIDs (Br.Block, BrIf.Block, BrTable.Blocks and
// BrTable.Default) are not descended into: the target block is visited
// once, at its own lexical position in its parent's body, and re-walking it
// from every branch site would visit it repeatedly and diverge on loop
// back-edges. IfElse arms are that lexical position for their blocks, so
// they are descended into. For a well-formed body reachable from the
// function entry, every reachable node is visited exactly once, in
// evaluation order.
func Walk(f *Function, start ExprID, v Visitor) {
	e := f.Arena.Get(start)
	v.VisitExpr(start, e)

	switch e := e.(type) {
	case *Block:
		for _, child := range e.Exprs {
			Walk(f, child, v)
		}

	case *Call:
		for _, arg := range e.Args {
			Walk(f, arg, v)
		}

	case *CallIndirect:
		Walk(f, e.Func, v)
		for _, arg := range e.Args {
			Walk(f, arg, v)
		}

	case *LocalGet:
		// leaf

	case *LocalSet:
		Walk(f, e.Value, v)

	case *LocalTee:
		Walk(f, e.Value, v)

	case *GlobalGet:
		// leaf

	case *GlobalSet:
		Walk(f, e.Value, v)

	case *Const:
		// leaf

	case *Binop:
		Walk(f, e.LHS, v)
		Walk(f, e.RHS, v)

	case *Unop:
		Walk(f, e.Expr, v)

	case *Select:
		Walk(f, e.Condition, v)
		Walk(f, e.Consequent, v)
		Walk(f, e.Alternative, v)

	case *Unreachable:
		// leaf

	case *Br:
		// e.Block is a control destination, not descended
		for _, arg := range e.Args {
			Walk(f, arg, v)
		}

	case *BrIf:
		Walk(f, e.Condition, v)
		for _, arg := range e.Args {
			Walk(f, arg, v)
		}

	case *IfElse:
		Walk(f, e.Condition, v)
		Walk(f, ExprID(e.Consequent), v)
		Walk(f, ExprID(e.Alternative), v)

	case *BrTable:
		Walk(f, e.Which, v)
		// e.Blocks and e.Default are control destinations, not descended
		for _, arg := range e.Args {
			Walk(f, arg, v)
		}

	case *Drop:
		Walk(f, e.Expr, v)

	case *Return:
		for _, val := range e.Values {
			Walk(f, val, v)
		}

	case *MemorySize:
		// leaf

	case *MemoryGrow:
		Walk(f, e.Pages, v)

	case *Load:
		Walk(f, e.Address, v)

	case *Store:
		Walk(f, e.Address, v)
		Walk(f, e.Value, v)

	default:
		panic(fmt.Sprintf("ir: walk of unknown expr kind %T", e))
	}
}
