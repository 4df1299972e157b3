package ir

import (
	"fmt"
	"strings"
)

// Dot renders a function's graph in Graphviz DOT form. Each node is named
// expr_{index}; solid edges follow operand references in evaluation order
// and dashed edges mark branch targets, which are control destinations
// rather than operands.
func Dot(f *Function) string {
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box];\n")

	Walk(f, ExprID(f.Entry), VisitorFunc(func(id ExprID, e Expr) {
		fmt.Fprintf(&sb, "  expr_%d [label=%q];\n", uint32(id), dotLabel(e))
		for _, op := range operandIDs(e) {
			fmt.Fprintf(&sb, "  expr_%d -> expr_%d;\n", uint32(id), uint32(op))
		}
		for _, t := range branchTargets(e) {
			fmt.Fprintf(&sb, "  expr_%d -> expr_%d [style=dashed];\n", uint32(id), uint32(t))
		}
	}))

	sb.WriteString("}\n")
	return sb.String()
}

func dotLabel(e Expr) string {
	switch e := e.(type) {
	case *Block:
		return dotBlockName(e)
	case *Call:
		return fmt.Sprintf("call %d", e.Func)
	case *CallIndirect:
		return "call_indirect"
	case *LocalGet:
		return fmt.Sprintf("local.get %d", e.Local)
	case *LocalSet:
		return fmt.Sprintf("local.set %d", e.Local)
	case *LocalTee:
		return fmt.Sprintf("local.tee %d", e.Local)
	case *GlobalGet:
		return fmt.Sprintf("global.get %d", e.Global)
	case *GlobalSet:
		return fmt.Sprintf("global.set %d", e.Global)
	case *Const:
		return fmt.Sprintf("const %s", e.Value)
	case *Binop:
		return e.Op.String()
	case *Unop:
		return e.Op.String()
	case *Select:
		return "select"
	case *Unreachable:
		return "unreachable"
	case *Br:
		return "br"
	case *BrIf:
		return "br_if"
	case *IfElse:
		return "if_else"
	case *BrTable:
		return "br_table"
	case *Drop:
		return "drop"
	case *Return:
		return "return"
	case *MemorySize:
		return "memory.size"
	case *MemoryGrow:
		return "memory.grow"
	case *Load:
		return e.Kind.String()
	case *Store:
		return e.Kind.String()
	default:
		panic(fmt.Sprintf("ir: dot label of unknown expr kind %T", e))
	}
}

// operandIDs lists a node's operand references in evaluation order,
// mirroring Walk's descent.
func operandIDs(e Expr) []ExprID {
	switch e := e.(type) {
	case *Block:
		return e.Exprs
	case *Call:
		return e.Args
	case *CallIndirect:
		return append([]ExprID{e.Func}, e.Args...)
	case *LocalSet:
		return []ExprID{e.Value}
	case *LocalTee:
		return []ExprID{e.Value}
	case *GlobalSet:
		return []ExprID{e.Value}
	case *Binop:
		return []ExprID{e.LHS, e.RHS}
	case *Unop:
		return []ExprID{e.Expr}
	case *Select:
		return []ExprID{e.Condition, e.Consequent, e.Alternative}
	case *Br:
		return e.Args
	case *BrIf:
		return append([]ExprID{e.Condition}, e.Args...)
	case *IfElse:
		return []ExprID{e.Condition, ExprID(e.Consequent), ExprID(e.Alternative)}
	case *BrTable:
		return append([]ExprID{e.Which}, e.Args...)
	case *Drop:
		return []ExprID{e.Expr}
	case *Return:
		return e.Values
	case *MemoryGrow:
		return []ExprID{e.Pages}
	case *Load:
		return []ExprID{e.Address}
	case *Store:
		return []ExprID{e.Address, e.Value}
	default:
		return nil
	}
}

// branchTargets lists a node's control destinations.
func branchTargets(e Expr) []ExprID {
	switch e := e.(type) {
	case *Br:
		return []ExprID{ExprID(e.Block)}
	case *BrIf:
		return []ExprID{ExprID(e.Block)}
	case *BrTable:
		ids := make([]ExprID, 0, len(e.Blocks)+1)
		for _, b := range e.Blocks {
			ids = append(ids, ExprID(b))
		}
		return append(ids, ExprID(e.Default))
	default:
		return nil
	}
}

func dotBlockName(b *Block) string {
	switch b.Kind {
	case BlockKindLoop:
		return "loop"
	case BlockKindIfElse:
		return "if_else"
	case BlockKindFunctionEntry:
		return "entry"
	default:
		return "block"
	}
}
