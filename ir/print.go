package ir

import (
	"fmt"
	"strings"
)

// Print renders a function's graph as indented text, one node per line,
// children indented under their parent in evaluation order.
//
// Block nodes render as "block", loops as "loop". Operator names render by
// their case name (I32Add). Branch nodes carry a trailing annotation naming
// the target block's numeric identity: " (;e2;)" for br and br_if,
// " (;default:e4  [e2 e3];)" for br_table.
func Print(f *Function) string {
	var sb strings.Builder
	printExpr(&sb, f, ExprID(f.Entry), 0)
	return sb.String()
}

func printExpr(sb *strings.Builder, f *Function, id ExprID, depth int) {
	indent := strings.Repeat("  ", depth)
	e := f.Arena.Get(id)

	line := func(format string, args ...any) {
		sb.WriteString(indent)
		fmt.Fprintf(sb, format, args...)
		sb.WriteByte('\n')
	}
	children := func(ids ...ExprID) {
		for _, c := range ids {
			printExpr(sb, f, c, depth+1)
		}
	}

	switch e := e.(type) {
	case *Block:
		line("%s", displayBlockName(e))
		children(e.Exprs...)

	case *Call:
		line("call %d", e.Func)
		children(e.Args...)

	case *CallIndirect:
		line("call_indirect (type %d)", e.Type)
		children(e.Func)
		children(e.Args...)

	case *LocalGet:
		line("local.get %d", e.Local)

	case *LocalSet:
		line("local.set %d", e.Local)
		children(e.Value)

	case *LocalTee:
		line("local.tee %d", e.Local)
		children(e.Value)

	case *GlobalGet:
		line("global.get %d", e.Global)

	case *GlobalSet:
		line("global.set %d", e.Global)
		children(e.Value)

	case *Const:
		line("const %s", e.Value)

	case *Binop:
		line("%s", e.Op)
		children(e.LHS, e.RHS)

	case *Unop:
		line("%s", e.Op)
		children(e.Expr)

	case *Select:
		line("select")
		children(e.Condition, e.Consequent, e.Alternative)

	case *Unreachable:
		line("unreachable")

	case *Br:
		line("br%s", brAnnotation(e.Block))
		children(e.Args...)

	case *BrIf:
		line("br_if%s", brAnnotation(e.Block))
		children(e.Condition)
		children(e.Args...)

	case *IfElse:
		line("if_else")
		children(e.Condition, ExprID(e.Consequent), ExprID(e.Alternative))

	case *BrTable:
		line("br_table%s", brTableAnnotation(e))
		children(e.Which)
		children(e.Args...)

	case *Drop:
		line("drop")
		children(e.Expr)

	case *Return:
		line("return")
		children(e.Values...)

	case *MemorySize:
		line("memory.size %d", e.Memory)

	case *MemoryGrow:
		line("memory.grow %d", e.Memory)
		children(e.Pages)

	case *Load:
		line("%s offset=%d align=%d", e.Kind, e.Arg.Offset, e.Arg.Align)
		children(e.Address)

	case *Store:
		line("%s offset=%d align=%d", e.Kind, e.Arg.Offset, e.Arg.Align)
		children(e.Address, e.Value)

	default:
		panic(fmt.Sprintf("ir: print of unknown expr kind %T", e))
	}
}

func displayBlockName(b *Block) string {
	if b.Kind == BlockKindLoop {
		return "loop"
	}
	return "block"
}

func brAnnotation(target BlockID) string {
	return fmt.Sprintf(" (;e%d;)", uint32(target))
}

func brTableAnnotation(e *BrTable) string {
	blocks := make([]string, len(e.Blocks))
	for i, b := range e.Blocks {
		blocks[i] = fmt.Sprintf("e%d", uint32(b))
	}
	return fmt.Sprintf(" (;default:e%d  [%s];)", uint32(e.Default), strings.Join(blocks, " "))
}
