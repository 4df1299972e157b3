package ir

import "fmt"

// FollowingInstructionsAreUnreachable reports whether instructions after e
// within the same block body are unreachable.
//
// True for the unconditional control transfers (Unreachable, Br, BrTable,
// Return) and false for everything else, including the conditional BrIf and
// IfElse. There is no default-false arm for known kinds; an unknown kind
// panics so that adding a node kind forces this classification to be
// revisited.
func FollowingInstructionsAreUnreachable(e Expr) bool {
	switch e.(type) {
	case *Unreachable, *Br, *BrTable, *Return:
		return true

	case *Block,
		*Call,
		*CallIndirect,
		*LocalGet,
		*LocalSet,
		*LocalTee,
		*GlobalGet,
		*GlobalSet,
		*Const,
		*Binop,
		*Unop,
		*Select,
		*BrIf,
		*IfElse,
		*Drop,
		*MemorySize,
		*MemoryGrow,
		*Load,
		*Store:
		return false

	default:
		panic(fmt.Sprintf("ir: unknown expr kind %T", e))
	}
}
