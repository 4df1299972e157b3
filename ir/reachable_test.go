package ir

import "testing"

func TestFollowingInstructionsAreUnreachable(t *testing.T) {
	// One instance of every node kind, with the expected classification.
	// Unconditional control transfers make their successors dead; nothing
	// else does, including the conditional br_if and if/else.
	cases := []struct {
		expr Expr
		want bool
	}{
		{&Unreachable{}, true},
		{&Br{}, true},
		{&BrTable{}, true},
		{&Return{}, true},

		{&Block{}, false},
		{&Call{}, false},
		{&CallIndirect{}, false},
		{&LocalGet{}, false},
		{&LocalSet{}, false},
		{&LocalTee{}, false},
		{&GlobalGet{}, false},
		{&GlobalSet{}, false},
		{&Const{}, false},
		{&Binop{}, false},
		{&Unop{}, false},
		{&Select{}, false},
		{&BrIf{}, false},
		{&IfElse{}, false},
		{&Drop{}, false},
		{&MemorySize{}, false},
		{&MemoryGrow{}, false},
		{&Load{}, false},
		{&Store{}, false},
	}

	for _, tc := range cases {
		if got := FollowingInstructionsAreUnreachable(tc.expr); got != tc.want {
			t.Errorf("%T: got %v, want %v", tc.expr, got, tc.want)
		}
	}
}
