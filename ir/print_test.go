package ir

import (
	"strings"
	"testing"

	"github.com/wippyai/wasm-ir/wasm"
)

func TestPrintBinopName(t *testing.T) {
	f := NewFunction(wasm.FuncType{})
	lhs := f.Arena.Alloc(&Const{Value: I32Value(1)})
	rhs := f.Arena.Alloc(&Const{Value: I32Value(2)})
	add := f.Arena.Alloc(&Binop{Op: I32Add, LHS: lhs, RHS: rhs})
	f.EntryBlock().Exprs = append(f.EntryBlock().Exprs, add)

	out := Print(f)
	if !strings.Contains(out, "I32Add") {
		t.Errorf("output missing operator case name:\n%s", out)
	}
}

func TestPrintBrAnnotation(t *testing.T) {
	f := NewFunction(wasm.FuncType{})
	f.Arena.Alloc(&Const{Value: I32Value(0)}) // occupies id 1
	target := f.Arena.AllocBlock(NewBlock(BlockKindBlock, nil, nil))
	if uint32(target) != 2 {
		t.Fatalf("target id: got %d, want 2", target)
	}
	br := f.Arena.Alloc(&Br{Block: target})
	f.Arena.Block(target).Exprs = append(f.Arena.Block(target).Exprs, br)
	f.EntryBlock().Exprs = append(f.EntryBlock().Exprs, ExprID(target))

	out := Print(f)
	if !strings.Contains(out, "br (;e2;)") {
		t.Errorf("missing br annotation:\n%s", out)
	}
}

func TestPrintBrIfAnnotation(t *testing.T) {
	f := NewFunction(wasm.FuncType{})
	target := f.Arena.AllocBlock(NewBlock(BlockKindBlock, nil, nil))
	cond := f.Arena.Alloc(&Const{Value: I32Value(1)})
	brIf := f.Arena.Alloc(&BrIf{Condition: cond, Block: target})
	f.Arena.Block(target).Exprs = append(f.Arena.Block(target).Exprs, brIf)
	f.EntryBlock().Exprs = append(f.EntryBlock().Exprs, ExprID(target))

	out := Print(f)
	if !strings.Contains(out, " (;e1;)") {
		t.Errorf("missing br_if annotation:\n%s", out)
	}
}

func TestPrintBrTableAnnotation(t *testing.T) {
	f := NewFunction(wasm.FuncType{})
	f.Arena.Alloc(&Const{Value: I32Value(0)}) // occupies id 1
	b2 := f.Arena.AllocBlock(NewBlock(BlockKindBlock, nil, nil))
	b3 := f.Arena.AllocBlock(NewBlock(BlockKindBlock, nil, nil))
	b4 := f.Arena.AllocBlock(NewBlock(BlockKindBlock, nil, nil))
	if uint32(b2) != 2 || uint32(b3) != 3 || uint32(b4) != 4 {
		t.Fatalf("unexpected block ids: %d %d %d", b2, b3, b4)
	}
	which := f.Arena.Alloc(&Const{Value: I32Value(0)})
	bt := f.Arena.Alloc(&BrTable{Which: which, Blocks: []BlockID{b2, b3}, Default: b4})
	f.Arena.Block(b2).Exprs = append(f.Arena.Block(b2).Exprs, bt)

	b3Block := f.Arena.Block(b3)
	b3Block.Exprs = append(b3Block.Exprs, ExprID(b2))
	b4Block := f.Arena.Block(b4)
	b4Block.Exprs = append(b4Block.Exprs, ExprID(b3))
	f.EntryBlock().Exprs = append(f.EntryBlock().Exprs, ExprID(b4))

	out := Print(f)
	if !strings.Contains(out, "br_table (;default:e4  [e2 e3];)") {
		t.Errorf("missing br_table annotation:\n%s", out)
	}
}

func TestPrintBlockKeywords(t *testing.T) {
	f := NewFunction(wasm.FuncType{})
	block := f.Arena.AllocBlock(NewBlock(BlockKindBlock, nil, nil))
	loop := f.Arena.AllocBlock(NewBlock(BlockKindLoop, nil, nil))
	f.EntryBlock().Exprs = append(f.EntryBlock().Exprs, ExprID(block), ExprID(loop))

	out := Print(f)
	if !strings.Contains(out, "block") {
		t.Errorf("missing block keyword:\n%s", out)
	}
	if !strings.Contains(out, "loop") {
		t.Errorf("missing loop keyword:\n%s", out)
	}
}

func TestDotOutput(t *testing.T) {
	f := NewFunction(wasm.FuncType{})
	loop := f.Arena.AllocBlock(NewBlock(BlockKindLoop, nil, nil))
	br := f.Arena.Alloc(&Br{Block: loop})
	f.Arena.Block(loop).Exprs = append(f.Arena.Block(loop).Exprs, br)
	f.EntryBlock().Exprs = append(f.EntryBlock().Exprs, ExprID(loop))

	out := Dot(f)
	for _, want := range []string{
		"digraph {",
		`expr_0 [label="entry"]`,
		`expr_1 [label="loop"]`,
		`expr_2 [label="br"]`,
		"expr_2 -> expr_1 [style=dashed];",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestDotBlockKinds(t *testing.T) {
	f := NewFunction(wasm.FuncType{})
	cond := f.Arena.Alloc(&Const{Value: I32Value(1)})
	cons := f.Arena.AllocBlock(NewBlock(BlockKindIfElse, nil, nil))
	alt := f.Arena.AllocBlock(NewBlock(BlockKindIfElse, nil, nil))
	ifElse := f.Arena.Alloc(&IfElse{Condition: cond, Consequent: cons, Alternative: alt})
	f.EntryBlock().Exprs = append(f.EntryBlock().Exprs, ifElse)

	out := Dot(f)
	if !strings.Contains(out, `[label="if_else"]`) {
		t.Errorf("missing if_else label:\n%s", out)
	}
}
