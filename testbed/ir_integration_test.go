package testbed

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/wasm-ir/ir"
	"github.com/wippyai/wasm-ir/wasm"
)

// Hand-assembled modules used below. wazero performs full validation, so a
// successful instantiation proves the inputs the IR builder sees are
// well-formed.

func section(id byte, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte(id)
	wasm.WriteLEB128u(&buf, uint32(len(payload)))
	buf.Write(payload)
	return buf.Bytes()
}

func assemble(sections ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00})
	for _, s := range sections {
		buf.Write(s)
	}
	return buf.Bytes()
}

// answerModule is (module (func (export "answer") (result i32) i32.const 42)).
func answerModule() []byte {
	return assemble(
		section(wasm.SectionType, []byte{0x01, 0x60, 0x00, 0x01, 0x7F}),
		section(wasm.SectionFunction, []byte{0x01, 0x00}),
		section(wasm.SectionExport, []byte{0x01, 0x06, 'a', 'n', 's', 'w', 'e', 'r', 0x00, 0x00}),
		section(wasm.SectionCode, []byte{0x01, 0x04, 0x00, 0x41, 0x2A, 0x0B}),
	)
}

// sumModule exports "sum", summing 1..n with a block/loop/br_if shape:
//
//	(func (param i32) (result i32) (local i32)
//	  block
//	    loop
//	      local.get 0
//	      i32.eqz
//	      br_if 1
//	      local.get 1
//	      local.get 0
//	      i32.add
//	      local.set 1
//	      local.get 0
//	      i32.const 1
//	      i32.sub
//	      local.set 0
//	      br 0
//	    end
//	  end
//	  local.get 1)
func sumModule() []byte {
	body := []byte{
		0x01, 0x01, 0x7F, // 1 local group: 1 x i32
		0x02, 0x40, // block
		0x03, 0x40, // loop
		0x20, 0x00, // local.get 0
		0x45,       // i32.eqz
		0x0D, 0x01, // br_if 1
		0x20, 0x01, // local.get 1
		0x20, 0x00, // local.get 0
		0x6A,       // i32.add
		0x21, 0x01, // local.set 1
		0x20, 0x00, // local.get 0
		0x41, 0x01, // i32.const 1
		0x6B,       // i32.sub
		0x21, 0x00, // local.set 0
		0x0C, 0x00, // br 0
		0x0B,       // end (loop)
		0x0B,       // end (block)
		0x20, 0x01, // local.get 1
		0x0B, // end
	}
	var code bytes.Buffer
	code.WriteByte(0x01)
	wasm.WriteLEB128u(&code, uint32(len(body)))
	code.Write(body)

	return assemble(
		section(wasm.SectionType, []byte{0x01, 0x60, 0x01, 0x7F, 0x01, 0x7F}),
		section(wasm.SectionFunction, []byte{0x01, 0x00}),
		section(wasm.SectionExport, []byte{0x01, 0x03, 's', 'u', 'm', 0x00, 0x00}),
		section(wasm.SectionCode, code.Bytes()),
	)
}

func TestWazeroAcceptsHandAssembledModules(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	answer, err := r.Instantiate(ctx, answerModule())
	if err != nil {
		t.Fatalf("instantiate answer module: %v", err)
	}
	res, err := answer.ExportedFunction("answer").Call(ctx)
	if err != nil {
		t.Fatalf("call answer: %v", err)
	}
	if res[0] != 42 {
		t.Errorf("answer: got %d, want 42", res[0])
	}

	sum, err := r.Instantiate(ctx, sumModule())
	if err != nil {
		t.Fatalf("instantiate sum module: %v", err)
	}
	res, err = sum.ExportedFunction("sum").Call(ctx, 5)
	if err != nil {
		t.Fatalf("call sum: %v", err)
	}
	if res[0] != 15 {
		t.Errorf("sum(5): got %d, want 15", res[0])
	}
}

func TestBuildIRFromValidatedModule(t *testing.T) {
	m, err := wasm.ParseModule(sumModule())
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	env, err := ir.NewModuleEnv(m)
	if err != nil {
		t.Fatalf("NewModuleEnv: %v", err)
	}
	f, err := env.BuildDeclaredFunction(0)
	if err != nil {
		t.Fatalf("BuildDeclaredFunction: %v", err)
	}

	if f.Locals.Len() != 2 {
		t.Errorf("locals: got %d, want 2 (param + declared)", f.Locals.Len())
	}

	out := ir.Print(f)
	for _, want := range []string{"block", "loop", "br_if (;e", "br (;e", "I32Add", "I32Eqz"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in rendering:\n%s", want, out)
		}
	}

	// The unconditional br back to the loop ends its body; the conditional
	// br_if does not.
	var sawBr, sawBrIf bool
	ir.Walk(f, ir.ExprID(f.Entry), ir.VisitorFunc(func(id ir.ExprID, e ir.Expr) {
		switch e.(type) {
		case *ir.Br:
			sawBr = true
			if !ir.FollowingInstructionsAreUnreachable(e) {
				t.Error("br must make successors unreachable")
			}
		case *ir.BrIf:
			sawBrIf = true
			if ir.FollowingInstructionsAreUnreachable(e) {
				t.Error("br_if must not make successors unreachable")
			}
		}
	}))
	if !sawBr || !sawBrIf {
		t.Errorf("expected both br and br_if in the graph (br=%v br_if=%v)", sawBr, sawBrIf)
	}
}

func TestBuildIRAnswerModule(t *testing.T) {
	m, err := wasm.ParseModule(answerModule())
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	env, err := ir.NewModuleEnv(m)
	if err != nil {
		t.Fatalf("NewModuleEnv: %v", err)
	}
	f, err := env.BuildDeclaredFunction(0)
	if err != nil {
		t.Fatalf("BuildDeclaredFunction: %v", err)
	}

	out := ir.Print(f)
	if !strings.Contains(out, "const 42") {
		t.Errorf("missing constant in rendering:\n%s", out)
	}
	dot := ir.Dot(f)
	if !strings.Contains(dot, `expr_0 [label="entry"]`) {
		t.Errorf("missing entry node in dot output:\n%s", dot)
	}
}
