package ir

import (
	"testing"

	"github.com/wippyai/wasm-ir/wasm"
)

func TestLocalsAddGet(t *testing.T) {
	var ls Locals
	a := ls.Add(wasm.ValI32)
	b := ls.Add(wasm.ValF64)

	if a == b {
		t.Fatal("local ids must be unique")
	}
	if ls.Len() != 2 {
		t.Fatalf("Len: got %d", ls.Len())
	}
	if ls.Get(a).Type() != wasm.ValI32 {
		t.Errorf("type of %d: got %v", a, ls.Get(a).Type())
	}
	if ls.Get(b).Type() != wasm.ValF64 {
		t.Errorf("type of %d: got %v", b, ls.Get(b).Type())
	}
}

func TestLocalsNameMutable(t *testing.T) {
	var ls Locals
	id := ls.Add(wasm.ValI32)
	ls.Get(id).Name = "counter"
	if ls.Get(id).Name != "counter" {
		t.Errorf("name not retained: %q", ls.Get(id).Name)
	}
}

func TestLocalsForeignIDPanics(t *testing.T) {
	var ls Locals
	ls.Add(wasm.ValI32)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on foreign local id")
		}
	}()
	ls.Get(LocalID(9))
}
