package wasm

import (
	"bytes"
	"errors"
	"testing"
)

// buildModule assembles a binary module from (sectionID, payload) pairs.
func buildModule(sections ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x61, 0x73, 0x6D}) // \0asm
	buf.Write([]byte{0x01, 0x00, 0x00, 0x00}) // version 1
	for _, s := range sections {
		buf.Write(s)
	}
	return buf.Bytes()
}

func section(id byte, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte(id)
	WriteLEB128u(&buf, uint32(len(payload)))
	buf.Write(payload)
	return buf.Bytes()
}

// answerModule is (module (func (export "answer") (result i32) i32.const 42)).
func answerModule() []byte {
	return buildModule(
		// type: () -> i32
		section(SectionType, []byte{0x01, 0x60, 0x00, 0x01, 0x7F}),
		// function: func 0 uses type 0
		section(SectionFunction, []byte{0x01, 0x00}),
		// export: "answer" func 0
		section(SectionExport, []byte{0x01, 0x06, 'a', 'n', 's', 'w', 'e', 'r', 0x00, 0x00}),
		// code: no locals, i32.const 42, end
		section(SectionCode, []byte{0x01, 0x04, 0x00, 0x41, 0x2A, 0x0B}),
	)
}

func TestParseModuleBasic(t *testing.T) {
	m, err := ParseModule(answerModule())
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}

	if len(m.Types) != 1 {
		t.Fatalf("expected 1 type, got %d", len(m.Types))
	}
	if len(m.Types[0].Params) != 0 || len(m.Types[0].Results) != 1 {
		t.Errorf("type signature mismatch: %+v", m.Types[0])
	}
	if m.Types[0].Results[0] != ValI32 {
		t.Errorf("result type: got %v", m.Types[0].Results[0])
	}

	if len(m.Funcs) != 1 || m.Funcs[0] != 0 {
		t.Errorf("function section mismatch: %v", m.Funcs)
	}

	if len(m.Exports) != 1 {
		t.Fatalf("expected 1 export, got %d", len(m.Exports))
	}
	if m.Exports[0].Name != "answer" || m.Exports[0].Kind != KindFunc || m.Exports[0].Idx != 0 {
		t.Errorf("export mismatch: %+v", m.Exports[0])
	}

	if len(m.Code) != 1 {
		t.Fatalf("expected 1 function body, got %d", len(m.Code))
	}
	if len(m.Code[0].Locals) != 0 {
		t.Errorf("expected no locals, got %v", m.Code[0].Locals)
	}
	wantCode := []byte{0x41, 0x2A, 0x0B}
	if !bytes.Equal(m.Code[0].Code, wantCode) {
		t.Errorf("code bytes: got %x, want %x", m.Code[0].Code, wantCode)
	}
}

func TestParseModuleInvalidMagic(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x00, 0x00, 0x00}
	if _, err := ParseModule(data); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestParseModuleInvalidVersion(t *testing.T) {
	data := []byte{0x00, 0x61, 0x73, 0x6D, 0x02, 0x00, 0x00, 0x00}
	if _, err := ParseModule(data); !errors.Is(err, ErrInvalidVersion) {
		t.Fatalf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestParseModuleSectionOrder(t *testing.T) {
	// Function section before type section is malformed
	data := buildModule(
		section(SectionFunction, []byte{0x01, 0x00}),
		section(SectionType, []byte{0x01, 0x60, 0x00, 0x00}),
	)
	if _, err := ParseModule(data); err == nil {
		t.Fatal("expected section order error")
	}
}

func TestParseModuleImportsAndGlobals(t *testing.T) {
	var imports bytes.Buffer
	imports.WriteByte(0x02) // 2 imports
	// "env" "mem" memory {min 1}
	imports.Write([]byte{0x03, 'e', 'n', 'v', 0x03, 'm', 'e', 'm', KindMemory, 0x00, 0x01})
	// "env" "g" global i32 mutable
	imports.Write([]byte{0x03, 'e', 'n', 'v', 0x01, 'g', KindGlobal, 0x7F, 0x01})

	// one declared global: i64 immutable, init i64.const 7
	globals := []byte{0x01, 0x7E, 0x00, 0x42, 0x07, 0x0B}

	m, err := ParseModule(buildModule(
		section(SectionImport, imports.Bytes()),
		section(SectionGlobal, globals),
	))
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}

	if m.NumImportedMemories() != 1 || m.NumImportedGlobals() != 1 {
		t.Errorf("import counts: memories=%d globals=%d", m.NumImportedMemories(), m.NumImportedGlobals())
	}
	if m.NumGlobals() != 2 {
		t.Errorf("NumGlobals: got %d, want 2", m.NumGlobals())
	}

	gt := m.GetGlobalType(0)
	if gt == nil || gt.ValType != ValI32 || !gt.Mutable {
		t.Errorf("imported global type mismatch: %+v", gt)
	}
	gt = m.GetGlobalType(1)
	if gt == nil || gt.ValType != ValI64 || gt.Mutable {
		t.Errorf("declared global type mismatch: %+v", gt)
	}
	if m.GetGlobalType(2) != nil {
		t.Error("expected nil for out-of-range global index")
	}

	wantInit := []byte{OpI64Const, 0x07}
	if !bytes.Equal(m.Globals[0].Init, wantInit) {
		t.Errorf("global init: got %x, want %x", m.Globals[0].Init, wantInit)
	}
}

func TestParseModuleCustomSectionAndNames(t *testing.T) {
	// name section: function subsection naming func 0 "main",
	// local subsection naming local 0 of func 0 "x"
	var name bytes.Buffer
	name.Write([]byte{0x04, 'n', 'a', 'm', 'e'})
	// subsection 1: function names
	name.Write([]byte{0x01, 0x07, 0x01, 0x00, 0x04, 'm', 'a', 'i', 'n'})
	// subsection 2: local names
	name.Write([]byte{0x02, 0x06, 0x01, 0x00, 0x01, 0x00, 0x01, 'x'})

	data := buildModule(
		section(SectionType, []byte{0x01, 0x60, 0x00, 0x00}),
		section(SectionFunction, []byte{0x01, 0x00}),
		section(SectionCode, []byte{0x01, 0x02, 0x00, 0x0B}),
		section(SectionCustom, name.Bytes()),
	)

	m, err := ParseModule(data)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	if len(m.CustomSections) != 1 || m.CustomSections[0].Name != "name" {
		t.Fatalf("custom sections: %+v", m.CustomSections)
	}

	names, err := m.ParseNames()
	if err != nil {
		t.Fatalf("ParseNames: %v", err)
	}
	if got := names.FuncName(0); got != "main" {
		t.Errorf("FuncName(0): got %q", got)
	}
	if got := names.LocalName(0, 0); got != "x" {
		t.Errorf("LocalName(0, 0): got %q", got)
	}
	if got := names.FuncName(5); got != "" {
		t.Errorf("FuncName(5): got %q, want empty", got)
	}
}

func TestParseNamesMissingSection(t *testing.T) {
	m, err := ParseModule(answerModule())
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	names, err := m.ParseNames()
	if err != nil {
		t.Fatalf("ParseNames: %v", err)
	}
	if names.FuncName(0) != "" {
		t.Error("expected no names without a name section")
	}
}

func TestGetFuncTypeWithImports(t *testing.T) {
	var imports bytes.Buffer
	imports.WriteByte(0x01)
	// "env" "log" func type 1
	imports.Write([]byte{0x03, 'e', 'n', 'v', 0x03, 'l', 'o', 'g', KindFunc, 0x01})

	m, err := ParseModule(buildModule(
		// type 0: () -> i32, type 1: (i32) -> ()
		section(SectionType, []byte{0x02, 0x60, 0x00, 0x01, 0x7F, 0x60, 0x01, 0x7F, 0x00}),
		section(SectionImport, imports.Bytes()),
		section(SectionFunction, []byte{0x01, 0x00}),
		section(SectionCode, []byte{0x01, 0x04, 0x00, 0x41, 0x2A, 0x0B}),
	))
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}

	if m.NumFuncs() != 2 {
		t.Fatalf("NumFuncs: got %d, want 2", m.NumFuncs())
	}
	ft := m.GetFuncType(0)
	if ft == nil || len(ft.Params) != 1 || ft.Params[0] != ValI32 {
		t.Errorf("imported func type mismatch: %+v", ft)
	}
	ft = m.GetFuncType(1)
	if ft == nil || len(ft.Results) != 1 || ft.Results[0] != ValI32 {
		t.Errorf("declared func type mismatch: %+v", ft)
	}
	if m.GetFuncType(2) != nil {
		t.Error("expected nil for out-of-range function index")
	}
}

func TestParseFuncBodyLocals(t *testing.T) {
	// 2 local groups: 2 x i32, 1 x f64
	data := buildModule(
		section(SectionType, []byte{0x01, 0x60, 0x00, 0x00}),
		section(SectionFunction, []byte{0x01, 0x00}),
		section(SectionCode, []byte{0x01, 0x06, 0x02, 0x02, 0x7F, 0x01, 0x7C, 0x0B}),
	)
	m, err := ParseModule(data)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	locals := m.Code[0].Locals
	if len(locals) != 2 {
		t.Fatalf("expected 2 local groups, got %d", len(locals))
	}
	if locals[0].Count != 2 || locals[0].ValType != ValI32 {
		t.Errorf("local group 0 mismatch: %+v", locals[0])
	}
	if locals[1].Count != 1 || locals[1].ValType != ValF64 {
		t.Errorf("local group 1 mismatch: %+v", locals[1])
	}
}
