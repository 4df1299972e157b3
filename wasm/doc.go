// Package wasm provides WebAssembly binary format parsing for the IR core.
//
// This package is the decoder collaborator of package ir: it parses a
// WebAssembly binary module into a typed section model and decodes each
// function body into an ordered instruction stream. The supported
// instruction set is the WebAssembly MVP (control flow, calls, locals,
// globals, memory access, constants, and numeric operations), which is
// exactly the vocabulary the expression graph in package ir covers.
//
// # Parsing
//
// Parse a WebAssembly module from binary:
//
//	data, _ := os.ReadFile("module.wasm")
//	module, err := wasm.ParseModule(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decode a function body into instructions:
//
//	instrs, err := wasm.DecodeInstructions(module.Code[0].Code)
//
// Debug names from the custom "name" section, when present, are exposed
// through ParseNames and feed the optional human-readable names on IR
// locals.
//
// This package performs structural decoding only. Type and stack
// validation is the job of an upstream validator (wazero in the irdump
// CLI); package ir enforces referential invariants on top of that.
package wasm
