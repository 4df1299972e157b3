// Package wasmir provides an expression-graph intermediate representation
// for WebAssembly bytecode.
//
// The toolkit converts a function's stack-machine instruction stream into an
// explicit graph where every operand dependency is a direct reference and
// every control construct is an addressable node, a shape downstream
// analysis and rewrite passes can pattern-match and mutate safely.
//
// # Architecture Overview
//
// The library is organized into a few packages with distinct
// responsibilities:
//
//	wasm-ir/
//	├── wasm/        WASM binary decoding: sections, LEB128, instructions, names
//	├── ir/          The expression-graph core: arena, nodes, builder, traversal
//	├── errors/      Structured error types shared across phases
//	└── cmd/irdump/  CLI for inspecting the IR of a module's functions
//
// # Quick Start
//
// Decode a module and build the IR of its first declared function:
//
//	m, err := wasm.ParseModule(data)
//	if err != nil { ... }
//	env, err := ir.NewModuleEnv(m)
//	if err != nil { ... }
//	f, err := env.BuildDeclaredFunction(0)
//	if err != nil { ... }
//	fmt.Println(ir.Print(f))
package wasmir
