// Package errors provides structured error types for the wasm-ir toolkit.
//
// Every error carries a Phase (where in the pipeline it happened), a Kind
// (what went wrong), and, where applicable, the byte offset or instruction
// index that triggered it. Callers match on Phase/Kind with errors.Is
// rather than parsing messages.
package errors
