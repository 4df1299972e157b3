// Package ir defines an expression-graph intermediate representation for
// WebAssembly function bodies.
//
// The representation converts the stack-machine instruction stream into an
// explicit graph: every operand dependency is a direct ExprID reference into
// a per-function arena, and every control construct (block, loop, if/else,
// the function body itself) is an addressable Block node.
//
// # Structure
//
// A Function owns an Arena of Expr nodes and a Locals table. Nodes reference
// each other only by ExprID; nothing is owned by value, so rewrite passes can
// swap a node's payload in place with Arena.Replace without disturbing any
// other node's references. The arena is append-only. Nodes are never deleted;
// an unreferenced node simply becomes unreachable from the entry block.
//
// # Construction
//
// BuildFunction translates a decoded instruction stream into a graph,
// resolving local, global, function, table, memory, and type indices against
// a ModuleEnv. References to identifiers the module does not declare are
// reported as structured errors. Lookups with ids foreign to a function are
// programming errors and panic.
//
// # Traversal
//
// Walk drives a Visitor over every node reachable from a starting
// expression, visiting each exactly once in evaluation order. Branch targets
// are control destinations, not values, and are not re-descended into; the
// target block is visited at its own lexical position.
package ir
