package ir

// BinaryOp enumerates the two-operand numeric operations a Binop node can
// perform. The set is closed; consumers switching over it must handle every
// case.
type BinaryOp byte

// Binary operations.
const (
	I32Eq BinaryOp = iota
	I32Ne
	I32LtS
	I32LtU
	I32GtS
	I32GtU
	I32LeS
	I32LeU
	I32GeS
	I32GeU

	I64Eq
	I64Ne
	I64LtS
	I64LtU
	I64GtS
	I64GtU
	I64LeS
	I64LeU
	I64GeS
	I64GeU

	F32Eq
	F32Ne
	F32Lt
	F32Gt
	F32Le
	F32Ge

	F64Eq
	F64Ne
	F64Lt
	F64Gt
	F64Le
	F64Ge

	I32Add
	I32Sub
	I32Mul
	I32DivS
	I32DivU
	I32RemS
	I32RemU
	I32And
	I32Or
	I32Xor
	I32Shl
	I32ShrS
	I32ShrU
	I32Rotl
	I32Rotr

	I64Add
	I64Sub
	I64Mul
	I64DivS
	I64DivU
	I64RemS
	I64RemU
	I64And
	I64Or
	I64Xor
	I64Shl
	I64ShrS
	I64ShrU
	I64Rotl
	I64Rotr

	F32Add
	F32Sub
	F32Mul
	F32Div
	F32Min
	F32Max
	F32Copysign

	F64Add
	F64Sub
	F64Mul
	F64Div
	F64Min
	F64Max
	F64Copysign
)

var binaryOpNames = [...]string{
	I32Eq:  "I32Eq",
	I32Ne:  "I32Ne",
	I32LtS: "I32LtS",
	I32LtU: "I32LtU",
	I32GtS: "I32GtS",
	I32GtU: "I32GtU",
	I32LeS: "I32LeS",
	I32LeU: "I32LeU",
	I32GeS: "I32GeS",
	I32GeU: "I32GeU",

	I64Eq:  "I64Eq",
	I64Ne:  "I64Ne",
	I64LtS: "I64LtS",
	I64LtU: "I64LtU",
	I64GtS: "I64GtS",
	I64GtU: "I64GtU",
	I64LeS: "I64LeS",
	I64LeU: "I64LeU",
	I64GeS: "I64GeS",
	I64GeU: "I64GeU",

	F32Eq: "F32Eq",
	F32Ne: "F32Ne",
	F32Lt: "F32Lt",
	F32Gt: "F32Gt",
	F32Le: "F32Le",
	F32Ge: "F32Ge",

	F64Eq: "F64Eq",
	F64Ne: "F64Ne",
	F64Lt: "F64Lt",
	F64Gt: "F64Gt",
	F64Le: "F64Le",
	F64Ge: "F64Ge",

	I32Add:  "I32Add",
	I32Sub:  "I32Sub",
	I32Mul:  "I32Mul",
	I32DivS: "I32DivS",
	I32DivU: "I32DivU",
	I32RemS: "I32RemS",
	I32RemU: "I32RemU",
	I32And:  "I32And",
	I32Or:   "I32Or",
	I32Xor:  "I32Xor",
	I32Shl:  "I32Shl",
	I32ShrS: "I32ShrS",
	I32ShrU: "I32ShrU",
	I32Rotl: "I32Rotl",
	I32Rotr: "I32Rotr",

	I64Add:  "I64Add",
	I64Sub:  "I64Sub",
	I64Mul:  "I64Mul",
	I64DivS: "I64DivS",
	I64DivU: "I64DivU",
	I64RemS: "I64RemS",
	I64RemU: "I64RemU",
	I64And:  "I64And",
	I64Or:   "I64Or",
	I64Xor:  "I64Xor",
	I64Shl:  "I64Shl",
	I64ShrS: "I64ShrS",
	I64ShrU: "I64ShrU",
	I64Rotl: "I64Rotl",
	I64Rotr: "I64Rotr",

	F32Add:      "F32Add",
	F32Sub:      "F32Sub",
	F32Mul:      "F32Mul",
	F32Div:      "F32Div",
	F32Min:      "F32Min",
	F32Max:      "F32Max",
	F32Copysign: "F32Copysign",

	F64Add:      "F64Add",
	F64Sub:      "F64Sub",
	F64Mul:      "F64Mul",
	F64Div:      "F64Div",
	F64Min:      "F64Min",
	F64Max:      "F64Max",
	F64Copysign: "F64Copysign",
}

// String returns the operation's case name, e.g. "I32Add".
func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "BinaryOp(unknown)"
}

// UnaryOp enumerates the one-operand numeric operations a Unop node can
// perform.
type UnaryOp byte

// Unary operations.
const (
	I32Eqz UnaryOp = iota
	I32Clz
	I32Ctz
	I32Popcnt

	I64Eqz
	I64Clz
	I64Ctz
	I64Popcnt

	F32Abs
	F32Neg
	F32Ceil
	F32Floor
	F32Trunc
	F32Nearest
	F32Sqrt

	F64Abs
	F64Neg
	F64Ceil
	F64Floor
	F64Trunc
	F64Nearest
	F64Sqrt

	I32WrapI64
	I32TruncSF32
	I32TruncUF32
	I32TruncSF64
	I32TruncUF64
	I64ExtendSI32
	I64ExtendUI32
	I64TruncSF32
	I64TruncUF32
	I64TruncSF64
	I64TruncUF64

	F32ConvertSI32
	F32ConvertUI32
	F32ConvertSI64
	F32ConvertUI64
	F32DemoteF64
	F64ConvertSI32
	F64ConvertUI32
	F64ConvertSI64
	F64ConvertUI64
	F64PromoteF32

	I32ReinterpretF32
	I64ReinterpretF64
	F32ReinterpretI32
	F64ReinterpretI64
)

var unaryOpNames = [...]string{
	I32Eqz:    "I32Eqz",
	I32Clz:    "I32Clz",
	I32Ctz:    "I32Ctz",
	I32Popcnt: "I32Popcnt",

	I64Eqz:    "I64Eqz",
	I64Clz:    "I64Clz",
	I64Ctz:    "I64Ctz",
	I64Popcnt: "I64Popcnt",

	F32Abs:     "F32Abs",
	F32Neg:     "F32Neg",
	F32Ceil:    "F32Ceil",
	F32Floor:   "F32Floor",
	F32Trunc:   "F32Trunc",
	F32Nearest: "F32Nearest",
	F32Sqrt:    "F32Sqrt",

	F64Abs:     "F64Abs",
	F64Neg:     "F64Neg",
	F64Ceil:    "F64Ceil",
	F64Floor:   "F64Floor",
	F64Trunc:   "F64Trunc",
	F64Nearest: "F64Nearest",
	F64Sqrt:    "F64Sqrt",

	I32WrapI64:    "I32WrapI64",
	I32TruncSF32:  "I32TruncSF32",
	I32TruncUF32:  "I32TruncUF32",
	I32TruncSF64:  "I32TruncSF64",
	I32TruncUF64:  "I32TruncUF64",
	I64ExtendSI32: "I64ExtendSI32",
	I64ExtendUI32: "I64ExtendUI32",
	I64TruncSF32:  "I64TruncSF32",
	I64TruncUF32:  "I64TruncUF32",
	I64TruncSF64:  "I64TruncSF64",
	I64TruncUF64:  "I64TruncUF64",

	F32ConvertSI32: "F32ConvertSI32",
	F32ConvertUI32: "F32ConvertUI32",
	F32ConvertSI64: "F32ConvertSI64",
	F32ConvertUI64: "F32ConvertUI64",
	F32DemoteF64:   "F32DemoteF64",
	F64ConvertSI32: "F64ConvertSI32",
	F64ConvertUI32: "F64ConvertUI32",
	F64ConvertSI64: "F64ConvertSI64",
	F64ConvertUI64: "F64ConvertUI64",
	F64PromoteF32:  "F64PromoteF32",

	I32ReinterpretF32: "I32ReinterpretF32",
	I64ReinterpretF64: "I64ReinterpretF64",
	F32ReinterpretI32: "F32ReinterpretI32",
	F64ReinterpretI64: "F64ReinterpretI64",
}

// String returns the operation's case name, e.g. "I32Eqz".
func (op UnaryOp) String() string {
	if int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "UnaryOp(unknown)"
}
