package ir

import "github.com/wippyai/wasm-ir/wasm"

// Opcode to operator vocabulary mappings used by the builder.

var binopByOpcode = map[byte]BinaryOp{
	wasm.OpI32Eq:  I32Eq,
	wasm.OpI32Ne:  I32Ne,
	wasm.OpI32LtS: I32LtS,
	wasm.OpI32LtU: I32LtU,
	wasm.OpI32GtS: I32GtS,
	wasm.OpI32GtU: I32GtU,
	wasm.OpI32LeS: I32LeS,
	wasm.OpI32LeU: I32LeU,
	wasm.OpI32GeS: I32GeS,
	wasm.OpI32GeU: I32GeU,

	wasm.OpI64Eq:  I64Eq,
	wasm.OpI64Ne:  I64Ne,
	wasm.OpI64LtS: I64LtS,
	wasm.OpI64LtU: I64LtU,
	wasm.OpI64GtS: I64GtS,
	wasm.OpI64GtU: I64GtU,
	wasm.OpI64LeS: I64LeS,
	wasm.OpI64LeU: I64LeU,
	wasm.OpI64GeS: I64GeS,
	wasm.OpI64GeU: I64GeU,

	wasm.OpF32Eq: F32Eq,
	wasm.OpF32Ne: F32Ne,
	wasm.OpF32Lt: F32Lt,
	wasm.OpF32Gt: F32Gt,
	wasm.OpF32Le: F32Le,
	wasm.OpF32Ge: F32Ge,

	wasm.OpF64Eq: F64Eq,
	wasm.OpF64Ne: F64Ne,
	wasm.OpF64Lt: F64Lt,
	wasm.OpF64Gt: F64Gt,
	wasm.OpF64Le: F64Le,
	wasm.OpF64Ge: F64Ge,

	wasm.OpI32Add:  I32Add,
	wasm.OpI32Sub:  I32Sub,
	wasm.OpI32Mul:  I32Mul,
	wasm.OpI32DivS: I32DivS,
	wasm.OpI32DivU: I32DivU,
	wasm.OpI32RemS: I32RemS,
	wasm.OpI32RemU: I32RemU,
	wasm.OpI32And:  I32And,
	wasm.OpI32Or:   I32Or,
	wasm.OpI32Xor:  I32Xor,
	wasm.OpI32Shl:  I32Shl,
	wasm.OpI32ShrS: I32ShrS,
	wasm.OpI32ShrU: I32ShrU,
	wasm.OpI32Rotl: I32Rotl,
	wasm.OpI32Rotr: I32Rotr,

	wasm.OpI64Add:  I64Add,
	wasm.OpI64Sub:  I64Sub,
	wasm.OpI64Mul:  I64Mul,
	wasm.OpI64DivS: I64DivS,
	wasm.OpI64DivU: I64DivU,
	wasm.OpI64RemS: I64RemS,
	wasm.OpI64RemU: I64RemU,
	wasm.OpI64And:  I64And,
	wasm.OpI64Or:   I64Or,
	wasm.OpI64Xor:  I64Xor,
	wasm.OpI64Shl:  I64Shl,
	wasm.OpI64ShrS: I64ShrS,
	wasm.OpI64ShrU: I64ShrU,
	wasm.OpI64Rotl: I64Rotl,
	wasm.OpI64Rotr: I64Rotr,

	wasm.OpF32Add:      F32Add,
	wasm.OpF32Sub:      F32Sub,
	wasm.OpF32Mul:      F32Mul,
	wasm.OpF32Div:      F32Div,
	wasm.OpF32Min:      F32Min,
	wasm.OpF32Max:      F32Max,
	wasm.OpF32Copysign: F32Copysign,

	wasm.OpF64Add:      F64Add,
	wasm.OpF64Sub:      F64Sub,
	wasm.OpF64Mul:      F64Mul,
	wasm.OpF64Div:      F64Div,
	wasm.OpF64Min:      F64Min,
	wasm.OpF64Max:      F64Max,
	wasm.OpF64Copysign: F64Copysign,
}

var unopByOpcode = map[byte]UnaryOp{
	wasm.OpI32Eqz:    I32Eqz,
	wasm.OpI32Clz:    I32Clz,
	wasm.OpI32Ctz:    I32Ctz,
	wasm.OpI32Popcnt: I32Popcnt,

	wasm.OpI64Eqz:    I64Eqz,
	wasm.OpI64Clz:    I64Clz,
	wasm.OpI64Ctz:    I64Ctz,
	wasm.OpI64Popcnt: I64Popcnt,

	wasm.OpF32Abs:     F32Abs,
	wasm.OpF32Neg:     F32Neg,
	wasm.OpF32Ceil:    F32Ceil,
	wasm.OpF32Floor:   F32Floor,
	wasm.OpF32Trunc:   F32Trunc,
	wasm.OpF32Nearest: F32Nearest,
	wasm.OpF32Sqrt:    F32Sqrt,

	wasm.OpF64Abs:     F64Abs,
	wasm.OpF64Neg:     F64Neg,
	wasm.OpF64Ceil:    F64Ceil,
	wasm.OpF64Floor:   F64Floor,
	wasm.OpF64Trunc:   F64Trunc,
	wasm.OpF64Nearest: F64Nearest,
	wasm.OpF64Sqrt:    F64Sqrt,

	wasm.OpI32WrapI64:    I32WrapI64,
	wasm.OpI32TruncF32S:  I32TruncSF32,
	wasm.OpI32TruncF32U:  I32TruncUF32,
	wasm.OpI32TruncF64S:  I32TruncSF64,
	wasm.OpI32TruncF64U:  I32TruncUF64,
	wasm.OpI64ExtendI32S: I64ExtendSI32,
	wasm.OpI64ExtendI32U: I64ExtendUI32,
	wasm.OpI64TruncF32S:  I64TruncSF32,
	wasm.OpI64TruncF32U:  I64TruncUF32,
	wasm.OpI64TruncF64S:  I64TruncSF64,
	wasm.OpI64TruncF64U:  I64TruncUF64,

	wasm.OpF32ConvertI32S: F32ConvertSI32,
	wasm.OpF32ConvertI32U: F32ConvertUI32,
	wasm.OpF32ConvertI64S: F32ConvertSI64,
	wasm.OpF32ConvertI64U: F32ConvertUI64,
	wasm.OpF32DemoteF64:   F32DemoteF64,
	wasm.OpF64ConvertI32S: F64ConvertSI32,
	wasm.OpF64ConvertI32U: F64ConvertUI32,
	wasm.OpF64ConvertI64S: F64ConvertSI64,
	wasm.OpF64ConvertI64U: F64ConvertUI64,
	wasm.OpF64PromoteF32:  F64PromoteF32,

	wasm.OpI32ReinterpretF32: I32ReinterpretF32,
	wasm.OpI64ReinterpretF64: I64ReinterpretF64,
	wasm.OpF32ReinterpretI32: F32ReinterpretI32,
	wasm.OpF64ReinterpretI64: F64ReinterpretI64,
}

var loadKindByOpcode = map[byte]LoadKind{
	wasm.OpI32Load:    LoadI32,
	wasm.OpI64Load:    LoadI64,
	wasm.OpF32Load:    LoadF32,
	wasm.OpF64Load:    LoadF64,
	wasm.OpI32Load8S:  LoadI32_8S,
	wasm.OpI32Load8U:  LoadI32_8U,
	wasm.OpI32Load16S: LoadI32_16S,
	wasm.OpI32Load16U: LoadI32_16U,
	wasm.OpI64Load8S:  LoadI64_8S,
	wasm.OpI64Load8U:  LoadI64_8U,
	wasm.OpI64Load16S: LoadI64_16S,
	wasm.OpI64Load16U: LoadI64_16U,
	wasm.OpI64Load32S: LoadI64_32S,
	wasm.OpI64Load32U: LoadI64_32U,
}

// loadResultType is the full-width type a load of the given kind pushes.
func loadResultType(k LoadKind) wasm.ValType {
	switch k {
	case LoadI64, LoadI64_8S, LoadI64_8U, LoadI64_16S, LoadI64_16U, LoadI64_32S, LoadI64_32U:
		return wasm.ValI64
	case LoadF32:
		return wasm.ValF32
	case LoadF64:
		return wasm.ValF64
	case LoadV128:
		return wasm.ValV128
	default:
		return wasm.ValI32
	}
}

// numericResultType is the result type of a numeric opcode. Comparisons
// and eqz produce i32 whatever their operands; conversion results follow
// the opcode layout, which groups conversions by destination type.
func numericResultType(op byte) wasm.ValType {
	switch {
	case op >= wasm.OpI32Eqz && op <= wasm.OpF64Ge:
		return wasm.ValI32
	case op >= wasm.OpI32Clz && op <= wasm.OpI32Rotr:
		return wasm.ValI32
	case op >= wasm.OpI64Clz && op <= wasm.OpI64Rotr:
		return wasm.ValI64
	case op >= wasm.OpF32Abs && op <= wasm.OpF32Copysign:
		return wasm.ValF32
	case op >= wasm.OpF64Abs && op <= wasm.OpF64Copysign:
		return wasm.ValF64
	case op == wasm.OpI32WrapI64, op >= wasm.OpI32TruncF32S && op <= wasm.OpI32TruncF64U, op == wasm.OpI32ReinterpretF32:
		return wasm.ValI32
	case op >= wasm.OpI64ExtendI32S && op <= wasm.OpI64TruncF64U, op == wasm.OpI64ReinterpretF64:
		return wasm.ValI64
	case op >= wasm.OpF32ConvertI32S && op <= wasm.OpF32DemoteF64, op == wasm.OpF32ReinterpretI32:
		return wasm.ValF32
	default:
		return wasm.ValF64
	}
}

var storeKindByOpcode = map[byte]StoreKind{
	wasm.OpI32Store:   StoreI32,
	wasm.OpI64Store:   StoreI64,
	wasm.OpF32Store:   StoreF32,
	wasm.OpF64Store:   StoreF64,
	wasm.OpI32Store8:  StoreI32_8,
	wasm.OpI32Store16: StoreI32_16,
	wasm.OpI64Store8:  StoreI64_8,
	wasm.OpI64Store16: StoreI64_16,
	wasm.OpI64Store32: StoreI64_32,
}
