package ir

import "strconv"

// ValueKind tags the scalar width of a constant Value.
type ValueKind byte

// Constant value kinds.
const (
	KindI32 ValueKind = iota
	KindI64
	KindF32
	KindF64
	KindV128
)

// Value is a constant that can appear in a Const node. Exactly one field
// matching Kind is meaningful.
type Value struct {
	Kind ValueKind
	I32  int32
	I64  int64
	F32  float32
	F64  float64
	V128 [16]byte
}

// I32Value wraps a 32-bit integer constant.
func I32Value(v int32) Value { return Value{Kind: KindI32, I32: v} }

// I64Value wraps a 64-bit integer constant.
func I64Value(v int64) Value { return Value{Kind: KindI64, I64: v} }

// F32Value wraps a 32-bit float constant.
func F32Value(v float32) Value { return Value{Kind: KindF32, F32: v} }

// F64Value wraps a 64-bit float constant.
func F64Value(v float64) Value { return Value{Kind: KindF64, F64: v} }

// V128Value wraps a 128-bit vector constant.
func V128Value(v [16]byte) Value { return Value{Kind: KindV128, V128: v} }

func (v Value) String() string {
	switch v.Kind {
	case KindI32:
		return strconv.FormatInt(int64(v.I32), 10)
	case KindI64:
		return strconv.FormatInt(v.I64, 10)
	case KindF32:
		return strconv.FormatFloat(float64(v.F32), 'g', -1, 32)
	case KindF64:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindV128:
		s := "0x"
		for i := 15; i >= 0; i-- {
			const hex = "0123456789abcdef"
			b := v.V128[i]
			s += string(hex[b>>4]) + string(hex[b&0x0F])
		}
		return s
	default:
		panic("ir: unknown value kind")
	}
}
