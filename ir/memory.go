package ir

// LoadKind distinguishes access width and, for sub-word integer loads,
// sign-extension behavior of a Load node.
type LoadKind byte

// Load kinds. The S/U suffix on sub-word loads selects sign or zero
// extension into the full-width result.
const (
	LoadI32 LoadKind = iota
	LoadI64
	LoadF32
	LoadF64
	LoadV128
	LoadI32_8S
	LoadI32_8U
	LoadI32_16S
	LoadI32_16U
	LoadI64_8S
	LoadI64_8U
	LoadI64_16S
	LoadI64_16U
	LoadI64_32S
	LoadI64_32U
)

var loadKindNames = [...]string{
	LoadI32:     "i32.load",
	LoadI64:     "i64.load",
	LoadF32:     "f32.load",
	LoadF64:     "f64.load",
	LoadV128:    "v128.load",
	LoadI32_8S:  "i32.load8_s",
	LoadI32_8U:  "i32.load8_u",
	LoadI32_16S: "i32.load16_s",
	LoadI32_16U: "i32.load16_u",
	LoadI64_8S:  "i64.load8_s",
	LoadI64_8U:  "i64.load8_u",
	LoadI64_16S: "i64.load16_s",
	LoadI64_16U: "i64.load16_u",
	LoadI64_32S: "i64.load32_s",
	LoadI64_32U: "i64.load32_u",
}

func (k LoadKind) String() string {
	if int(k) < len(loadKindNames) {
		return loadKindNames[k]
	}
	return "load(unknown)"
}

// StoreKind distinguishes the access width of a Store node. Sub-word stores
// wrap; there is no sign distinction.
type StoreKind byte

// Store kinds.
const (
	StoreI32 StoreKind = iota
	StoreI64
	StoreF32
	StoreF64
	StoreV128
	StoreI32_8
	StoreI32_16
	StoreI64_8
	StoreI64_16
	StoreI64_32
)

var storeKindNames = [...]string{
	StoreI32:    "i32.store",
	StoreI64:    "i64.store",
	StoreF32:    "f32.store",
	StoreF64:    "f64.store",
	StoreV128:   "v128.store",
	StoreI32_8:  "i32.store8",
	StoreI32_16: "i32.store16",
	StoreI64_8:  "i64.store8",
	StoreI64_16: "i64.store16",
	StoreI64_32: "i64.store32",
}

func (k StoreKind) String() string {
	if int(k) < len(storeKindNames) {
		return storeKindNames[k]
	}
	return "store(unknown)"
}

// MemArg carries the alignment hint and constant byte offset attached to
// every load and store. Align is a power of two. Purely descriptive; never
// validated against the access width here.
type MemArg struct {
	Align  uint32
	Offset uint32
}
