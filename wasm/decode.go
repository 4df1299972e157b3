package wasm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/wippyai/wasm-ir/wasm/internal/binary"
)

// Parsing errors returned by ParseModule.
var (
	ErrInvalidMagic   = errors.New("invalid wasm magic number")
	ErrInvalidVersion = errors.New("invalid wasm version")
)

// ParseModule parses a WebAssembly binary module
func ParseModule(data []byte) (*Module, error) {
	r := binary.NewReader(bytes.NewReader(data))

	// Check magic number
	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}

	// Check version
	version, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if version != Version {
		return nil, ErrInvalidVersion
	}

	m := &Module{}

	// Sections must appear in increasing ID order; custom sections can
	// appear anywhere.
	var lastSectionID byte

	for {
		sectionID, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, r.WrapError("section header", err)
		}

		if sectionID != SectionCustom {
			if sectionID <= lastSectionID {
				return nil, fmt.Errorf("section %d appears out of order", sectionID)
			}
			lastSectionID = sectionID
		}

		sectionSize, err := r.ReadU32()
		if err != nil {
			return nil, r.WrapError("section size", err)
		}

		sectionData, err := r.ReadBytes(int(sectionSize))
		if err != nil {
			return nil, r.WrapError("section data", err)
		}

		sr := binary.NewReader(bytes.NewReader(sectionData))

		switch sectionID {
		case SectionCustom:
			if err := parseCustomSection(sr, m); err != nil {
				return nil, fmt.Errorf("custom section: %w", err)
			}
		case SectionType:
			if err := parseTypeSection(sr, m); err != nil {
				return nil, fmt.Errorf("type section: %w", err)
			}
		case SectionImport:
			if err := parseImportSection(sr, m); err != nil {
				return nil, fmt.Errorf("import section: %w", err)
			}
		case SectionFunction:
			if err := parseFunctionSection(sr, m); err != nil {
				return nil, fmt.Errorf("function section: %w", err)
			}
		case SectionTable:
			if err := parseTableSection(sr, m); err != nil {
				return nil, fmt.Errorf("table section: %w", err)
			}
		case SectionMemory:
			if err := parseMemorySection(sr, m); err != nil {
				return nil, fmt.Errorf("memory section: %w", err)
			}
		case SectionGlobal:
			if err := parseGlobalSection(sr, m); err != nil {
				return nil, fmt.Errorf("global section: %w", err)
			}
		case SectionExport:
			if err := parseExportSection(sr, m); err != nil {
				return nil, fmt.Errorf("export section: %w", err)
			}
		case SectionStart:
			if err := parseStartSection(sr, m); err != nil {
				return nil, fmt.Errorf("start section: %w", err)
			}
		case SectionElement:
			if err := parseElementSection(sr, m); err != nil {
				return nil, fmt.Errorf("element section: %w", err)
			}
		case SectionCode:
			if err := parseCodeSection(sr, m); err != nil {
				return nil, fmt.Errorf("code section: %w", err)
			}
		case SectionData:
			if err := parseDataSection(sr, m); err != nil {
				return nil, fmt.Errorf("data section: %w", err)
			}
		default:
			return nil, fmt.Errorf("unknown section ID: 0x%02x", sectionID)
		}
	}

	return m, nil
}

func parseCustomSection(r *binary.Reader, m *Module) error {
	name, err := r.ReadName()
	if err != nil {
		return err
	}
	rest, err := r.ReadRemaining()
	if err != nil {
		return err
	}
	m.CustomSections = append(m.CustomSections, CustomSection{
		Name: name,
		Data: rest,
	})
	return nil
}

func parseTypeSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Types = make([]FuncType, count)
	for i := uint32(0); i < count; i++ {
		form, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("read type form at index %d: %w", i, err)
		}
		if form != FuncTypeByte {
			return fmt.Errorf("expected functype (0x60), got 0x%02x", form)
		}
		ft, err := readFuncType(r)
		if err != nil {
			return err
		}
		m.Types[i] = ft
	}
	return nil
}

func readFuncType(r *binary.Reader) (FuncType, error) {
	params, err := readValTypeVec(r)
	if err != nil {
		return FuncType{}, err
	}
	results, err := readValTypeVec(r)
	if err != nil {
		return FuncType{}, err
	}
	return FuncType{Params: params, Results: results}, nil
}

func readValTypeVec(r *binary.Reader) ([]ValType, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	types := make([]ValType, count)
	for i := uint32(0); i < count; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		types[i] = ValType(b)
	}
	return types, nil
}

func parseImportSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Imports = make([]Import, 0, count)
	for i := uint32(0); i < count; i++ {
		mod, err := r.ReadName()
		if err != nil {
			return err
		}
		name, err := r.ReadName()
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return err
		}

		desc := ImportDesc{Kind: kind}
		switch kind {
		case KindFunc:
			desc.TypeIdx, err = r.ReadU32()
			if err != nil {
				return err
			}
		case KindTable:
			tt, err := readTableType(r)
			if err != nil {
				return err
			}
			desc.Table = &tt
		case KindMemory:
			limits, err := readLimits(r)
			if err != nil {
				return err
			}
			desc.Memory = &MemoryType{Limits: limits}
		case KindGlobal:
			gt, err := readGlobalType(r)
			if err != nil {
				return err
			}
			desc.Global = &gt
		default:
			return fmt.Errorf("unknown import kind: 0x%02x", kind)
		}

		m.Imports = append(m.Imports, Import{Module: mod, Name: name, Desc: desc})
	}
	return nil
}

func parseFunctionSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Funcs = make([]uint32, count)
	for i := uint32(0); i < count; i++ {
		m.Funcs[i], err = r.ReadU32()
		if err != nil {
			return err
		}
	}
	return nil
}

func readTableType(r *binary.Reader) (TableType, error) {
	elemType, err := r.ReadByte()
	if err != nil {
		return TableType{}, err
	}
	limits, err := readLimits(r)
	if err != nil {
		return TableType{}, err
	}
	return TableType{ElemType: elemType, Limits: limits}, nil
}

func readLimits(r *binary.Reader) (Limits, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return Limits{}, err
	}
	min, err := r.ReadU32()
	if err != nil {
		return Limits{}, err
	}
	limits := Limits{Min: uint64(min)}
	if flags&0x01 != 0 {
		max, err := r.ReadU32()
		if err != nil {
			return Limits{}, err
		}
		max64 := uint64(max)
		limits.Max = &max64
	}
	return limits, nil
}

func readGlobalType(r *binary.Reader) (GlobalType, error) {
	vt, err := r.ReadByte()
	if err != nil {
		return GlobalType{}, err
	}
	mut, err := r.ReadByte()
	if err != nil {
		return GlobalType{}, err
	}
	return GlobalType{ValType: ValType(vt), Mutable: mut == 1}, nil
}

func parseTableSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Tables = make([]TableType, count)
	for i := uint32(0); i < count; i++ {
		m.Tables[i], err = readTableType(r)
		if err != nil {
			return err
		}
	}
	return nil
}

func parseMemorySection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Memories = make([]MemoryType, count)
	for i := uint32(0); i < count; i++ {
		limits, err := readLimits(r)
		if err != nil {
			return err
		}
		m.Memories[i] = MemoryType{Limits: limits}
	}
	return nil
}

func parseGlobalSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Globals = make([]Global, count)
	for i := uint32(0); i < count; i++ {
		gt, err := readGlobalType(r)
		if err != nil {
			return err
		}
		init, err := readInitExpr(r)
		if err != nil {
			return err
		}
		m.Globals[i] = Global{Type: gt, Init: init}
	}
	return nil
}

// readInitExpr reads a constant expression up to and including its end
// opcode, returning the raw bytes without the terminator.
func readInitExpr(r *binary.Reader) ([]byte, error) {
	var out bytes.Buffer
	for {
		op, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if op == OpEnd {
			return out.Bytes(), nil
		}
		out.WriteByte(op)
		switch op {
		case OpI32Const:
			v, err := r.ReadS32()
			if err != nil {
				return nil, err
			}
			WriteLEB128s(&out, v)
		case OpI64Const:
			// Re-read as raw LEB bytes via the shared reader
			var tmp bytes.Buffer
			for {
				b, err := r.ReadByte()
				if err != nil {
					return nil, err
				}
				tmp.WriteByte(b)
				if b&0x80 == 0 {
					break
				}
			}
			out.Write(tmp.Bytes())
		case OpF32Const:
			buf, err := r.ReadBytes(4)
			if err != nil {
				return nil, err
			}
			out.Write(buf)
		case OpF64Const:
			buf, err := r.ReadBytes(8)
			if err != nil {
				return nil, err
			}
			out.Write(buf)
		case OpGlobalGet:
			idx, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			WriteLEB128u(&out, idx)
		default:
			return nil, fmt.Errorf("unsupported opcode 0x%02x in constant expression", op)
		}
	}
}

func parseExportSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Exports = make([]Export, count)
	for i := uint32(0); i < count; i++ {
		name, err := r.ReadName()
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return err
		}
		idx, err := r.ReadU32()
		if err != nil {
			return err
		}
		m.Exports[i] = Export{Name: name, Kind: kind, Idx: idx}
	}
	return nil
}

func parseStartSection(r *binary.Reader, m *Module) error {
	idx, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Start = &idx
	return nil
}

func parseElementSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Elements = make([]Element, count)
	for i := uint32(0); i < count; i++ {
		flags, err := r.ReadU32()
		if err != nil {
			return err
		}
		if flags != 0 {
			return fmt.Errorf("unsupported element segment flags: %d", flags)
		}
		offset, err := readInitExpr(r)
		if err != nil {
			return err
		}
		funcCount, err := r.ReadU32()
		if err != nil {
			return err
		}
		funcIdxs := make([]uint32, funcCount)
		for j := uint32(0); j < funcCount; j++ {
			funcIdxs[j], err = r.ReadU32()
			if err != nil {
				return err
			}
		}
		m.Elements[i] = Element{Flags: flags, Offset: offset, FuncIdxs: funcIdxs}
	}
	return nil
}

func parseCodeSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Code = make([]FuncBody, count)
	for i := uint32(0); i < count; i++ {
		bodySize, err := r.ReadU32()
		if err != nil {
			return err
		}
		body, err := r.ReadBytes(int(bodySize))
		if err != nil {
			return err
		}
		fb, err := parseFuncBody(body)
		if err != nil {
			return fmt.Errorf("function body %d: %w", i, err)
		}
		m.Code[i] = fb
	}
	return nil
}

func parseFuncBody(body []byte) (FuncBody, error) {
	r := binary.NewReader(bytes.NewReader(body))
	localCount, err := r.ReadU32()
	if err != nil {
		return FuncBody{}, err
	}
	locals := make([]LocalEntry, localCount)
	for i := uint32(0); i < localCount; i++ {
		n, err := r.ReadU32()
		if err != nil {
			return FuncBody{}, err
		}
		vt, err := r.ReadByte()
		if err != nil {
			return FuncBody{}, err
		}
		locals[i] = LocalEntry{Count: n, ValType: ValType(vt)}
	}
	code, err := r.ReadRemaining()
	if err != nil {
		return FuncBody{}, err
	}
	return FuncBody{Locals: locals, Code: code}, nil
}

func parseDataSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Data = make([]DataSegment, count)
	for i := uint32(0); i < count; i++ {
		flags, err := r.ReadU32()
		if err != nil {
			return err
		}
		seg := DataSegment{Flags: flags}
		switch flags {
		case 0:
			seg.Offset, err = readInitExpr(r)
			if err != nil {
				return err
			}
		case 1:
			// Passive segment: no offset
		case 2:
			seg.MemIdx, err = r.ReadU32()
			if err != nil {
				return err
			}
			seg.Offset, err = readInitExpr(r)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported data segment flags: %d", flags)
		}
		size, err := r.ReadU32()
		if err != nil {
			return err
		}
		seg.Init, err = r.ReadBytes(int(size))
		if err != nil {
			return err
		}
		m.Data[i] = seg
	}
	return nil
}
