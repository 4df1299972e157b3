package wasm

import (
	"bytes"
	"fmt"

	"github.com/wippyai/wasm-ir/wasm/internal/binary"
)

// Name section subsection IDs
const (
	nameSubsectionModule   = 0
	nameSubsectionFunction = 1
	nameSubsectionLocal    = 2
)

// Names holds the debug names recovered from a module's "name" custom
// section. Indices are in the combined import + declared index spaces.
type Names struct {
	Module     string
	FuncNames  map[uint32]string
	LocalNames map[uint32]map[uint32]string
}

// FuncName returns the debug name for a function, or "" when none exists.
func (n *Names) FuncName(funcIdx uint32) string {
	if n == nil {
		return ""
	}
	return n.FuncNames[funcIdx]
}

// LocalName returns the debug name for a local of a function, or "" when
// none exists.
func (n *Names) LocalName(funcIdx, localIdx uint32) string {
	if n == nil {
		return ""
	}
	return n.LocalNames[funcIdx][localIdx]
}

// ParseNames decodes the "name" custom section if present. A missing
// name section yields an empty Names, not an error. Unknown subsections
// are skipped.
func (m *Module) ParseNames() (*Names, error) {
	names := &Names{
		FuncNames:  make(map[uint32]string),
		LocalNames: make(map[uint32]map[uint32]string),
	}

	var data []byte
	for i := range m.CustomSections {
		if m.CustomSections[i].Name == "name" {
			data = m.CustomSections[i].Data
			break
		}
	}
	if data == nil {
		return names, nil
	}

	r := binary.NewReader(bytes.NewReader(data))
	for {
		id, err := r.ReadByte()
		if err != nil {
			// Subsections run to the end of the section
			break
		}
		size, err := r.ReadU32()
		if err != nil {
			return nil, r.WrapError("name subsection size", err)
		}
		sub, err := r.ReadBytes(int(size))
		if err != nil {
			return nil, r.WrapError("name subsection data", err)
		}
		sr := binary.NewReader(bytes.NewReader(sub))

		switch id {
		case nameSubsectionModule:
			names.Module, err = sr.ReadName()
			if err != nil {
				return nil, fmt.Errorf("module name: %w", err)
			}
		case nameSubsectionFunction:
			if err := parseNameMap(sr, names.FuncNames); err != nil {
				return nil, fmt.Errorf("function names: %w", err)
			}
		case nameSubsectionLocal:
			count, err := sr.ReadU32()
			if err != nil {
				return nil, fmt.Errorf("local names: %w", err)
			}
			for i := uint32(0); i < count; i++ {
				funcIdx, err := sr.ReadU32()
				if err != nil {
					return nil, fmt.Errorf("local names: %w", err)
				}
				locals := make(map[uint32]string)
				if err := parseNameMap(sr, locals); err != nil {
					return nil, fmt.Errorf("local names for function %d: %w", funcIdx, err)
				}
				names.LocalNames[funcIdx] = locals
			}
		default:
			// Skip label, type, and other subsections
		}
	}

	return names, nil
}

func parseNameMap(r *binary.Reader, into map[uint32]string) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		idx, err := r.ReadU32()
		if err != nil {
			return err
		}
		name, err := r.ReadName()
		if err != nil {
			return err
		}
		into[idx] = name
	}
	return nil
}
