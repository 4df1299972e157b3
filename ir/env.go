package ir

import (
	"github.com/wippyai/wasm-ir/errors"
	"github.com/wippyai/wasm-ir/wasm"
)

// ModuleEnv adapts a decoded module into the registries the builder
// resolves identifiers against. It also carries the debug names from the
// module's name section, when present.
type ModuleEnv struct {
	Mod   *wasm.Module
	Names *wasm.Names
}

// NewModuleEnv wraps a decoded module, parsing its name section.
func NewModuleEnv(m *wasm.Module) (*ModuleEnv, error) {
	names, err := m.ParseNames()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "name section")
	}
	return &ModuleEnv{Mod: m, Names: names}, nil
}

// FuncSig resolves a function id to its signature, covering imported and
// declared functions.
func (env *ModuleEnv) FuncSig(id FunctionID) (*wasm.FuncType, bool) {
	ft := env.Mod.GetFuncType(uint32(id))
	return ft, ft != nil
}

// TypeSig resolves a type id against the module's type section.
func (env *ModuleEnv) TypeSig(id TypeID) (*wasm.FuncType, bool) {
	if int(id) >= len(env.Mod.Types) {
		return nil, false
	}
	return &env.Mod.Types[id], true
}

// HasGlobal reports whether the global id is registered.
func (env *ModuleEnv) HasGlobal(id GlobalID) bool {
	return int(id) < env.Mod.NumGlobals()
}

// GlobalType resolves a global id to its value type.
func (env *ModuleEnv) GlobalType(id GlobalID) (wasm.ValType, bool) {
	gt := env.Mod.GetGlobalType(uint32(id))
	if gt == nil {
		return 0, false
	}
	return gt.ValType, true
}

// HasTable reports whether the table id is registered.
func (env *ModuleEnv) HasTable(id TableID) bool {
	return int(id) < env.Mod.NumTables()
}

// HasMemory reports whether the memory id is registered.
func (env *ModuleEnv) HasMemory(id MemoryID) bool {
	return int(id) < env.Mod.NumMemories()
}

// NumDeclaredFuncs returns the count of functions declared by the module
// itself, excluding imports.
func (env *ModuleEnv) NumDeclaredFuncs() int {
	return len(env.Mod.Funcs)
}

// BuildDeclaredFunction builds the IR graph for the module's declIdx-th
// declared (non-imported) function, decoding its body and applying debug
// names from the name section.
func (env *ModuleEnv) BuildDeclaredFunction(declIdx int) (*Function, error) {
	if declIdx < 0 || declIdx >= len(env.Mod.Funcs) || declIdx >= len(env.Mod.Code) {
		return nil, errors.OutOfBounds(errors.PhaseBuild, "declared function", declIdx, len(env.Mod.Funcs))
	}

	sig := env.Mod.GetFuncType(uint32(env.Mod.NumImportedFuncs() + declIdx))
	if sig == nil {
		return nil, errors.UnresolvedRef(errors.PhaseBuild, "type", env.Mod.Funcs[declIdx], -1)
	}

	body := env.Mod.Code[declIdx]
	instrs, err := wasm.DecodeInstructions(body.Code)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "function body")
	}

	f, err := BuildFunction(env, *sig, body.Locals, instrs)
	if err != nil {
		return nil, err
	}

	funcIdx := uint32(env.Mod.NumImportedFuncs() + declIdx)
	f.Name = env.Names.FuncName(funcIdx)
	for i := 0; i < f.Locals.Len(); i++ {
		if name := env.Names.LocalName(funcIdx, uint32(i)); name != "" {
			f.Locals.Get(LocalID(i)).Name = name
		}
	}

	return f, nil
}
