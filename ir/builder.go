package ir

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-ir/errors"
	"github.com/wippyai/wasm-ir/wasm"
)

// frame is one entry of the control stack during construction. block is the
// body currently receiving statements; for an if/else frame it is the
// active arm, and branches resolving to this frame's label target it.
type frame struct {
	stack       []ExprID
	results     []wasm.ValType
	condition   ExprID
	block       BlockID
	consequent  BlockID
	alternative BlockID
	isIf        bool
	elseSeen    bool
	dead        bool
}

type builder struct {
	env    *ModuleEnv
	f      *Function
	frames []*frame
	idx    int

	// Value type of every node currently referencable from an operand
	// stack. Needed to pick the local type when an operand is spilled.
	types map[ExprID]wasm.ValType

	// Nesting depth of skipped control constructs inside dead code.
	deadDepth int
	done      bool
}

// BuildFunction translates a decoded instruction stream into an expression
// graph. sig is the function's declared signature, localEntries the
// grouped local declarations from its body, and instrs the body's decoded
// instructions including the terminating end.
//
// Identifier references the module does not declare are rejected with
// structured errors. Multi-value signatures and block types are outside
// the MVP scope and reported as unsupported.
func BuildFunction(env *ModuleEnv, sig wasm.FuncType, localEntries []wasm.LocalEntry, instrs []wasm.Instruction) (*Function, error) {
	if len(sig.Results) > 1 {
		return nil, errors.Unsupported(errors.PhaseBuild, "multi-value function signature")
	}

	f := NewFunction(sig)
	for _, entry := range localEntries {
		for i := uint32(0); i < entry.Count; i++ {
			f.Locals.Add(entry.ValType)
		}
	}

	b := &builder{env: env, f: f, types: make(map[ExprID]wasm.ValType)}
	b.frames = append(b.frames, &frame{block: f.Entry, results: sig.Results})

	for i := range instrs {
		b.idx = i
		if b.done {
			return nil, errors.InvalidData(errors.PhaseBuild, "instructions after function end")
		}
		if err := b.step(&instrs[i]); err != nil {
			return nil, err
		}
	}
	if !b.done {
		return nil, errors.InvalidData(errors.PhaseBuild, "unterminated function body")
	}

	Logger().Debug("built function graph",
		zap.Int("instructions", len(instrs)),
		zap.Int("nodes", f.Arena.Len()),
		zap.Int("locals", f.Locals.Len()),
	)
	return f, nil
}

func (b *builder) top() *frame {
	return b.frames[len(b.frames)-1]
}

func (b *builder) push(id ExprID) {
	fr := b.top()
	fr.stack = append(fr.stack, id)
}

func (b *builder) pop() (ExprID, error) {
	fr := b.top()
	if len(fr.stack) == 0 {
		return 0, errors.StackUnderflow(b.idx, 1, 0)
	}
	id := fr.stack[len(fr.stack)-1]
	fr.stack = fr.stack[:len(fr.stack)-1]
	return id, nil
}

// popN removes n operands and returns them in evaluation order.
func (b *builder) popN(n int) ([]ExprID, error) {
	if n == 0 {
		return nil, nil
	}
	fr := b.top()
	if len(fr.stack) < n {
		return nil, errors.StackUnderflow(b.idx, n, len(fr.stack))
	}
	args := make([]ExprID, n)
	copy(args, fr.stack[len(fr.stack)-n:])
	fr.stack = fr.stack[:len(fr.stack)-n]
	return args, nil
}

// stmt spills pending operands, then allocates a node and appends it to
// the active block body. The spill keeps the body's order equal to the
// stack machine's side-effect order.
func (b *builder) stmt(e Expr) ExprID {
	fr := b.top()
	b.spill(fr)
	id := b.f.Arena.Alloc(e)
	block := b.f.Arena.Block(fr.block)
	block.Exprs = append(block.Exprs, id)
	return id
}

// value allocates a node of the given result type and pushes it on the
// operand stack.
func (b *builder) value(e Expr, typ wasm.ValType) ExprID {
	id := b.f.Arena.Alloc(e)
	b.types[id] = typ
	b.push(id)
	return id
}

// spill materializes the operands already evaluated in this frame into
// fresh locals, so a statement appended after them cannot overtake their
// evaluation. Constants read nothing and stay put.
func (b *builder) spill(fr *frame) {
	block := b.f.Arena.Block(fr.block)
	for i, id := range fr.stack {
		if _, ok := b.f.Arena.Get(id).(*Const); ok {
			continue
		}
		local := b.f.Locals.Add(b.types[id])
		set := b.f.Arena.Alloc(&LocalSet{Local: local, Value: id})
		block.Exprs = append(block.Exprs, set)
		get := b.f.Arena.Alloc(&LocalGet{Local: local})
		b.types[get] = b.types[id]
		fr.stack[i] = get
	}
}

// branchValueType is the type a branch with arity 1 carries to its
// target, Params for a loop and Results otherwise.
func (b *builder) branchValueType(target BlockID) wasm.ValType {
	block := b.f.Arena.Block(target)
	if block.Kind == BlockKindLoop {
		return block.Params[0]
	}
	return block.Results[0]
}

// labelTarget resolves a relative label depth to the block a branch with
// that label jumps to.
func (b *builder) labelTarget(depth uint32) (BlockID, error) {
	i := len(b.frames) - 1 - int(depth)
	if i < 0 {
		return 0, errors.InvalidTarget(b.idx, "label depth exceeds control stack")
	}
	return b.frames[i].block, nil
}

// flush appends the frame's leftover operands to its block body, in
// evaluation order. The declared results, being on top, land last.
func (b *builder) flush(fr *frame) {
	block := b.f.Arena.Block(fr.block)
	block.Exprs = append(block.Exprs, fr.stack...)
	fr.stack = nil
}

func blockResultTypes(bt int32) ([]wasm.ValType, error) {
	switch bt {
	case wasm.BlockTypeVoid:
		return nil, nil
	case wasm.BlockTypeI32:
		return []wasm.ValType{wasm.ValI32}, nil
	case wasm.BlockTypeI64:
		return []wasm.ValType{wasm.ValI64}, nil
	case wasm.BlockTypeF32:
		return []wasm.ValType{wasm.ValF32}, nil
	case wasm.BlockTypeF64:
		return []wasm.ValType{wasm.ValF64}, nil
	case wasm.BlockTypeV128:
		return []wasm.ValType{wasm.ValV128}, nil
	default:
		if bt >= 0 {
			return nil, errors.Unsupported(errors.PhaseBuild, "type-indexed (multi-value) block type")
		}
		return nil, errors.InvalidData(errors.PhaseBuild, "unknown block type")
	}
}

func (b *builder) step(in *wasm.Instruction) error {
	fr := b.top()

	// Skip dead code, tracking the nesting of skipped constructs so the
	// matching end is not taken for the live frame's end.
	if fr.dead || b.deadDepth > 0 {
		switch in.Opcode {
		case wasm.OpBlock, wasm.OpLoop, wasm.OpIf:
			b.deadDepth++
		case wasm.OpElse:
			if b.deadDepth == 0 {
				return b.elseArm()
			}
		case wasm.OpEnd:
			if b.deadDepth > 0 {
				b.deadDepth--
			} else {
				return b.end()
			}
		}
		return nil
	}

	switch in.Opcode {
	case wasm.OpNop:
		// no node

	case wasm.OpUnreachable:
		b.stmt(&Unreachable{})
		fr.dead = true

	case wasm.OpBlock, wasm.OpLoop:
		results, err := blockResultTypes(in.Imm.(wasm.BlockImm).Type)
		if err != nil {
			return err
		}
		kind := BlockKindBlock
		if in.Opcode == wasm.OpLoop {
			kind = BlockKindLoop
		}
		id := b.f.Arena.AllocBlock(NewBlock(kind, nil, results))
		b.frames = append(b.frames, &frame{block: id, results: results})

	case wasm.OpIf:
		results, err := blockResultTypes(in.Imm.(wasm.BlockImm).Type)
		if err != nil {
			return err
		}
		cond, err := b.pop()
		if err != nil {
			return err
		}
		cons := b.f.Arena.AllocBlock(NewBlock(BlockKindIfElse, nil, results))
		alt := b.f.Arena.AllocBlock(NewBlock(BlockKindIfElse, nil, results))
		b.frames = append(b.frames, &frame{
			block:       cons,
			results:     results,
			condition:   cond,
			consequent:  cons,
			alternative: alt,
			isIf:        true,
		})

	case wasm.OpElse:
		return b.elseArm()

	case wasm.OpEnd:
		return b.end()

	case wasm.OpBr:
		target, err := b.labelTarget(in.Imm.(wasm.BranchImm).LabelIdx)
		if err != nil {
			return err
		}
		args, err := b.popN(b.f.Arena.Block(target).BranchArity())
		if err != nil {
			return err
		}
		b.stmt(&Br{Block: target, Args: args})
		fr.dead = true

	case wasm.OpBrIf:
		target, err := b.labelTarget(in.Imm.(wasm.BranchImm).LabelIdx)
		if err != nil {
			return err
		}
		cond, err := b.pop()
		if err != nil {
			return err
		}
		arity := b.f.Arena.Block(target).BranchArity()
		if arity == 0 {
			b.stmt(&BrIf{Condition: cond, Block: target})
			break
		}
		// A br_if that is not taken leaves its values on the stack, so the
		// node itself carries the value onward.
		args, err := b.popN(arity)
		if err != nil {
			return err
		}
		b.value(&BrIf{Condition: cond, Block: target, Args: args}, b.branchValueType(target))

	case wasm.OpBrTable:
		imm := in.Imm.(wasm.BrTableImm)
		which, err := b.pop()
		if err != nil {
			return err
		}
		def, err := b.labelTarget(imm.Default)
		if err != nil {
			return err
		}
		blocks := make([]BlockID, len(imm.Labels))
		for i, l := range imm.Labels {
			blocks[i], err = b.labelTarget(l)
			if err != nil {
				return err
			}
		}
		args, err := b.popN(b.f.Arena.Block(def).BranchArity())
		if err != nil {
			return err
		}
		b.stmt(&BrTable{Which: which, Blocks: blocks, Default: def, Args: args})
		fr.dead = true

	case wasm.OpReturn:
		values, err := b.popN(len(b.f.Results))
		if err != nil {
			return err
		}
		b.stmt(&Return{Values: values})
		fr.dead = true

	case wasm.OpCall:
		idx := in.Imm.(wasm.CallImm).FuncIdx
		sig, ok := b.env.FuncSig(FunctionID(idx))
		if !ok {
			return errors.UnresolvedRef(errors.PhaseBuild, "function", idx, b.idx)
		}
		if len(sig.Results) > 1 {
			return errors.Unsupported(errors.PhaseBuild, "multi-value call result")
		}
		args, err := b.popN(len(sig.Params))
		if err != nil {
			return err
		}
		node := &Call{Func: FunctionID(idx), Args: args}
		if len(sig.Results) > 0 {
			b.value(node, sig.Results[0])
		} else {
			b.stmt(node)
		}

	case wasm.OpCallIndirect:
		imm := in.Imm.(wasm.CallIndirectImm)
		sig, ok := b.env.TypeSig(TypeID(imm.TypeIdx))
		if !ok {
			return errors.UnresolvedRef(errors.PhaseBuild, "type", imm.TypeIdx, b.idx)
		}
		if !b.env.HasTable(TableID(imm.TableIdx)) {
			return errors.UnresolvedRef(errors.PhaseBuild, "table", imm.TableIdx, b.idx)
		}
		if len(sig.Results) > 1 {
			return errors.Unsupported(errors.PhaseBuild, "multi-value call result")
		}
		fn, err := b.pop()
		if err != nil {
			return err
		}
		args, err := b.popN(len(sig.Params))
		if err != nil {
			return err
		}
		node := &CallIndirect{Type: TypeID(imm.TypeIdx), Table: TableID(imm.TableIdx), Func: fn, Args: args}
		if len(sig.Results) > 0 {
			b.value(node, sig.Results[0])
		} else {
			b.stmt(node)
		}

	case wasm.OpLocalGet:
		local, err := b.localID(in.Imm.(wasm.LocalImm).LocalIdx)
		if err != nil {
			return err
		}
		b.value(&LocalGet{Local: local}, b.f.Locals.Get(local).Type())

	case wasm.OpLocalSet:
		local, err := b.localID(in.Imm.(wasm.LocalImm).LocalIdx)
		if err != nil {
			return err
		}
		value, err := b.pop()
		if err != nil {
			return err
		}
		b.stmt(&LocalSet{Local: local, Value: value})

	case wasm.OpLocalTee:
		local, err := b.localID(in.Imm.(wasm.LocalImm).LocalIdx)
		if err != nil {
			return err
		}
		value, err := b.pop()
		if err != nil {
			return err
		}
		b.value(&LocalTee{Local: local, Value: value}, b.f.Locals.Get(local).Type())

	case wasm.OpGlobalGet:
		idx := in.Imm.(wasm.GlobalImm).GlobalIdx
		typ, ok := b.env.GlobalType(GlobalID(idx))
		if !ok {
			return errors.UnresolvedRef(errors.PhaseBuild, "global", idx, b.idx)
		}
		b.value(&GlobalGet{Global: GlobalID(idx)}, typ)

	case wasm.OpGlobalSet:
		idx := in.Imm.(wasm.GlobalImm).GlobalIdx
		if !b.env.HasGlobal(GlobalID(idx)) {
			return errors.UnresolvedRef(errors.PhaseBuild, "global", idx, b.idx)
		}
		value, err := b.pop()
		if err != nil {
			return err
		}
		b.stmt(&GlobalSet{Global: GlobalID(idx), Value: value})

	case wasm.OpDrop:
		e, err := b.pop()
		if err != nil {
			return err
		}
		b.stmt(&Drop{Expr: e})

	case wasm.OpSelect:
		cond, err := b.pop()
		if err != nil {
			return err
		}
		alt, err := b.pop()
		if err != nil {
			return err
		}
		cons, err := b.pop()
		if err != nil {
			return err
		}
		b.value(&Select{Condition: cond, Consequent: cons, Alternative: alt}, b.types[cons])

	case wasm.OpMemorySize:
		mem, err := b.memoryID(in.Imm.(wasm.MemoryIdxImm).MemIdx)
		if err != nil {
			return err
		}
		b.value(&MemorySize{Memory: mem}, wasm.ValI32)

	case wasm.OpMemoryGrow:
		mem, err := b.memoryID(in.Imm.(wasm.MemoryIdxImm).MemIdx)
		if err != nil {
			return err
		}
		pages, err := b.pop()
		if err != nil {
			return err
		}
		b.value(&MemoryGrow{Memory: mem, Pages: pages}, wasm.ValI32)

	case wasm.OpI32Const:
		b.value(&Const{Value: I32Value(in.Imm.(wasm.I32Imm).Value)}, wasm.ValI32)
	case wasm.OpI64Const:
		b.value(&Const{Value: I64Value(in.Imm.(wasm.I64Imm).Value)}, wasm.ValI64)
	case wasm.OpF32Const:
		b.value(&Const{Value: F32Value(in.Imm.(wasm.F32Imm).Value)}, wasm.ValF32)
	case wasm.OpF64Const:
		b.value(&Const{Value: F64Value(in.Imm.(wasm.F64Imm).Value)}, wasm.ValF64)

	default:
		if kind, ok := loadKindByOpcode[in.Opcode]; ok {
			mem, err := b.memoryID(0)
			if err != nil {
				return err
			}
			imm := in.Imm.(wasm.MemoryImm)
			addr, err := b.pop()
			if err != nil {
				return err
			}
			b.value(&Load{
				Memory:  mem,
				Kind:    kind,
				Arg:     MemArg{Align: imm.Align, Offset: imm.Offset},
				Address: addr,
			}, loadResultType(kind))
			break
		}
		if kind, ok := storeKindByOpcode[in.Opcode]; ok {
			mem, err := b.memoryID(0)
			if err != nil {
				return err
			}
			imm := in.Imm.(wasm.MemoryImm)
			value, err := b.pop()
			if err != nil {
				return err
			}
			addr, err := b.pop()
			if err != nil {
				return err
			}
			b.stmt(&Store{
				Memory:  mem,
				Kind:    kind,
				Arg:     MemArg{Align: imm.Align, Offset: imm.Offset},
				Address: addr,
				Value:   value,
			})
			break
		}
		if op, ok := binopByOpcode[in.Opcode]; ok {
			rhs, err := b.pop()
			if err != nil {
				return err
			}
			lhs, err := b.pop()
			if err != nil {
				return err
			}
			b.value(&Binop{Op: op, LHS: lhs, RHS: rhs}, numericResultType(in.Opcode))
			break
		}
		if op, ok := unopByOpcode[in.Opcode]; ok {
			operand, err := b.pop()
			if err != nil {
				return err
			}
			b.value(&Unop{Op: op, Expr: operand}, numericResultType(in.Opcode))
			break
		}
		return errors.New(errors.PhaseBuild, errors.KindUnsupported).
			Index(b.idx).
			Detail("opcode 0x%02x", in.Opcode).
			Build()
	}

	return nil
}

func (b *builder) localID(idx uint32) (LocalID, error) {
	if int(idx) >= b.f.Locals.Len() {
		return 0, errors.UnresolvedRef(errors.PhaseBuild, "local", idx, b.idx)
	}
	return LocalID(idx), nil
}

func (b *builder) memoryID(idx uint32) (MemoryID, error) {
	if !b.env.HasMemory(MemoryID(idx)) {
		return 0, errors.UnresolvedRef(errors.PhaseBuild, "memory", idx, b.idx)
	}
	return MemoryID(idx), nil
}

// elseArm finishes the consequent arm and makes the alternative the active
// body.
func (b *builder) elseArm() error {
	fr := b.top()
	if !fr.isIf || fr.elseSeen {
		return errors.InvalidData(errors.PhaseBuild, "else without matching if")
	}
	if !fr.dead && len(fr.stack) < len(fr.results) {
		return errors.StackUnderflow(b.idx, len(fr.results), len(fr.stack))
	}
	b.flush(fr)
	fr.block = fr.alternative
	fr.elseSeen = true
	fr.dead = false
	return nil
}

// end closes the innermost frame, handing the finished construct to the
// parent frame as a value or a statement according to its declared results.
func (b *builder) end() error {
	fr := b.top()
	if !fr.dead && len(fr.stack) < len(fr.results) {
		return errors.StackUnderflow(b.idx, len(fr.results), len(fr.stack))
	}
	b.flush(fr)
	b.frames = b.frames[:len(b.frames)-1]

	if len(b.frames) == 0 {
		b.done = true
		return nil
	}

	var id ExprID
	if fr.isIf {
		id = b.f.Arena.Alloc(&IfElse{
			Condition:   fr.condition,
			Consequent:  fr.consequent,
			Alternative: fr.alternative,
		})
	} else {
		id = ExprID(fr.block)
	}

	if len(fr.results) > 0 {
		b.types[id] = fr.results[0]
		b.push(id)
	} else {
		parent := b.top()
		b.spill(parent)
		block := b.f.Arena.Block(parent.block)
		block.Exprs = append(block.Exprs, id)
	}
	return nil
}
