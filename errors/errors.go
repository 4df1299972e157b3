package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // binary to instruction stream
	PhaseValidate Phase = "validate" // stream validation against the module
	PhaseBuild    Phase = "build"    // instruction stream to expression graph
	PhaseRender   Phase = "render"   // textual / graph output
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidData    Kind = "invalid_data"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindUnsupported    Kind = "unsupported"
	KindUnresolvedRef  Kind = "unresolved_ref"
	KindStackUnderflow Kind = "stack_underflow"
	KindInvalidTarget  Kind = "invalid_target"
)

// Error is the structured error type used throughout the toolkit.
// Index is the instruction index (or byte offset during decode) the
// error refers to; negative means not applicable.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Index  int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Index >= 0 {
		fmt.Fprintf(&b, " (instruction %d)", e.Index)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			Index: -1,
		},
	}
}

// Path sets the context path (function, block, field)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Index sets the instruction index or byte offset
func (b *Builder) Index(i int) *Builder {
	b.err.Index = i
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnresolvedRef reports an identifier that is not registered in the
// enclosing module (function, global, memory, table, type, or local).
func UnresolvedRef(phase Phase, what string, idx uint32, index int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnresolvedRef,
		Detail: fmt.Sprintf("%s index %d is not registered", what, idx),
		Index:  index,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, what string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("%s index %d out of bounds (length %d)", what, index, length),
		Index:  -1,
	}
}

// StackUnderflow reports an operand stack underflow during graph
// construction. Validated input never triggers this.
func StackUnderflow(index int, need, have int) *Error {
	return &Error{
		Phase:  PhaseBuild,
		Kind:   KindStackUnderflow,
		Detail: fmt.Sprintf("need %d operands, have %d", need, have),
		Index:  index,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
		Index:  -1,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
		Index:  -1,
	}
}

// InvalidTarget reports a branch whose resolved target is not a block.
func InvalidTarget(index int, detail string) *Error {
	return &Error{
		Phase:  PhaseBuild,
		Kind:   KindInvalidTarget,
		Detail: detail,
		Index:  index,
	}
}

// Wrap wraps an existing error with phase and kind context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
		Index:  -1,
	}
}
