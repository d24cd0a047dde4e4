package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // container stream parsing
	PhaseRelocate Phase = "relocate" // symbol resolution and patching
	PhaseValidate Phase = "validate" // entry point checks
	PhaseAllocate Phase = "allocate" // code and data memory
	PhaseLoad     Phase = "load"     // file loading as a whole
	PhaseRuntime  Phase = "runtime"  // engine operations
	PhaseConfig   Phase = "config"   // configuration parsing
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidData       Kind = "invalid_data"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindAllocation        Kind = "allocation"
	KindMissingSymbol     Kind = "missing_symbol"
	KindMissingEntryPoint Kind = "missing_entry_point"
	KindNotFound          Kind = "not_found"
	KindUnsupported       Kind = "unsupported"
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used throughout the runtime
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Asset  string
	Symbol string
	Detail string
	Path   []string
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

	if e.Asset != "" || e.Symbol != "" {
		b.WriteString(": ")
		switch {
		case e.Asset != "" && e.Symbol != "":
			fmt.Fprintf(&b, "asset %q, symbol %q", e.Asset, e.Symbol)
		case e.Asset != "":
			fmt.Fprintf(&b, "asset %q", e.Asset)
		default:
			fmt.Fprintf(&b, "symbol %q", e.Symbol)
		}
	}

	if e.Detail != "" {
		if e.Asset != "" || e.Symbol != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Asset sets the asset name
func (b *Builder) Asset(name string) *Builder {
	b.err.Asset = name
	return b
}

// Symbol sets the symbol name
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// Decode creates a container stream error
func Decode(path []string, cause error) *Error {
	return &Error{
		Phase: PhaseDecode,
		Kind:  KindInvalidData,
		Path:  path,
		Cause: cause,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(size int, cause error) *Error {
	return &Error{
		Phase:  PhaseAllocate,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Value:  size,
		Cause:  cause,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// MissingSymbol creates an unresolved external symbol error
func MissingSymbol(asset, symbol string) *Error {
	return &Error{
		Phase:  PhaseRelocate,
		Kind:   KindMissingSymbol,
		Asset:  asset,
		Symbol: symbol,
		Detail: "reference to unknown function",
	}
}

// MissingEntryPoint creates a missing mandatory entry point error
func MissingEntryPoint(asset, entry string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindMissingEntryPoint,
		Asset:  asset,
		Symbol: entry,
		Detail: "mandatory entry point not bound",
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a file loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Rejection records why one asset of a container was not loaded
type Rejection struct {
	Err   error
	Asset string
	Kind  string // "texture" or "scene"
	Index int    // raw record index in the container
}

// RejectionsError summarizes every asset rejected while loading a file.
// Loading itself succeeds; this is reported for diagnostics.
type RejectionsError struct {
	Rejections []Rejection
}

// NewRejectionsError returns nil when nothing was rejected
func NewRejectionsError(rejections []Rejection) *RejectionsError {
	if len(rejections) == 0 {
		return nil
	}
	return &RejectionsError{Rejections: rejections}
}

// Symbols returns the sorted, de-duplicated set of unresolved symbol names
func (e *RejectionsError) Symbols() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range e.Rejections {
		var se *Error
		if !stderrors.As(r.Err, &se) || se.Kind != KindMissingSymbol {
			continue
		}
		if _, ok := seen[se.Symbol]; ok {
			continue
		}
		seen[se.Symbol] = struct{}{}
		names = append(names, se.Symbol)
	}
	sort.Strings(names)
	return names
}

func (e *RejectionsError) Error() string {
	if len(e.Rejections) == 0 {
		return "[load] rejected: no assets specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "rejected %d asset(s):\n", len(e.Rejections))

	// Group by kind for cleaner output
	byKind := make(map[string][]Rejection)
	var order []string
	for _, r := range e.Rejections {
		if _, exists := byKind[r.Kind]; !exists {
			order = append(order, r.Kind)
		}
		byKind[r.Kind] = append(byKind[r.Kind], r)
	}

	for _, kind := range order {
		b.WriteString("\n  ")
		b.WriteString(kind)
		b.WriteString(":\n")
		for _, r := range byKind[kind] {
			fmt.Fprintf(&b, "    - #%d %q: %v\n", r.Index, r.Asset, r.Err)
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *RejectionsError) Is(target error) bool {
	_, ok := target.(*RejectionsError)
	return ok
}
