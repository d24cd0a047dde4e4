// Package symbols holds the immutable, name-sorted table of host functions
// that loaded code may call.
package symbols

import (
	"runtime"
	"slices"
	"sort"
	"strings"
)

// Stack probe helpers emitted by compilers on Windows when a function
// allocates more than one guard page of stack.
const (
	ProbeWin64 = "__chkstk"
	ProbeWin32 = "_alloca"
)

// StackProbeName returns the stack probe symbol name for the host, or an
// empty string when the host needs none.
func StackProbeName() string {
	return stackProbeName(runtime.GOOS, runtime.GOARCH)
}

func stackProbeName(goos, goarch string) string {
	if goos != "windows" {
		return ""
	}
	switch goarch {
	case "amd64", "arm64":
		return ProbeWin64
	case "386":
		return ProbeWin32
	}
	return ""
}

// Symbol is one host function visible to loaded code.
type Symbol struct {
	Name string
	Addr uintptr
}

// Resolver maps an external symbol name to its address.
type Resolver interface {
	Lookup(name string) (uintptr, bool)
}

// Table is an immutable, name-sorted set of symbols searched by binary
// search. The zero value is an empty table.
type Table struct {
	syms      []Symbol
	probeName string
	probe     uintptr
}

var _ Resolver = (*Table)(nil)

// Lookup resolves name. The platform stack probe is matched before the
// sorted table is searched.
func (t *Table) Lookup(name string) (uintptr, bool) {
	if t == nil {
		return 0, false
	}
	if t.probe != 0 && name == t.probeName {
		return t.probe, true
	}
	i := sort.Search(len(t.syms), func(i int) bool { return t.syms[i].Name >= name })
	if i < len(t.syms) && t.syms[i].Name == name {
		return t.syms[i].Addr, true
	}
	return 0, false
}

// Len returns the number of sorted symbols, not counting the stack probe.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.syms)
}

// Symbols returns a copy of the sorted symbols.
func (t *Table) Symbols() []Symbol {
	if t == nil {
		return nil
	}
	return slices.Clone(t.syms)
}

// StackProbe returns the stack probe name and address, if one is set.
func (t *Table) StackProbe() (string, uintptr) {
	if t == nil {
		return "", 0
	}
	return t.probeName, t.probe
}

// Builder accumulates symbols. Adding a name twice keeps the last address.
type Builder struct {
	syms      map[string]uintptr
	probeName string
	probe     uintptr
}

// Add registers one symbol. Symbols with a zero address are ignored, which
// drops entry points the current GL context does not provide.
func (b *Builder) Add(name string, addr uintptr) *Builder {
	if addr == 0 || name == "" {
		return b
	}
	if b.syms == nil {
		b.syms = make(map[string]uintptr)
	}
	b.syms[name] = addr
	return b
}

// AddAll registers every symbol in syms.
func (b *Builder) AddAll(syms []Symbol) *Builder {
	for _, s := range syms {
		b.Add(s.Name, s.Addr)
	}
	return b
}

// StackProbe sets the address returned for the host's stack probe name.
// It is ignored on hosts without one.
func (b *Builder) StackProbe(addr uintptr) *Builder {
	b.probeName = StackProbeName()
	if b.probeName != "" {
		b.probe = addr
	}
	return b
}

// Build returns the sorted table.
func (b *Builder) Build() *Table {
	syms := make([]Symbol, 0, len(b.syms))
	for name, addr := range b.syms {
		syms = append(syms, Symbol{Name: name, Addr: addr})
	}
	slices.SortFunc(syms, func(a, b Symbol) int { return strings.Compare(a.Name, b.Name) })
	return &Table{syms: syms, probeName: b.probeName, probe: b.probe}
}

// NewTable builds a table from syms.
func NewTable(syms ...Symbol) *Table {
	var b Builder
	return b.AddAll(syms).Build()
}
