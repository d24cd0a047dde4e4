package linker

import (
	"fmt"

	"github.com/wippyai/scene-runtime/container"
	"github.com/wippyai/scene-runtime/errors"
)

// Kind selects how a relocation computes its value.
type Kind uint8

const (
	// External patches a word with a host symbol address.
	External Kind = iota
	// Internal patches a word with the code base address.
	Internal
)

func (k Kind) String() string {
	switch k {
	case External:
		return "external"
	case Internal:
		return "internal"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Relocation is one patch instruction.
type Relocation struct {
	Symbol string // External only
	Offset uint64
	Kind   Kind
}

// Compile flattens the container relocation tables into an instruction
// list, externals first. Name indices are validated here so Link never
// sees a dangling reference.
func Compile(rel container.Relocations) ([]Relocation, error) {
	out := make([]Relocation, 0, len(rel.External)+len(rel.Internal))
	for i, e := range rel.External {
		if int(e.NameIndex) >= len(rel.Names) {
			return nil, errors.OutOfBounds(errors.PhaseRelocate,
				[]string{"external", fmt.Sprint(i), "name"}, int(e.NameIndex), len(rel.Names))
		}
		out = append(out, Relocation{Kind: External, Offset: e.Offset, Symbol: rel.Names[e.NameIndex]})
	}
	for _, off := range rel.Internal {
		out = append(out, Relocation{Kind: Internal, Offset: off})
	}
	return out, nil
}
