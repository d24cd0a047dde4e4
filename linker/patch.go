package linker

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/scene-runtime/errors"
)

// Word is a bounds-checked view of the pointer-sized words in a code blob.
type Word struct {
	code []byte
	base uintptr
	size int
}

// NewWord returns a patcher for code located at base with the given word
// size in bytes (4 or 8).
func NewWord(code []byte, base uintptr, size int) (*Word, error) {
	if size != 4 && size != 8 {
		return nil, errors.Unsupported(errors.PhaseRelocate, "word size must be 4 or 8")
	}
	return &Word{code: code, base: base, size: size}, nil
}

// Site returns the address of the word at offset.
func (w *Word) Site(offset uint64) uint64 {
	return uint64(w.base) + offset
}

// PatchWord reads the word at offset, passes it and the patch site address
// to fn, and stores the result truncated to the word size.
func (w *Word) PatchWord(offset uint64, fn func(existing, site uint64) uint64) error {
	if offset > math.MaxInt || int(offset) > len(w.code)-w.size || len(w.code) < w.size {
		return errors.New(errors.PhaseRelocate, errors.KindOutOfBounds).
			Value(offset).
			Detail("%d-byte word at offset %d outside code of %d bytes", w.size, offset, len(w.code)).
			Build()
	}
	p := w.code[offset : offset+uint64(w.size)]
	site := w.Site(offset)
	if w.size == 4 {
		v := fn(uint64(binary.LittleEndian.Uint32(p)), site)
		binary.LittleEndian.PutUint32(p, uint32(v))
		return nil
	}
	v := fn(binary.LittleEndian.Uint64(p), site)
	binary.LittleEndian.PutUint64(p, v)
	return nil
}
