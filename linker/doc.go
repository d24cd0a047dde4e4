// Package linker applies relocations to loaded code blobs.
//
// # Main Types
//
//   - Relocation: one patch instruction, external (by symbol name) or
//     internal (relative to the code base)
//   - Linker: resolves external names against a host symbol table and
//     applies a relocation list to one code blob
//
// Every patch goes through PatchWord, which bounds-checks the offset
// against the blob before touching memory.
//
// # Patch Arithmetic
//
// For an external relocation with resolved address S, existing word A
// and patch site address P:
//
//	8-byte words: S + A
//	4-byte words: S + A - P  (PC-relative)
//
// An internal relocation stores base(code) + A.
//
// # Example
//
//	l := linker.New(table)
//	relocs, _ := linker.Compile(obj.Relocations)
//	if err := l.Link("box", code.Bytes(), code.Addr(), relocs); err != nil {
//	    // asset rejected
//	}
package linker
