package linker

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/symbols"
)

// HostWordSize is the pointer size of the running process.
const HostWordSize = int(unsafe.Sizeof(uintptr(0)))

// Options configures linker behavior.
type Options struct {
	// WordSize is the patched word size. Zero means HostWordSize; any
	// other value must equal it, since code only ever runs in this process.
	WordSize int
}

// DefaultOptions returns default linker configuration.
func DefaultOptions() Options {
	return Options{WordSize: HostWordSize}
}

// Linker resolves external symbols against a fixed table and applies
// relocation lists. It holds no per-asset state.
type Linker struct {
	resolver symbols.Resolver
	options  Options
}

// New creates a Linker with default options.
func New(resolver symbols.Resolver) *Linker {
	return NewWithOptions(resolver, DefaultOptions())
}

// NewWithOptions creates a Linker with the given options.
func NewWithOptions(resolver symbols.Resolver, opts Options) *Linker {
	if opts.WordSize == 0 {
		opts.WordSize = HostWordSize
	}
	return &Linker{resolver: resolver, options: opts}
}

// Options returns the configuration.
func (l *Linker) Options() Options {
	return l.options
}

// Link patches code, located at base, with every relocation in relocs.
// The first unresolved symbol or out-of-range offset aborts linking;
// code may then be partially patched and must be discarded.
func (l *Linker) Link(asset string, code []byte, base uintptr, relocs []Relocation) error {
	if l.options.WordSize != HostWordSize {
		return errors.New(errors.PhaseRelocate, errors.KindUnsupported).
			Asset(asset).
			Value(l.options.WordSize).
			Detail("word size %d, host words are %d bytes", l.options.WordSize, HostWordSize).
			Build()
	}
	return l.link(asset, code, base, relocs, l.options.WordSize)
}

// link patches with an explicit word size. 4-byte external words are
// PC-relative.
func (l *Linker) link(asset string, code []byte, base uintptr, relocs []Relocation, size int) error {
	w, err := NewWord(code, base, size)
	if err != nil {
		return err
	}
	pcRelative := size == 4

	for _, r := range relocs {
		switch r.Kind {
		case External:
			s, ok := l.resolver.Lookup(r.Symbol)
			if !ok {
				Logger().Debug("unresolved symbol",
					zap.String("asset", asset),
					zap.String("symbol", r.Symbol))
				return errors.MissingSymbol(asset, r.Symbol)
			}
			err = w.PatchWord(r.Offset, func(a, p uint64) uint64 {
				if pcRelative {
					return uint64(s) + a - p
				}
				return uint64(s) + a
			})
		case Internal:
			err = w.PatchWord(r.Offset, func(a, _ uint64) uint64 {
				return uint64(base) + a
			})
		default:
			err = errors.InvalidData(errors.PhaseRelocate, nil, "unknown relocation kind "+r.Kind.String())
		}
		if err != nil {
			if e, ok := err.(*errors.Error); ok && e.Asset == "" {
				e.Asset = asset
			}
			return err
		}
	}

	Logger().Debug("linked",
		zap.String("asset", asset),
		zap.Int("relocations", len(relocs)),
		zap.Int("code_size", len(code)))
	return nil
}
