//go:build !cgo

package native

import (
	"go.uber.org/zap"

	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/symbols"
)

// Logger returns a no-op logger; without cgo nothing is logged.
func Logger() *zap.Logger { return zap.NewNop() }

// SetLogger is a no-op without cgo.
func SetLogger(*zap.Logger) {}

// Binder refuses every asset when cgo is disabled.
type Binder struct{}

var _ abi.Binder = (*Binder)(nil)

func NewBinder() *Binder { return &Binder{} }

func (*Binder) BindScene(string, *abi.SceneEntryPoints) (abi.SceneCode, error) {
	return nil, errors.Unsupported(errors.PhaseValidate, "native scenes without cgo")
}

func (*Binder) BindTexture(string, *abi.TextureEntryPoints) (abi.TextureCode, error) {
	return nil, errors.Unsupported(errors.PhaseValidate, "native textures without cgo")
}

func (*Binder) Close() error { return nil }

func HostSymbols() []symbols.Symbol { return nil }

func HostStackProbe() uintptr { return 0 }

func HostTable(extra ...symbols.Symbol) *symbols.Table {
	return symbols.NewTable(extra...)
}
