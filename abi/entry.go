package abi

import (
	"github.com/wippyai/scene-runtime/container"
	"github.com/wippyai/scene-runtime/errors"
)

// Lifecycle entry point names as exported by compiled assets.
const (
	EntryInitGlobal     = "initGlobal"
	EntryDoneGlobal     = "doneGlobal"
	EntryInitInstance   = "initInstance"
	EntryDoneInstance   = "doneInstance"
	EntryAddClip        = "addClip"
	EntryUpdate         = "update"
	EntryGetBoundingBox = "getBoundingBox"
	EntryRender         = "render"
	EntryCopy           = "copy"
)

// SceneEntries lists the mandatory scene entry points in binding order.
var SceneEntries = []string{
	EntryInitGlobal,
	EntryDoneGlobal,
	EntryInitInstance,
	EntryDoneInstance,
	EntryAddClip,
	EntryUpdate,
	EntryGetBoundingBox,
	EntryRender,
}

// TextureEntries lists the mandatory texture entry points.
var TextureEntries = []string{
	EntryInitGlobal,
	EntryDoneGlobal,
	EntryCopy,
}

// EntryPoint is a bound public symbol.
type EntryPoint struct {
	Name   string
	Offset uint64
	Addr   uintptr
}

// SceneEntryPoints holds every mandatory scene entry point.
type SceneEntryPoints struct {
	InitGlobal     EntryPoint
	DoneGlobal     EntryPoint
	InitInstance   EntryPoint
	DoneInstance   EntryPoint
	AddClip        EntryPoint
	Update         EntryPoint
	GetBoundingBox EntryPoint
	Render         EntryPoint
}

// TextureEntryPoints holds every mandatory texture entry point.
type TextureEntryPoints struct {
	InitGlobal EntryPoint
	DoneGlobal EntryPoint
	Copy       EntryPoint
}

// bind picks the lifecycle publics out of publics. Symbols with unknown
// names are ignored; later duplicates win. Offsets must lie inside the
// code blob.
func bind(asset string, publics []container.Public, base uintptr, codeSize int, names []string) (map[string]EntryPoint, error) {
	bound := make(map[string]EntryPoint, len(names))
	for _, p := range publics {
		known := false
		for _, n := range names {
			if p.Name == n {
				known = true
				break
			}
		}
		if !known {
			continue
		}
		if p.Offset >= uint64(codeSize) {
			return nil, errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
				Asset(asset).
				Symbol(p.Name).
				Value(p.Offset).
				Detail("entry point offset %d outside code of %d bytes", p.Offset, codeSize).
				Build()
		}
		bound[p.Name] = EntryPoint{Name: p.Name, Offset: p.Offset, Addr: base + uintptr(p.Offset)}
	}
	for _, n := range names {
		if _, ok := bound[n]; !ok {
			return nil, errors.MissingEntryPoint(asset, n)
		}
	}
	return bound, nil
}

// BindScene resolves the scene entry points of an asset whose code was
// placed at base. It fails with KindMissingEntryPoint unless all eight are
// present.
func BindScene(asset string, publics []container.Public, base uintptr, codeSize int) (*SceneEntryPoints, error) {
	m, err := bind(asset, publics, base, codeSize, SceneEntries)
	if err != nil {
		return nil, err
	}
	return &SceneEntryPoints{
		InitGlobal:     m[EntryInitGlobal],
		DoneGlobal:     m[EntryDoneGlobal],
		InitInstance:   m[EntryInitInstance],
		DoneInstance:   m[EntryDoneInstance],
		AddClip:        m[EntryAddClip],
		Update:         m[EntryUpdate],
		GetBoundingBox: m[EntryGetBoundingBox],
		Render:         m[EntryRender],
	}, nil
}

// BindTexture resolves the texture entry points of an asset.
func BindTexture(asset string, publics []container.Public, base uintptr, codeSize int) (*TextureEntryPoints, error) {
	m, err := bind(asset, publics, base, codeSize, TextureEntries)
	if err != nil {
		return nil, err
	}
	return &TextureEntryPoints{
		InitGlobal: m[EntryInitGlobal],
		DoneGlobal: m[EntryDoneGlobal],
		Copy:       m[EntryCopy],
	}, nil
}
