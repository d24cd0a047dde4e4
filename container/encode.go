package container

import (
	"io"

	"github.com/wippyai/scene-runtime/internal/binary"
)

// Encode serializes the container. Skipped records are written as a bare
// empty name.
func (f *File) Encode() []byte {
	w := binary.NewWriter()

	w.WriteUint(uint64(len(f.Textures)))
	for i := range f.Textures {
		writeTexture(w, &f.Textures[i])
	}

	w.WriteUint(uint64(len(f.Scenes)))
	for i := range f.Scenes {
		writeScene(w, &f.Scenes[i])
	}

	return w.Bytes()
}

// WriteTo writes the encoded container to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Encode())
	return int64(n), err
}

func writeTexture(w *binary.Writer, t *Texture) {
	w.WriteString(t.Name)
	if t.Skipped() {
		return
	}
	w.WriteUint(uint64(t.Type))
	writeObject(w, &t.Object)
	w.WriteUint(uint64(t.GlobalSize))
}

func writeScene(w *binary.Writer, s *Scene) {
	w.WriteString(s.Name)
	if s.Skipped() {
		return
	}
	writeObject(w, &s.Object)
	w.WriteUint(uint64(s.GlobalSize))
	w.WriteUint(uint64(s.InstanceSize))

	w.WriteUint(uint64(len(s.Nodes)))
	for _, n := range s.Nodes {
		w.WriteString(n.Name)
		w.WriteUint(uint64(n.Type))
	}

	w.WriteUint(uint64(len(s.Attributes)))
	for _, a := range s.Attributes {
		w.WriteString(a.Name)
		w.WriteUint(uint64(a.Type))
		w.WriteUint(uint64(a.Offset))
		w.WriteString(a.Semantic)
	}

	w.WriteUint(uint64(len(s.TextureBindings)))
	for _, b := range s.TextureBindings {
		w.WriteUint(uint64(b.TextureIndex))
		w.WriteUint(uint64(b.Type))
		w.WriteUint(uint64(b.Offset))
	}

	w.WriteUint(uint64(len(s.AttributeSets)))
	for _, a := range s.AttributeSets {
		w.WriteString(a.Name)
		w.WriteUint(uint64(a.Offset))
		w.WriteUint(uint64(a.NumTracks))
		w.WriteUint(uint64(a.ClipIndex))
		w.WriteUint(uint64(a.NumClips))
	}

	w.WriteUint(uint64(len(s.Clips)))
	for _, c := range s.Clips {
		w.WriteString(c.Name)
		w.WriteUint(uint64(c.Index))
		w.WriteF32(c.Length)
	}

	w.WriteUint(uint64(len(s.Objects)))
	for _, o := range s.Objects {
		w.WriteString(o.Name)
		w.WriteUint(o.Offset)
	}
}

func writeObject(w *binary.Writer, o *Object) {
	w.WriteBlob(o.Data)
	w.WriteBlob(o.Code)

	w.WriteUint(uint64(len(o.Publics)))
	for _, p := range o.Publics {
		w.WriteString(p.Name)
		w.WriteUint(p.Offset)
	}

	rel := &o.Relocations
	w.WriteUint(uint64(len(rel.Names)))
	for _, name := range rel.Names {
		w.WriteString(name)
	}
	w.WriteUint(uint64(len(rel.External)))
	for _, e := range rel.External {
		w.WriteUint(uint64(e.NameIndex))
		w.WriteUint(e.Offset)
	}
	w.WriteUint(uint64(len(rel.Internal)))
	for _, off := range rel.Internal {
		w.WriteUint(off)
	}
}
