package container

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/internal/binary"
)

// preallocation cap for counts read from the stream
const maxPrealloc = 1024

// Parse decodes a container held in memory.
func Parse(data []byte) (*File, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a complete container from r. Every record is consumed in
// full, including records whose code will later be rejected, so one bad
// asset never desynchronizes the stream.
func Decode(r io.Reader) (*File, error) {
	br := binary.NewReader(r)
	f := &File{}

	numTextures, err := br.ReadSize()
	if err != nil {
		return nil, errors.Decode([]string{"textures"}, err)
	}
	f.Textures = make([]Texture, 0, min(numTextures, maxPrealloc))
	for i := 0; i < numTextures; i++ {
		var t Texture
		if err := parseTexture(br, &t); err != nil {
			return nil, errors.Decode([]string{"textures", strconv.Itoa(i)}, err)
		}
		f.Textures = append(f.Textures, t)
	}

	numScenes, err := br.ReadSize()
	if err != nil {
		return nil, errors.Decode([]string{"scenes"}, err)
	}
	f.Scenes = make([]Scene, 0, min(numScenes, maxPrealloc))
	for i := 0; i < numScenes; i++ {
		var s Scene
		if err := parseScene(br, &s); err != nil {
			return nil, errors.Decode([]string{"scenes", strconv.Itoa(i)}, err)
		}
		f.Scenes = append(f.Scenes, s)
	}

	return f, nil
}

func parseTexture(r *binary.Reader, t *Texture) error {
	name, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	t.Name = name
	if t.Skipped() {
		return nil
	}

	if t.Type, err = r.ReadU32(); err != nil {
		return fmt.Errorf("type: %w", err)
	}
	if err := parseObject(r, &t.Object); err != nil {
		return err
	}
	if t.GlobalSize, err = r.ReadU32(); err != nil {
		return fmt.Errorf("global size: %w", err)
	}
	return nil
}

func parseScene(r *binary.Reader, s *Scene) error {
	name, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	s.Name = name
	if s.Skipped() {
		return nil
	}

	if err := parseObject(r, &s.Object); err != nil {
		return err
	}
	if s.GlobalSize, err = r.ReadU32(); err != nil {
		return fmt.Errorf("global size: %w", err)
	}
	if s.InstanceSize, err = r.ReadU32(); err != nil {
		return fmt.Errorf("instance size: %w", err)
	}
	if err := parseNodes(r, s); err != nil {
		return fmt.Errorf("nodes: %w", err)
	}
	if err := parseAttributes(r, s); err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	if err := parseTextureBindings(r, s); err != nil {
		return fmt.Errorf("texture bindings: %w", err)
	}
	if err := parseAttributeSets(r, s); err != nil {
		return fmt.Errorf("attribute sets: %w", err)
	}
	if err := parseClips(r, s); err != nil {
		return fmt.Errorf("clips: %w", err)
	}
	if err := parseObjectIDs(r, s); err != nil {
		return fmt.Errorf("objects: %w", err)
	}
	return nil
}

// parseObject reads data, code, public symbols and relocations.
func parseObject(r *binary.Reader, o *Object) error {
	var err error
	if o.Data, err = r.ReadBlob(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if o.Code, err = r.ReadBlob(); err != nil {
		return fmt.Errorf("code: %w", err)
	}

	n, err := r.ReadSize()
	if err != nil {
		return fmt.Errorf("publics: %w", err)
	}
	o.Publics = make([]Public, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var p Public
		if p.Name, err = r.ReadString(); err != nil {
			return fmt.Errorf("public %d: %w", i, err)
		}
		if p.Offset, err = r.ReadUint(); err != nil {
			return fmt.Errorf("public %d: %w", i, err)
		}
		o.Publics = append(o.Publics, p)
	}

	if err := parseRelocations(r, &o.Relocations); err != nil {
		return fmt.Errorf("relocations: %w", err)
	}
	return nil
}

func parseRelocations(r *binary.Reader, rel *Relocations) error {
	n, err := r.ReadSize()
	if err != nil {
		return err
	}
	rel.Names = make([]string, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		name, err := r.ReadString()
		if err != nil {
			return fmt.Errorf("name %d: %w", i, err)
		}
		rel.Names = append(rel.Names, name)
	}

	if n, err = r.ReadSize(); err != nil {
		return err
	}
	rel.External = make([]ExternalRelocation, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var e ExternalRelocation
		if e.NameIndex, err = r.ReadU32(); err != nil {
			return fmt.Errorf("external %d: %w", i, err)
		}
		if e.Offset, err = r.ReadUint(); err != nil {
			return fmt.Errorf("external %d: %w", i, err)
		}
		rel.External = append(rel.External, e)
	}

	if n, err = r.ReadSize(); err != nil {
		return err
	}
	rel.Internal = make([]uint64, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		off, err := r.ReadUint()
		if err != nil {
			return fmt.Errorf("internal %d: %w", i, err)
		}
		rel.Internal = append(rel.Internal, off)
	}
	return nil
}

func parseNodes(r *binary.Reader, s *Scene) error {
	n, err := r.ReadSize()
	if err != nil {
		return err
	}
	s.Nodes = make([]Node, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var node Node
		if node.Name, err = r.ReadString(); err != nil {
			return err
		}
		if node.Type, err = r.ReadU32(); err != nil {
			return err
		}
		s.Nodes = append(s.Nodes, node)
	}
	return nil
}

func parseAttributes(r *binary.Reader, s *Scene) error {
	n, err := r.ReadSize()
	if err != nil {
		return err
	}
	s.Attributes = make([]Attribute, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var a Attribute
		if a.Name, err = r.ReadString(); err != nil {
			return err
		}
		if a.Type, err = r.ReadU32(); err != nil {
			return err
		}
		if a.Offset, err = r.ReadU32(); err != nil {
			return err
		}
		if a.Semantic, err = r.ReadString(); err != nil {
			return err
		}
		s.Attributes = append(s.Attributes, a)
	}
	return nil
}

func parseTextureBindings(r *binary.Reader, s *Scene) error {
	n, err := r.ReadSize()
	if err != nil {
		return err
	}
	s.TextureBindings = make([]TextureBinding, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var b TextureBinding
		if b.TextureIndex, err = r.ReadU32(); err != nil {
			return err
		}
		if b.Type, err = r.ReadU32(); err != nil {
			return err
		}
		if b.Offset, err = r.ReadU32(); err != nil {
			return err
		}
		s.TextureBindings = append(s.TextureBindings, b)
	}
	return nil
}

func parseAttributeSets(r *binary.Reader, s *Scene) error {
	n, err := r.ReadSize()
	if err != nil {
		return err
	}
	s.AttributeSets = make([]AttributeSet, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var a AttributeSet
		if a.Name, err = r.ReadString(); err != nil {
			return err
		}
		if a.Offset, err = r.ReadU32(); err != nil {
			return err
		}
		if a.NumTracks, err = r.ReadU32(); err != nil {
			return err
		}
		if a.ClipIndex, err = r.ReadU32(); err != nil {
			return err
		}
		if a.NumClips, err = r.ReadU32(); err != nil {
			return err
		}
		s.AttributeSets = append(s.AttributeSets, a)
	}
	return nil
}

func parseClips(r *binary.Reader, s *Scene) error {
	n, err := r.ReadSize()
	if err != nil {
		return err
	}
	s.Clips = make([]Clip, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var c Clip
		if c.Name, err = r.ReadString(); err != nil {
			return err
		}
		if c.Index, err = r.ReadU32(); err != nil {
			return err
		}
		if c.Length, err = r.ReadF32(); err != nil {
			return err
		}
		s.Clips = append(s.Clips, c)
	}
	return nil
}

func parseObjectIDs(r *binary.Reader, s *Scene) error {
	n, err := r.ReadSize()
	if err != nil {
		return err
	}
	s.Objects = make([]ObjectID, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var o ObjectID
		if o.Name, err = r.ReadString(); err != nil {
			return err
		}
		if o.Offset, err = r.ReadUint(); err != nil {
			return err
		}
		s.Objects = append(s.Objects, o)
	}
	return nil
}
