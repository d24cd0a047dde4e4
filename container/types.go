package container

// File is the decoded form of a scene container: every texture record
// followed by every scene record, in stream order.
type File struct {
	Textures []Texture
	Scenes   []Scene
}

// Object is the relocatable code unit shared by texture and scene records.
type Object struct {
	Data        []byte
	Code        []byte
	Publics     []Public
	Relocations Relocations
	GlobalSize  uint32
}

// Public binds a symbol name to a byte offset into Code.
type Public struct {
	Name   string
	Offset uint64
}

// Relocations lists every word in Code that must be patched after loading.
type Relocations struct {
	// Names of external symbols referenced by External.
	Names    []string
	External []ExternalRelocation
	// Internal holds offsets of words patched with the code base address.
	Internal []uint64
}

// ExternalRelocation patches the word at Offset with the address of
// Names[NameIndex].
type ExternalRelocation struct {
	NameIndex uint32
	Offset    uint64
}

// Texture is a texture asset record. A record with an empty Name marks a
// failed write and carries no other fields.
type Texture struct {
	Name string
	Type uint32
	Object
}

// Skipped reports whether the record marks a failed write.
func (t *Texture) Skipped() bool { return t.Name == "" }

// Scene is a scene asset record. A record with an empty Name marks a failed
// write and carries no other fields.
type Scene struct {
	Name string
	Object
	InstanceSize    uint32
	Nodes           []Node
	Attributes      []Attribute
	TextureBindings []TextureBinding
	AttributeSets   []AttributeSet
	Clips           []Clip
	Objects         []ObjectID
}

// Skipped reports whether the record marks a failed write.
func (s *Scene) Skipped() bool { return s.Name == "" }

// Node describes one scene graph node.
type Node struct {
	Name string
	Type uint32
}

// Attribute describes one externally accessible value in instance memory.
// Type holds the attribute type in the low byte and the array length from
// bit 8 upwards.
type Attribute struct {
	Name     string
	Type     uint32
	Offset   uint32
	Semantic string
}

// TextureBinding copies a texture global into instance memory at Offset
// when Type matches the texture's declared type.
type TextureBinding struct {
	TextureIndex uint32
	Type         uint32
	Offset       uint32
}

// AttributeSet is a group of animation tracks controlled as a unit.
type AttributeSet struct {
	Name      string
	Offset    uint32
	NumTracks uint32
	ClipIndex uint32
	NumClips  uint32
}

// Clip is a named animation segment.
type Clip struct {
	Name   string
	Index  uint32
	Length float32
}

// ObjectID locates the pickable object id slot in instance memory.
type ObjectID struct {
	Name   string
	Offset uint64
}
