package abi

import (
	"sort"

	"github.com/wippyai/scene-runtime/container"
)

// TextureInfo is a loaded, callable texture.
type TextureInfo struct {
	Name       string
	Type       AttributeType
	GlobalSize int
	Code       TextureCode
}

// SceneInfo is a loaded, callable scene with its metadata. Attributes,
// attribute sets, objects and the clips of each set are sorted by name.
type SceneInfo struct {
	Name            string
	Nodes           []container.Node
	Attributes      []container.Attribute
	TextureBindings []container.TextureBinding
	AttributeSets   []container.AttributeSet
	Clips           []container.Clip
	Objects         []container.ObjectID
	GlobalSize      int
	InstanceSize    int
	Code            SceneCode
}

// SceneIndex finds a scene by name in a name-sorted list, or returns -1.
func SceneIndex(scenes []SceneInfo, name string) int {
	return find(len(scenes), name, func(i int) string { return scenes[i].Name })
}

// AttributeIndex finds an attribute by name, or returns -1.
func (s *SceneInfo) AttributeIndex(name string) int {
	return find(len(s.Attributes), name, func(i int) string { return s.Attributes[i].Name })
}

// AttributeSetIndex finds an attribute set by name, or returns -1.
func (s *SceneInfo) AttributeSetIndex(name string) int {
	return find(len(s.AttributeSets), name, func(i int) string { return s.AttributeSets[i].Name })
}

// ObjectIndex finds an object by name, or returns -1. Instanced objects
// carry their index in brackets, e.g. "pCubeShape1[0]".
func (s *SceneInfo) ObjectIndex(name string) int {
	return find(len(s.Objects), name, func(i int) string { return s.Objects[i].Name })
}

// SetClips returns the clips of an attribute set, or nil when the set's
// range lies outside the clip list.
func (s *SceneInfo) SetClips(set *container.AttributeSet) []container.Clip {
	begin := int(set.ClipIndex)
	end := begin + int(set.NumClips)
	if end > len(s.Clips) || begin > end {
		return nil
	}
	return s.Clips[begin:end]
}

// ClipIndex finds a clip by name among the clips of set and returns its
// index relative to the set, or -1.
func (s *SceneInfo) ClipIndex(set *container.AttributeSet, name string) int {
	clips := s.SetClips(set)
	return find(len(clips), name, func(i int) string { return clips[i].Name })
}

func find(n int, name string, key func(int) string) int {
	i := sort.Search(n, func(i int) bool { return key(i) >= name })
	if i < n && key(i) == name {
		return i
	}
	return -1
}
