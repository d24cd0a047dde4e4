package engine

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	sceneruntime "github.com/wippyai/scene-runtime"
	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/gpu"
	"github.com/wippyai/scene-runtime/resource"
)

// scene is one instance of a SceneInfo.
type scene struct {
	info     *abi.SceneInfo
	instance sceneruntime.Region

	// memoized handles, -1 until requested
	attributeHandles    []int
	attributeSetHandles []int

	handle int
	group  int
	file   int
}

func (s *scene) mem() []byte {
	return s.instance.Bytes()
}

// destroy runs doneInstance and frees the instance memory.
func (s *scene) destroy() {
	s.info.Code.DoneInstance(s.mem())
	_ = s.instance.Free()
}

func filled(n int) []int {
	hs := make([]int, n)
	for i := range hs {
		hs[i] = resource.Invalid
	}
	return hs
}

// CreateScene instantiates scene index of a file into a group and returns
// the scene handle, or -1.
func (e *Engine) CreateScene(file, index, grp int) int {
	fe, ok := e.files.Get(file)
	if !ok {
		return resource.Invalid
	}
	if index < 0 || index >= len(fe.file.Scenes()) {
		return resource.Invalid
	}
	return e.createScene(file, fe, index, grp)
}

// CreateSceneByName instantiates a scene found by name. Scene names in a
// file are sorted.
func (e *Engine) CreateSceneByName(file int, name string, grp int) int {
	fe, ok := e.files.Get(file)
	if !ok {
		return resource.Invalid
	}
	index := abi.SceneIndex(fe.file.Scenes(), name)
	if index < 0 {
		return resource.Invalid
	}
	return e.createScene(file, fe, index, grp)
}

func (e *Engine) createScene(file int, fe *fileEntry, index, grp int) int {
	g, ok := e.groups.Get(grp)
	if !ok {
		return resource.Invalid
	}
	info := &fe.file.Scenes()[index]
	global := fe.file.SceneGlobal(index)

	instance, err := e.allocator.Data(info.InstanceSize)
	if err != nil {
		Logger().Error("allocate scene instance",
			zap.String("scene", info.Name),
			zap.Int("size", info.InstanceSize),
			zap.Error(err))
		return resource.Invalid
	}

	defer gpu.SetState(e.gl).Restore()

	s := &scene{
		info:                info,
		instance:            instance,
		attributeHandles:    filled(len(info.Attributes)),
		attributeSetHandles: filled(len(info.AttributeSets)),
		group:               grp,
		file:                file,
	}
	info.Code.InitInstance(global, s.mem())
	s.handle = e.scenes.Insert(s)
	g.scenes = append(g.scenes, s)
	fe.scenes = append(fe.scenes, s)

	textures := fe.file.Textures()
	for _, b := range info.TextureBindings {
		ti := int(b.TextureIndex)
		if ti >= len(textures) {
			continue
		}
		if abi.AttributeType(b.Type) != textures[ti].Type {
			continue
		}
		dst := slice(s.mem(), int(b.Offset), len(s.mem())-int(b.Offset))
		if dst == nil {
			continue
		}
		textures[ti].Code.Copy(fe.file.TextureGlobal(ti), dst)
	}
	return s.handle
}

// DeleteScene deletes a scene instance and every handle derived from it.
func (e *Engine) DeleteScene(h int) {
	s, ok := e.scenes.Get(h)
	if !ok {
		return
	}
	if g, ok := e.groups.Get(s.group); ok {
		g.scenes = remove(g.scenes, s)
	}
	if fe, ok := e.files.Get(s.file); ok {
		fe.scenes = remove(fe.scenes, s)
	}
	e.deleteScene(s)
}

func (e *Engine) deleteScene(s *scene) {
	for _, h := range s.attributeHandles {
		if h == resource.Invalid {
			continue
		}
		if sv, ok := e.strings[h]; ok {
			_ = sv.mem.Free()
			delete(e.strings, h)
		}
		e.attributes.Remove(h)
	}
	for _, h := range s.attributeSetHandles {
		if h != resource.Invalid {
			e.attributeSets.Remove(h)
		}
	}
	e.scenes.Remove(s.handle)
	s.destroy()
}

// SceneName returns the name of the scene a handle was created from.
func (e *Engine) SceneName(h int) string {
	s, ok := e.scenes.Get(h)
	if !ok {
		return ""
	}
	return s.info.Name
}

// UpdateScene folds active animation tracks into their attribute sets and
// runs the scene's update.
func (e *Engine) UpdateScene(h int) {
	if s, ok := e.scenes.Get(h); ok {
		e.updateScene(s)
	}
}

func (e *Engine) updateScene(s *scene) {
	for _, h := range s.attributeSetHandles {
		if h == resource.Invalid {
			continue
		}
		set, ok := e.attributeSets.Get(h)
		if !ok {
			continue
		}
		clear(set.values)
		for _, t := range set.tracks {
			if t.clip != nil && math32.Abs(t.weight) >= minTrackWeight {
				s.info.Code.AddClip(s.mem(), int(t.clip.Index), set.values, t.time, t.weight)
			}
		}
	}
	s.info.Code.Update(s.mem())
}

// BoundingBox returns the scene's bounds, or a zero box for an invalid
// handle.
func (e *Engine) BoundingBox(h int) abi.BoundingBox {
	s, ok := e.scenes.Get(h)
	if !ok {
		return abi.BoundingBox{}
	}
	return s.info.Code.BoundingBox(s.mem())
}

// NumNodes returns the number of nodes of a scene, or -1.
func (e *Engine) NumNodes(h int) int {
	s, ok := e.scenes.Get(h)
	if !ok {
		return -1
	}
	return len(s.info.Nodes)
}

// NodeName returns the name of a node.
func (e *Engine) NodeName(h, node int) string {
	s, ok := e.scenes.Get(h)
	if !ok || node < 0 || node >= len(s.info.Nodes) {
		return ""
	}
	return s.info.Nodes[node].Name
}

// NodeType returns the type of a node, or abi.NodeInvalid.
func (e *Engine) NodeType(h, node int) abi.NodeType {
	s, ok := e.scenes.Get(h)
	if !ok || node < 0 || node >= len(s.info.Nodes) {
		return abi.NodeInvalid
	}
	return abi.NodeType(s.info.Nodes[node].Type)
}

// NumObjects returns the number of pickable objects of a scene, or -1.
func (e *Engine) NumObjects(h int) int {
	s, ok := e.scenes.Get(h)
	if !ok {
		return -1
	}
	return len(s.info.Objects)
}

// ObjectID returns the id PickGroup reports for an object, assigning the
// next free id on first use. It returns -1 on error.
func (e *Engine) ObjectID(h, object int) int {
	s, ok := e.scenes.Get(h)
	if !ok || object < 0 || object >= len(s.info.Objects) {
		return -1
	}
	b := slice(s.mem(), int(s.info.Objects[object].Offset), 4)
	if b == nil {
		return -1
	}
	id := int32At(b)
	if *id == 0 {
		*id = e.nextObjectID
		e.nextObjectID++
	}
	return int(*id)
}

// ObjectIDByName is ObjectID for an object found by name. Instanced
// objects carry their index in brackets, e.g. "pCubeShape1[0]".
func (e *Engine) ObjectIDByName(h int, name string) int {
	s, ok := e.scenes.Get(h)
	if !ok {
		return -1
	}
	return e.ObjectID(h, s.info.ObjectIndex(name))
}

const minTrackWeight = 1e-4
