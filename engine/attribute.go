package engine

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	sceneruntime "github.com/wippyai/scene-runtime"
	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/container"
	"github.com/wippyai/scene-runtime/resource"
)

// attribute is a materialized view of one attribute of a scene instance.
type attribute struct {
	info *container.Attribute
	data []byte
}

func (a *attribute) typ() abi.AttributeType {
	return abi.AttributeType(a.info.Type)
}

// stringValue keeps a string set on an attribute alive. Scene code sees a
// pointer to a NUL terminated copy in mem.
type stringValue struct {
	value string
	mem   sceneruntime.Region
}

// NumAttributes returns the number of attributes of a scene, or -1.
func (e *Engine) NumAttributes(h int) int {
	s, ok := e.scenes.Get(h)
	if !ok {
		return -1
	}
	return len(s.info.Attributes)
}

// AttributeNameAt returns the name of attribute index of a scene.
func (e *Engine) AttributeNameAt(h, index int) string {
	s, ok := e.scenes.Get(h)
	if !ok || index < 0 || index >= len(s.info.Attributes) {
		return ""
	}
	return s.info.Attributes[index].Name
}

// AttributeHandle returns the handle of attribute index of a scene, or -1.
// Asking twice returns the same handle.
func (e *Engine) AttributeHandle(h, index int) int {
	s, ok := e.scenes.Get(h)
	if !ok || index < 0 || index >= len(s.info.Attributes) {
		return resource.Invalid
	}
	if ah := s.attributeHandles[index]; ah != resource.Invalid {
		return ah
	}

	info := &s.info.Attributes[index]
	data := slice(s.mem(), int(info.Offset), attributeSize(abi.AttributeType(info.Type)))
	if data == nil {
		Logger().Warn("attribute outside instance",
			zap.String("scene", s.info.Name),
			zap.String("attribute", info.Name),
			zap.Uint32("offset", info.Offset))
		return resource.Invalid
	}
	ah := e.attributes.Insert(&attribute{info: info, data: data})
	s.attributeHandles[index] = ah
	return ah
}

// AttributeHandleByName is AttributeHandle for an attribute found by name.
func (e *Engine) AttributeHandleByName(h int, name string) int {
	s, ok := e.scenes.Get(h)
	if !ok {
		return resource.Invalid
	}
	index := s.info.AttributeIndex(name)
	if index < 0 {
		return resource.Invalid
	}
	return e.AttributeHandle(h, index)
}

// AttributeName returns the name of an attribute.
func (e *Engine) AttributeName(ah int) string {
	if a, ok := e.attributes.Get(ah); ok {
		return a.info.Name
	}
	return ""
}

// AttributeType returns the base type of an attribute, or TypeInvalid.
func (e *Engine) AttributeType(ah int) abi.AttributeType {
	if a, ok := e.attributes.Get(ah); ok {
		return a.typ().Base()
	}
	return abi.TypeInvalid
}

// AttributeElements returns the array length of an attribute, 0 when it is
// not an array and -1 for an invalid handle.
func (e *Engine) AttributeElements(ah int) int {
	if a, ok := e.attributes.Get(ah); ok {
		return a.typ().Elements()
	}
	return -1
}

// AttributeSemantic returns the semantic of an attribute.
func (e *Engine) AttributeSemantic(ah int) string {
	if a, ok := e.attributes.Get(ah); ok {
		return a.info.Semantic
	}
	return ""
}

// typed returns the attribute if its full type lies in [lo, hi].
func (e *Engine) typed(ah int, lo, hi abi.AttributeType) *attribute {
	a, ok := e.attributes.Get(ah)
	if !ok {
		return nil
	}
	if t := a.typ(); t < lo || t > hi {
		return nil
	}
	return a
}

func (e *Engine) SetBool(ah int, v bool) {
	if a := e.typed(ah, abi.TypeBool, abi.TypeBool); a != nil {
		a.data[0] = 0
		if v {
			a.data[0] = 1
		}
	}
}

func (e *Engine) Bool(ah int) bool {
	if a := e.typed(ah, abi.TypeBool, abi.TypeBool); a != nil {
		return a.data[0] != 0
	}
	return false
}

// SetInt sets the first component of an int attribute.
func (e *Engine) SetInt(ah int, v int32) {
	if a := e.typed(ah, abi.TypeInt, abi.TypeInt4); a != nil {
		*int32At(a.data) = v
	}
}

func (e *Engine) Int(ah int) int32 {
	if a := e.typed(ah, abi.TypeInt, abi.TypeInt4); a != nil {
		return *int32At(a.data)
	}
	return 0
}

// SetFloat sets the first component of a float attribute.
func (e *Engine) SetFloat(ah int, v float32) {
	if a := e.typed(ah, abi.TypeFloat, abi.TypeFloat4); a != nil {
		floats(a.data, 1)[0] = v
	}
}

func (e *Engine) Float(ah int) float32 {
	if a := e.typed(ah, abi.TypeFloat, abi.TypeFloat4); a != nil {
		return floats(a.data, 1)[0]
	}
	return 0
}

func (e *Engine) SetFloat2(ah int, v mgl32.Vec2) {
	if a := e.typed(ah, abi.TypeFloat2, abi.TypeFloat4); a != nil {
		copy(floats(a.data, 2), v[:])
	}
}

func (e *Engine) Float2(ah int) (v mgl32.Vec2) {
	if a := e.typed(ah, abi.TypeFloat2, abi.TypeFloat4); a != nil {
		copy(v[:], floats(a.data, 2))
	}
	return v
}

func (e *Engine) SetFloat3(ah int, v mgl32.Vec3) {
	if a := e.typed(ah, abi.TypeFloat3, abi.TypeFloat4); a != nil {
		copy(floats(a.data, 3), v[:])
	}
}

func (e *Engine) Float3(ah int) (v mgl32.Vec3) {
	if a := e.typed(ah, abi.TypeFloat3, abi.TypeFloat4); a != nil {
		copy(v[:], floats(a.data, 3))
	}
	return v
}

func (e *Engine) SetFloat4(ah int, v mgl32.Vec4) {
	if a := e.typed(ah, abi.TypeFloat4, abi.TypeFloat4); a != nil {
		copy(floats(a.data, 4), v[:])
	}
}

func (e *Engine) Float4(ah int) (v mgl32.Vec4) {
	if a := e.typed(ah, abi.TypeFloat4, abi.TypeFloat4); a != nil {
		copy(v[:], floats(a.data, 4))
	}
	return v
}

func (e *Engine) SetFloat4x4(ah int, m mgl32.Mat4) {
	if a := e.typed(ah, abi.TypeFloat4x4, abi.TypeFloat4x4); a != nil {
		copy(floats(a.data, 16), m[:])
	}
}

// Float4x4 returns a matrix attribute, or the identity.
//
//	view := e.Float4x4(camera).Inv()
//	e.RenderGroup(g, view, proj, 0)
func (e *Engine) Float4x4(ah int) mgl32.Mat4 {
	if a := e.typed(ah, abi.TypeFloat4x4, abi.TypeFloat4x4); a != nil {
		var m mgl32.Mat4
		copy(m[:], floats(a.data, 16))
		return m
	}
	return mgl32.Ident4()
}

// SetFloatArray copies v into a float, vector or matrix attribute or an
// array of those, up to the attribute's length.
func (e *Engine) SetFloatArray(ah int, v []float32) {
	if f := e.FloatArray(ah); f != nil {
		copy(f, v)
	}
}

// FloatArray returns the live float storage of a float based attribute,
// or nil. Writes go straight into the scene instance.
func (e *Engine) FloatArray(ah int) []float32 {
	a, ok := e.attributes.Get(ah)
	if !ok {
		return nil
	}
	return floats(a.data, a.typ().FloatCount())
}

// FloatProjection returns the projection matrix of a camera attribute for
// a view of the given physical aspect ratio, or the identity.
func (e *Engine) FloatProjection(ah int, aspect float32) mgl32.Mat4 {
	if a := e.typed(ah, abi.TypeProjection, abi.TypeProjection); a != nil {
		return abi.ReadProjection(a.data).Matrix(aspect)
	}
	return mgl32.Ident4()
}

// SetTexture stores a GL texture name in a texture attribute.
func (e *Engine) SetTexture(ah int, texture uint32) {
	if a, ok := e.attributes.Get(ah); ok && a.typ().IsTexture() {
		*uint32At(a.data) = texture
	}
}

func (e *Engine) Texture(ah int) uint32 {
	if a, ok := e.attributes.Get(ah); ok && a.typ().IsTexture() {
		return *uint32At(a.data)
	}
	return 0
}

// SetString stores a copy of v and points a string attribute at it.
func (e *Engine) SetString(ah int, v string) {
	a, ok := e.attributes.Get(ah)
	if !ok || a.typ().Base() != abi.TypeString {
		return
	}
	mem, err := e.allocator.Data(len(v) + 1)
	if err != nil {
		Logger().Error("allocate string attribute", zap.Int("attribute", ah), zap.Error(err))
		return
	}
	copy(mem.Bytes(), v)

	*wordAt(a.data) = mem.Addr()
	if old, ok := e.strings[ah]; ok {
		_ = old.mem.Free()
	}
	e.strings[ah] = stringValue{value: v, mem: mem}
}

// StringValue returns the last value set with SetString.
func (e *Engine) StringValue(ah int) string {
	return e.strings[ah].value
}
