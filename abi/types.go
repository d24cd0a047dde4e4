package abi

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// AttributeType tags a scene attribute. The low byte is the base type;
// bits 8 and up hold the array length, 0 for a scalar.
type AttributeType uint32

const (
	TypeInvalid AttributeType = iota
	TypeBool
	TypeInt
	TypeInt2
	TypeInt3
	TypeInt4
	TypeFloat
	TypeFloat2
	TypeFloat3
	TypeFloat4
	TypeFloat4x4
	TypeProjection
	TypeTexture2D
	TypeTexture3D
	TypeTextureCube
	TypeString
)

var typeNames = [...]string{
	TypeInvalid:     "invalid",
	TypeBool:        "bool",
	TypeInt:         "int",
	TypeInt2:        "int2",
	TypeInt3:        "int3",
	TypeInt4:        "int4",
	TypeFloat:       "float",
	TypeFloat2:      "float2",
	TypeFloat3:      "float3",
	TypeFloat4:      "float4",
	TypeFloat4x4:    "float4x4",
	TypeProjection:  "projection",
	TypeTexture2D:   "texture2D",
	TypeTexture3D:   "texture3D",
	TypeTextureCube: "textureCube",
	TypeString:      "string",
}

// ArrayOf returns the array type of n elements of base.
func ArrayOf(base AttributeType, n int) AttributeType {
	return base.Base() | AttributeType(n)<<8
}

// Base strips the array length.
func (t AttributeType) Base() AttributeType {
	return t & 0xFF
}

// Elements returns the array length, 0 for a scalar.
func (t AttributeType) Elements() int {
	return int(t >> 8)
}

// IsTexture reports whether the base type is a texture.
func (t AttributeType) IsTexture() bool {
	b := t.Base()
	return b >= TypeTexture2D && b <= TypeTextureCube
}

// FloatComponents returns the number of floats per element for float
// based types and 0 otherwise.
func (t AttributeType) FloatComponents() int {
	switch t.Base() {
	case TypeFloat:
		return 1
	case TypeFloat2:
		return 2
	case TypeFloat3:
		return 3
	case TypeFloat4:
		return 4
	case TypeFloat4x4:
		return 16
	}
	return 0
}

// FloatCount returns the total number of floats of a float based type,
// counting a scalar as one element.
func (t AttributeType) FloatCount() int {
	return max(t.Elements(), 1) * t.FloatComponents()
}

func (t AttributeType) String() string {
	b := t.Base()
	name := fmt.Sprintf("type(%d)", uint32(b))
	if int(b) < len(typeNames) {
		name = typeNames[b]
	}
	if n := t.Elements(); n > 0 {
		return fmt.Sprintf("%s[%d]", name, n)
	}
	return name
}

// NodeType tags a scene node. Values are assigned by the scene compiler.
type NodeType uint32

// NodeInvalid is returned for unknown nodes.
const NodeInvalid NodeType = 0

// BoundingBox is an axis aligned box. Size is corner minus center.
type BoundingBox struct {
	Center mgl32.Vec3
	Size   mgl32.Vec3
}

// BoundingBoxFrom converts the float4x2 filled by getBoundingBox.
func BoundingBoxFrom(m [8]float32) BoundingBox {
	return BoundingBox{
		Center: mgl32.Vec3{m[0], m[1], m[2]},
		Size:   mgl32.Vec3{m[4], m[5], m[6]},
	}
}

// Min returns the minimum corner.
func (b BoundingBox) Min() mgl32.Vec3 {
	return b.Center.Sub(b.Size)
}

// Max returns the maximum corner.
func (b BoundingBox) Max() mgl32.Vec3 {
	return b.Center.Add(b.Size)
}
