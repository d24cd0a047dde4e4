// Package abi describes the calling surface between the engine and loaded
// scene and texture code.
//
// Entry points are bound by name from an asset's public symbols into
// SceneEntryPoints or TextureEntryPoints. Both tables are only produced
// once every mandatory entry point is present, so holding one means the
// asset is callable. A Binder turns a validated table into SceneCode or
// TextureCode; abi/native does this for relocated machine code and
// SceneFuncs/TextureFuncs do it for Go functions.
//
// The package also defines the attribute type tags stored in containers,
// BoundingBox and the Projection record with its matrix construction.
package abi
