// Package engine manages loaded scene files, scene instances and their
// attributes, and renders groups of scenes.
//
// # Architecture
//
// Everything the engine hands out is an int handle into a slot table:
//
//	file          - a loaded container (loader.MCFile) or inline file
//	group         - an ordered set of scene instances rendered together
//	scene         - one instance of a scene, with its own instance memory
//	attribute     - a typed value inside a scene's instance memory
//	attribute set - the animation tracks of one attribute set
//
// Freed handles are reused lowest first. -1 is never a valid handle, and
// every operation on an invalid handle is a no-op returning a zero value.
//
// # Scene Lifecycle
//
//  1. LoadFile picks a Loader by file extension and stores the File.
//  2. CreateScene allocates instance memory, runs initInstance and copies
//     bound texture handles into it.
//  3. UpdateScene folds the clips of every attribute set into its track
//     values, then runs update.
//  4. RenderGroup renders each scene's opaque jobs per shader as it goes
//     and sorts the alpha jobs of the whole group back to front.
//  5. DeleteScene releases memoized handles and string values, then runs
//     doneInstance. UnloadFile deletes the file's scenes first.
//
// # Attributes
//
// Typed accessors check the attribute type and silently ignore
// mismatches; getters return zero values, or the identity matrix for
// matrix types. Float-based attributes widen: Float reads the first
// component of any float vector, Float3 reads a float4.
//
// # Picking
//
// PickGroup renders object ids into a 1x1 framebuffer through a
// projection narrowed to the picked pixel and decodes the color read
// back. ObjectID assigns ids lazily, starting from 1.
//
// # Thread Safety
//
// An Engine is not safe for concurrent use. Rendering must happen on the
// thread that owns the GL context.
package engine
