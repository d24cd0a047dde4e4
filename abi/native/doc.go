// Package native calls relocated machine code through cgo.
//
// A Binder turns bound entry point addresses into abi.SceneCode and
// abi.TextureCode. Scene render calls hand the compiled code a C render
// job array that mirrors the Go arena index for index; jobs the scene
// takes from the front are drawn by the scene itself, jobs it pushes
// onto the alpha list are copied back into the Go queues and rendered
// later through the job's own render function.
//
// The package also exports the track evaluators compiled scenes import;
// HostSymbols and HostTable list them next to the libc and libm symbols.
package native
