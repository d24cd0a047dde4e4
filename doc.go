// Package sceneruntime runs pre-compiled scene assets against a live OpenGL
// context.
//
// A scene container holds relocatable machine code for every scene and
// texture exported by the authoring tool. The loader links that code against
// a fixed table of host functions, validates the lifecycle entry points and
// initializes per-asset global state. The engine then instantiates scenes
// into groups, updates their animation tracks and renders them every frame.
//
// # Architecture Overview
//
//	sceneruntime/      Root package with the Region and Allocator interfaces
//	├── engine/        Files, groups, scenes, attributes and the frame loop
//	├── loader/        Container loader producing validated entry points
//	├── container/     Container records, decoder and encoder
//	├── linker/        Relocation instructions and the word patcher
//	├── symbols/       Sorted host symbol table
//	├── abi/           Entry point tables and attribute types
//	│   └── native/    cgo bridge calling relocated machine code
//	├── inlinefile/    Files whose entry points are Go functions
//	├── render/        Render job arena, queues and the alpha sort
//	├── gpu/           OpenGL subset used by the engine
//	├── track/         Animation track evaluators
//	├── resource/      Handle slot tables with lowest-index reuse
//	├── memory/        Executable and data memory blocks
//	├── config/        Engine configuration
//	├── errors/        Structured error types for debugging
//	└── cmd/scenectl/  Container inspection and preview tool
//
// # Quick Start
//
//	binder := native.NewBinder()
//	defer binder.Close()
//
//	e, err := engine.New(engine.WithGL(opengl.New()))
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//	e.AddLoader(loader.Extension, engine.MCLoader(loader.Options{
//	    Symbols: native.HostTable(opengl.Symbols()...),
//	    Binder:  binder,
//	}))
//
//	file, err := e.LoadFile("scene.mc")
//	if err != nil {
//	    return err
//	}
//	group := e.CreateGroup()
//	scene := e.CreateSceneByName(file, "main", group)
//
//	for running {
//	    e.UpdateGroup(group)
//	    e.RenderGroup(group, view, projection, 0)
//	}
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. Every call requires the calling
// goroutine to hold the current OpenGL context, which in practice means a
// single render goroutine locked to its OS thread.
//
// # Memory Model
//
// Code regions are mapped readable, writable and executable at the same
// time. Loaded code is trusted; there is no sandbox.
package sceneruntime
