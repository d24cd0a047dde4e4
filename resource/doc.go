// Package resource provides integer handle tables for engine objects.
//
// A Table maps handles to values. Handles are slot indices: inserting
// reuses the lowest free slot before growing, removing frees the slot in
// place, and -1 is never a valid handle.
//
//	files := resource.NewTable[*File]("file")
//
//	h := files.Insert(f)        // 0
//	f, ok := files.Get(h)
//	files.Remove(h)
//	h = files.Insert(g)         // 0 again
//
// # Observers
//
// Observers see every insert and remove, which the engine uses for debug
// logging:
//
//	files.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("%s %d %s", e.Kind, e.Handle, e.Type)
//	}))
//
// Tables are not safe for concurrent use; the engine owning them is
// single threaded.
package resource
