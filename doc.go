// Package tinymalloc is a drop-in, general-purpose dynamic memory
// allocator built directly on anonymous page mappings from the OS.
//
// It exposes exactly two operations, Allocate and Deallocate, and is
// structured in three layers:
//
//   - bitmapAllocator: one contiguous heap region plus a dense bitmap
//     that tracks which 16-byte blocks are live.
//   - arena: a bitmapAllocator guarded by its own mutex, with a
//     running allocated-block count used to balance large requests.
//   - the package-level front end: a lazily built, per-CPU table of
//     arenas, goroutine-to-arena affinity via the runtime's processor
//     pinning, and cross-arena pointer lookup on Deallocate.
//
// Coalescing beyond what the bitmap gives for free, returning memory
// to the OS, realloc/calloc-style conveniences and alignment stronger
// than the machine word are all out of scope.
package tinymalloc
