package tinymalloc

import "errors"

// ErrOutOfMemory wraps a failed mapping request for a fresh
// bitmapAllocator. A failed mapping during heap growth is reported by
// extend returning false, not by this error. Allocate() surfaces both
// as a nil pointer to callers; bootstrap logs this error via
// errBootstrapFailed.
var ErrOutOfMemory = errors.New("tinymalloc: out of memory")

// ErrUnsupportedPlatform is returned by the mmap transport on build
// targets without an anonymous-mapping primitive.
var ErrUnsupportedPlatform = errors.New("tinymalloc: anonymous mmap unsupported on this platform")

// errBootstrapFailed prefixes the log line emitted when building the
// arena table fails partway through, so the next caller's retry shows
// up distinctly from a normal bootstrap.
var errBootstrapFailed = errors.New("tinymalloc: arena table bootstrap failed")
