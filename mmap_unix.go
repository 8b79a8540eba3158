//go:build !plan9 && !windows && !js

package tinymalloc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mapAnon reserves size bytes of anonymous, private, read-write memory
// directly from the OS. Grounded on the retrieval pack's rclone mmap
// allocator, which uses the identical unix.Mmap(-1, 0, ...) shape for
// the same purpose (large anonymous allocations outside the Go heap).
func mapAnon(size int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("tinymalloc: mmap %d bytes: %w", size, err)
	}
	return mem, nil
}

// unmapAnon releases memory obtained from mapAnon. mem must be the
// same slice mapAnon returned, not a derived sub-slice.
func unmapAnon(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("tinymalloc: munmap: %w", err)
	}
	return nil
}

func osPageSize() int {
	return unix.Getpagesize()
}
