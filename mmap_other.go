//go:build plan9 || windows || js

package tinymalloc

// mapAnon, unmapAnon and osPageSize have no anonymous-mapping
// primitive wired up on this platform. Allocate degrades to returning
// nil rather than failing the build.

func mapAnon(size int) ([]byte, error) {
	return nil, ErrUnsupportedPlatform
}

func unmapAnon(mem []byte) error {
	return nil
}

func osPageSize() int {
	return 4096
}
