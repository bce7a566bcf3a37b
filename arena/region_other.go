//go:build !unix

package arena

// defaultPageSize is used on platforms without a cheap page-size query
// via golang.org/x/sys/unix (i.e. everything reserveRegion's unix build
// doesn't cover). 4 KiB matches the common case.
const defaultPageSize = 4096

// reserveRegion rounds size up to defaultPageSize and allocates it from
// the Go heap. There is no real OS-level page reservation on this build;
// this exists so the package still builds and behaves correctly on
// platforms without an anonymous-mmap equivalent wired up.
func reserveRegion(size int) ([]byte, error) {
	rounded := alignUp(size, defaultPageSize)
	return make([]byte, rounded), nil
}

// releaseRegion is a no-op: the region is ordinary Go-heap memory and the
// garbage collector reclaims it once the Arena drops its reference.
func releaseRegion(region []byte) error {
	return nil
}
