//go:build unix

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// reserveRegion obtains a private, anonymous, read/write span of at
// least size bytes, rounded up to the OS page size, via an anonymous
// mmap. This is the direct Go analogue of the original C
// implementation's mmap(NULL, size, PROT_READ|PROT_WRITE,
// MAP_PRIVATE|MAP_ANONYMOUS, -1, 0) call.
func reserveRegion(size int) ([]byte, error) {
	pageSize := unix.Getpagesize()
	rounded := alignUp(size, pageSize)

	data, err := unix.Mmap(-1, 0, rounded, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", rounded, err)
	}

	return data, nil
}

// releaseRegion unmaps a region obtained from reserveRegion. It must be
// called exactly once per successful reservation.
func releaseRegion(region []byte) error {
	if region == nil {
		return nil
	}
	return unix.Munmap(region)
}
