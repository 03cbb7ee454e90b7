//go:build linux

package texhash

import (
	"errors"

	"golang.org/x/sys/unix"
)

// madvPopulateWrite is MADV_POPULATE_WRITE, Linux 5.14+.
const madvPopulateWrite = 23

// populate faults in every page of a role buffer for writing. Kernels that
// reject MADV_POPULATE_WRITE get the pages touched one by one instead.
func populate(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	err := unix.Madvise(buf, madvPopulateWrite)
	if errors.Is(err, unix.EINVAL) {
		touchPages(buf)
		return nil
	}
	return err
}
