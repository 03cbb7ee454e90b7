//go:build linux

package dump

import "golang.org/x/sys/unix"

// fadviseWillNeed asks the kernel to start reading the dump ahead of the
// first page fault. Best-effort: errors are silently ignored.
func fadviseWillNeed(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_WILLNEED)
}
