//go:build !linux

package dump

// fadviseWillNeed is a no-op on non-Linux platforms.
func fadviseWillNeed(fd int, offset, length int64) {}
