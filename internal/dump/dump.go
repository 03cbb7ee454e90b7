// Package dump maps raw memory dumps (RDRAM or TMEM snapshots) for hashing
// textures in place.
package dump

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"

	texerrors "github.com/tamirms/texhash/errors"
)

// File is a read-only memory mapping of a dump file.
type File struct {
	mmap   mmap.MMap
	closed atomic.Bool
}

// Open memory-maps the dump at path. The file descriptor is closed before
// Open returns; the mapping stays valid until Close.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat dump file: %w", err)
	}
	if stat.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", texerrors.ErrEmptyDump, path)
	}

	fadviseWillNeed(int(f.Fd()), 0, stat.Size())

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap dump file: %w", err)
	}
	return &File{mmap: mm}, nil
}

// Bytes returns the mapped contents. The slice must not be used after Close.
func (d *File) Bytes() []byte {
	return d.mmap
}

// Len returns the size of the dump in bytes.
func (d *File) Len() int {
	return len(d.mmap)
}

// Close unmaps the dump. It is safe to call more than once.
func (d *File) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	return d.mmap.Unmap()
}
