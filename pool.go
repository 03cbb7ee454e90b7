package texhash

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/edsrzf/mmap-go"
	"go.uber.org/zap"

	texerrors "github.com/tamirms/texhash/errors"
)

const (
	// NumRoles is the number of fixed texture-sized role buffers.
	NumRoles = 2

	// slotsPerThread is the number of scratch slots each thread owns.
	slotsPerThread = 2

	// scratchSlot is the slot the strong engine gathers rows into.
	scratchSlot = 0

	// defaultMaxThreadBuffer caps a single thread scratch buffer (256 MiB).
	defaultMaxThreadBuffer = 256 << 20
)

// Pool owns the working memory of the texture pipeline: two fixed role
// buffers sized for the largest texture, and a growable scratch buffer for
// each (thread, slot) pair.
//
// Role buffers are anonymous memory mappings, kept off the Go heap because
// they are large and live for the whole session. Scratch buffers are
// ordinary slices that grow on demand and never shrink.
//
// # Thread Safety
//
// Init and Shutdown must not run concurrently with each other or with any
// other method. ThreadBuffer may be called concurrently for distinct thread
// indices; a single (thread, slot) pair must only be used by one goroutine
// at a time.
type Pool struct {
	tex  [NumRoles]mmap.MMap
	bufs [][]byte

	processors      int
	maxThreadBuffer int
	prefault        bool
	log             *zap.Logger
}

// NewPool creates an empty pool. Call Init before use and Shutdown when
// done; role buffers stay mapped until Shutdown.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		processors:      NumProcessors(),
		maxThreadBuffer: defaultMaxThreadBuffer,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pool) logger() *zap.Logger {
	if p.log != nil {
		return p.log
	}
	return zap.L()
}

// Init maps the role buffers, maxWidth*maxHeight*4 bytes each, and on the
// first call provisions 2 scratch slots per processor.
//
// Init is idempotent: buffers that already exist are kept as they are, even
// if they are smaller than the new dimensions ask for. If a mapping fails,
// everything the pool holds is released before the error is returned.
func (p *Pool) Init(maxWidth, maxHeight int) error {
	if maxWidth <= 0 || maxHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", texerrors.ErrInvalidDimensions, maxWidth, maxHeight)
	}
	if maxWidth > math.MaxInt/4/maxHeight {
		return fmt.Errorf("%w: %dx%d overflows buffer size", texerrors.ErrInvalidDimensions, maxWidth, maxHeight)
	}
	size := maxWidth * maxHeight * 4

	for i := range p.tex {
		if p.tex[i] != nil {
			continue
		}
		mm, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)
		if err != nil {
			p.logger().Warn("role buffer allocation failed",
				zap.Int("role", i),
				zap.Int("size", size),
				zap.Error(err),
			)
			allocErr := fmt.Errorf("%w: role %d (%d bytes): %w", texerrors.ErrAllocFailed, i, size, err)
			return errors.Join(allocErr, p.Shutdown())
		}
		if p.prefault {
			if err := populate(mm); err != nil {
				p.logger().Debug("role buffer prefault failed", zap.Int("role", i), zap.Error(err))
			}
		}
		p.tex[i] = mm
	}

	if len(p.bufs) == 0 {
		p.bufs = make([][]byte, p.processors*slotsPerThread)
	}
	return nil
}

// Shutdown unmaps the role buffers and drops every scratch buffer.
// It is safe to call more than once.
func (p *Pool) Shutdown() error {
	var errs []error
	for i := range p.tex {
		if p.tex[i] == nil {
			continue
		}
		if err := p.tex[i].Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap role %d: %w", i, err))
		}
		p.tex[i] = nil
	}
	p.bufs = nil
	return errors.Join(errs...)
}

// Processors returns the number of threads the pool provisions slots for.
func (p *Pool) Processors() int {
	return p.processors
}

// Get returns role buffer role, or nil before Init.
// role must be 0 or 1.
func (p *Pool) Get(role int) []byte {
	checkIndex("role", role, NumRoles)
	return p.tex[role]
}

// SizeOf returns the byte size of role buffer role, or 0 before Init.
// role must be 0 or 1.
func (p *Pool) SizeOf(role int) int {
	checkIndex("role", role, NumRoles)
	return len(p.tex[role])
}

// ThreadBuffer returns the scratch buffer of (thread, slot), growing it to
// at least minSize bytes. New capacity is zeroed and existing contents are
// kept. The buffer never shrinks, so the returned slice may be longer than
// minSize. slot must be 0 or 1.
//
// On failure the slot keeps its previous buffer.
func (p *Pool) ThreadBuffer(thread, slot, minSize int) ([]byte, error) {
	checkIndex("slot", slot, slotsPerThread)
	if len(p.bufs) == 0 {
		return nil, texerrors.ErrPoolNotInitialized
	}
	idx := thread*slotsPerThread + slot
	if thread < 0 || idx >= len(p.bufs) {
		return nil, fmt.Errorf("%w: thread %d, pool has %d", texerrors.ErrThreadOutOfRange, thread, len(p.bufs)/slotsPerThread)
	}

	buf := p.bufs[idx]
	if len(buf) >= minSize {
		return buf, nil
	}
	if minSize > p.maxThreadBuffer {
		return nil, fmt.Errorf("%w: %d bytes exceeds thread buffer cap %d", texerrors.ErrAllocFailed, minSize, p.maxThreadBuffer)
	}
	grown, err := growBuffer(buf, minSize)
	if err != nil {
		p.logger().Warn("thread buffer allocation failed",
			zap.Int("thread", thread),
			zap.Int("slot", slot),
			zap.Int("size", minSize),
			zap.Error(err),
		)
		return nil, err
	}
	p.bufs[idx] = grown
	return grown, nil
}

// growBuffer returns a zeroed slice of length size holding a copy of buf.
func growBuffer(buf []byte, size int) (grown []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			grown = nil
			err = fmt.Errorf("%w: %d bytes: %v", texerrors.ErrAllocFailed, size, r)
		}
	}()
	grown = make([]byte, size)
	copy(grown, buf)
	return grown, nil
}

// touchPages writes one byte per page so the kernel backs every page.
func touchPages(buf []byte) {
	pageSize := os.Getpagesize()
	for i := 0; i < len(buf); i += pageSize {
		buf[i] = 0
	}
}

func checkIndex(what string, i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("texhash: %s index %d out of range [0,%d)", what, i, n))
	}
}
