//go:build linux || darwin || freebsd || openbsd || netbsd
// +build linux darwin freebsd openbsd netbsd

package memview

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/SeleniaProject/succinct/errs"
)

// MmapAllocator reserves a single anonymous mapping up front and bumps a
// cursor through it, like ArenaAllocator, but sources its region directly
// from the host's virtual memory manager instead of from another
// Allocator. Individual Deallocate is a no-op; DeallocateAll rewinds the
// cursor without unmapping the region.
type MmapAllocator struct {
	config  *Config
	region  []byte
	current int64
	allocs  uint64
	peak    int64
}

// NewMmapAllocator maps size bytes of anonymous, zero-filled memory.
func NewMmapAllocator(size int64, opts ...Option) (*MmapAllocator, error) {
	if size <= 0 {
		return nil, errs.PreconditionViolated("NewMmapAllocator", "size must be > 0")
	}

	region, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errs.CapacityExhausted(size)
	}

	return &MmapAllocator{
		config: newConfig(opts...),
		region: region,
	}, nil
}

// Allocate implements Allocator.
func (a *MmapAllocator) Allocate(n int64) View {
	if n <= 0 {
		return View{}
	}

	aligned := alignUp(n, a.config.AlignmentSize)
	if a.current+aligned > int64(len(a.region)) {
		return View{}
	}

	ptr := unsafe.Pointer(&a.region[a.current])

	a.current += aligned
	a.allocs++

	if a.current > a.peak {
		a.peak = a.current
	}

	return View{First: ptr, Size: n}
}

// Deallocate is always a no-op, per the arena contract.
func (a *MmapAllocator) Deallocate(v View) bool {
	return true
}

// DeallocateAll rewinds the cursor without unmapping the region.
func (a *MmapAllocator) DeallocateAll() {
	a.current = 0
	a.allocs = 0
}

// Unmap releases the mapping back to the kernel. The allocator must not be
// used afterward.
func (a *MmapAllocator) Unmap() error {
	return unix.Munmap(a.region)
}

// Stats reports cumulative allocation statistics.
func (a *MmapAllocator) Stats() Stats {
	return Stats{
		TotalAllocated:    a.current,
		ActiveAllocations: int(a.allocs),
		PeakUsage:         a.peak,
		AllocationCount:   a.allocs,
	}
}
