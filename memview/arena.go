package memview

import (
	"unsafe"

	"github.com/SeleniaProject/succinct/errs"
)

// ArenaAllocator carves a single up-front region from an underlying
// allocator and satisfies individual allocations by bumping a cursor.
// Individual Deallocate calls are a no-op; DeallocateAll rewinds the cursor
// in bulk. Not copyable by value (it owns a backing buffer); move it by
// passing the pointer.
type ArenaAllocator struct {
	config  *Config
	under   Allocator
	region  View
	current int64
	allocs  uint64
	peak    int64
}

// NewArenaAllocator reserves size bytes from under and returns an arena
// bump-allocator over that region. Returns an error if the underlying
// allocator cannot satisfy the reservation.
func NewArenaAllocator(under Allocator, size int64, opts ...Option) (*ArenaAllocator, error) {
	if size <= 0 {
		return nil, errs.PreconditionViolated("NewArenaAllocator", "size must be > 0")
	}

	region := under.Allocate(size)
	if region.IsNull() {
		return nil, errs.CapacityExhausted(size)
	}

	return &ArenaAllocator{
		config: newConfig(opts...),
		under:  under,
		region: region,
	}, nil
}

// Allocate implements Allocator by bumping the arena's cursor.
func (a *ArenaAllocator) Allocate(n int64) View {
	if n <= 0 {
		return View{}
	}

	aligned := alignUp(n, a.config.AlignmentSize)
	if a.current+aligned > a.region.Size {
		return View{}
	}

	ptr := unsafe.Add(a.region.First, a.current)

	a.current += aligned
	a.allocs++

	if a.current > a.peak {
		a.peak = a.current
	}

	return View{First: ptr, Size: n}
}

// Deallocate is always a no-op for an arena and returns true for every view,
// the null view included; it does not check whether v lies in the arena's
// region and does not track individual lifetimes.
func (a *ArenaAllocator) Deallocate(v View) bool {
	return true
}

// Reallocate always takes a fresh allocation from the arena and copies the
// overlapping bytes into it; nothing is grown in place, and the old region
// is abandoned, as with every arena deallocation.
func (a *ArenaAllocator) Reallocate(v View, n int64) View {
	if v.IsNull() {
		return a.Allocate(n)
	}

	if n <= 0 {
		return View{}
	}

	newView := a.Allocate(n)
	if newView.IsNull() {
		return View{}
	}

	copySize := v.Size
	if n < copySize {
		copySize = n
	}

	if copySize > 0 {
		src := unsafe.Slice((*byte)(v.First), copySize)
		dst := unsafe.Slice((*byte)(newView.First), copySize)
		copy(dst, src)
	}

	return newView
}

// DeallocateAll rewinds the cursor to the start of the arena without
// releasing the underlying region.
func (a *ArenaAllocator) DeallocateAll() {
	a.current = 0
	a.allocs = 0
}

// Available reports the number of unused bytes remaining in the arena.
func (a *ArenaAllocator) Available() int64 {
	return a.region.Size - a.current
}

// Used reports the number of bytes bumped past so far.
func (a *ArenaAllocator) Used() int64 {
	return a.current
}

// Stats reports cumulative allocation statistics for the arena.
func (a *ArenaAllocator) Stats() Stats {
	return Stats{
		TotalAllocated:    a.current,
		ActiveAllocations: int(a.allocs),
		PeakUsage:         a.peak,
		AllocationCount:   a.allocs,
	}
}
