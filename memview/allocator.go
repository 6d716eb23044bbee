package memview

import "unsafe"

// Allocator is the base capability level: allocate(n) -> view, returning the
// null view on exhaustion or when n <= 0.
type Allocator interface {
	Allocate(n int64) View
}

// Deallocator additionally supports deallocation; Deallocate is idempotent
// on the null view.
type Deallocator interface {
	Allocator
	Deallocate(v View) bool
}

// Reallocator additionally supports in-place-or-moved reallocation.
type Reallocator interface {
	Allocator
	Reallocate(v View, n int64) View
}

// Stats mirrors the bookkeeping every allocator in this package keeps, in
// the shape the teacher's AllocatorStats used for its own allocator family.
type Stats struct {
	TotalAllocated    int64
	TotalFreed        int64
	ActiveAllocations int
	PeakUsage         int64
	AllocationCount   uint64
	FreeCount         uint64
}

// Config holds the knobs shared by the allocators in this package,
// assembled through functional options.
type Config struct {
	AlignmentSize int64
	ArenaSize     int64
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithAlignment overrides the default 8-byte alignment.
func WithAlignment(alignment int64) Option {
	return func(c *Config) { c.AlignmentSize = alignment }
}

// WithArenaSize sets Config.ArenaSize. No allocator in this package reads
// it: NewArenaAllocator and NewMmapAllocator take their region size as an
// explicit argument.
func WithArenaSize(size int64) Option {
	return func(c *Config) { c.ArenaSize = size }
}

func defaultConfig() *Config {
	return &Config{
		AlignmentSize: 8,
		ArenaSize:     64 * 1024 * 1024,
	}
}

func newConfig(opts ...Option) *Config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func alignUp(size, alignment int64) int64 {
	if alignment <= 1 {
		return size
	}

	return (size + alignment - 1) &^ (alignment - 1)
}

// SystemAllocator delegates to the host memory allocator (Go's own runtime
// allocator, via make([]byte, n)). The library runs single-threaded per its
// concurrency model, so unlike the teacher's SystemAllocatorImpl this keeps
// no mutex: callers must not share one allocator across goroutines without
// external synchronization, exactly as the allocator contract requires.
type SystemAllocator struct {
	config    *Config
	live      map[unsafe.Pointer][]byte
	allocated int64
	freed     int64
	allocs    uint64
	frees     uint64
	peak      int64
}

// NewSystemAllocator constructs a SystemAllocator.
func NewSystemAllocator(opts ...Option) *SystemAllocator {
	return &SystemAllocator{
		config: newConfig(opts...),
		live:   make(map[unsafe.Pointer][]byte),
	}
}

// Allocate implements Allocator.
func (a *SystemAllocator) Allocate(n int64) View {
	if n <= 0 {
		return View{}
	}

	size := alignUp(n, a.config.AlignmentSize)

	buf := make([]byte, size)
	ptr := unsafe.Pointer(&buf[0])

	a.live[ptr] = buf
	a.allocated += size
	a.allocs++

	if inUse := a.allocated - a.freed; inUse > a.peak {
		a.peak = inUse
	}

	return View{First: ptr, Size: n}
}

// Deallocate implements Deallocator. Idempotent on the null view and on a
// view this allocator does not own.
func (a *SystemAllocator) Deallocate(v View) bool {
	if v.IsNull() {
		return true
	}

	buf, ok := a.live[v.First]
	if !ok {
		return false
	}

	delete(a.live, v.First)
	a.freed += int64(cap(buf))
	a.frees++

	return true
}

// Reallocate implements Reallocator.
func (a *SystemAllocator) Reallocate(v View, n int64) View {
	if v.IsNull() {
		return a.Allocate(n)
	}

	if n <= 0 {
		a.Deallocate(v)

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

	a.Deallocate(v)

	return newView
}

// Stats reports cumulative allocation statistics.
func (a *SystemAllocator) Stats() Stats {
	return Stats{
		TotalAllocated:    a.allocated,
		TotalFreed:        a.freed,
		ActiveAllocations: len(a.live),
		PeakUsage:         a.peak,
		AllocationCount:   a.allocs,
		FreeCount:         a.frees,
	}
}
