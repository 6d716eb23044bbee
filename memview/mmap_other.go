//go:build !(linux || darwin || freebsd || openbsd || netbsd)
// +build !linux,!darwin,!freebsd,!openbsd,!netbsd

package memview

import "github.com/SeleniaProject/succinct/errs"

// MmapAllocator is unavailable on platforms without an anonymous-mmap
// syscall exposed through golang.org/x/sys/unix; NewMmapAllocator reports
// capacity exhaustion rather than silently falling back to a different
// allocation strategy.
type MmapAllocator struct{}

// NewMmapAllocator always fails on this platform.
func NewMmapAllocator(size int64, opts ...Option) (*MmapAllocator, error) {
	return nil, errs.CapacityExhausted(size)
}

// Allocate always returns the null view on this platform.
func (a *MmapAllocator) Allocate(n int64) View { return View{} }

// Deallocate is always a no-op.
func (a *MmapAllocator) Deallocate(v View) bool { return true }

// DeallocateAll is a no-op.
func (a *MmapAllocator) DeallocateAll() {}

// Stats reports a zeroed Stats on this platform.
func (a *MmapAllocator) Stats() Stats { return Stats{} }
