// Package extent provides the growable contiguous buffer every higher
// container in this module is built on: a logical header (size, capacity,
// and caller-chosen metadata) over a payload obtained from a
// memview.Allocator. Unlike the original, the header lives in ordinary Go
// struct fields rather than in-band before the payload — Go offers no
// portable, alignment-safe way to place a typed header immediately before a
// slice's backing array, and the behavioural contract is explicitly
// unchanged either way.
package extent

import (
	"unsafe"

	"github.com/SeleniaProject/succinct/errs"
	"github.com/SeleniaProject/succinct/memview"
)

// GrowthPolicy computes a new capacity given the current capacity and a
// lower bound on how much additional room is needed. Any policy satisfying
// new >= capacity+lowerBound and monotone in its arguments is conforming.
type GrowthPolicy func(capacity, lowerBound int64) int64

// DefaultGrowth implements new = old + max(old/2, lowerBound).
func DefaultGrowth(capacity, lowerBound int64) int64 {
	half := capacity / 2
	if half > lowerBound {
		return capacity + half
	}

	return capacity + lowerBound
}

// Writer fills n newly reserved slots starting at dst.
type Writer[T any] func(dst []T)

// Extent is a dynamically sized contiguous region of T with a logical
// header carrying size, capacity, and optional metadata M. An empty extent
// owns no memory: Allocator == nil or Cap() == 0 implies a null payload.
type Extent[T any, M any] struct {
	alloc    memview.Allocator
	growth   GrowthPolicy
	view     memview.View
	length   int64
	capacity int64
	meta     M
}

// New constructs an empty extent drawing storage from alloc, using growth
// as its growth policy (DefaultGrowth if nil).
func New[T any, M any](alloc memview.Allocator, growth GrowthPolicy) *Extent[T, M] {
	if growth == nil {
		growth = DefaultGrowth
	}

	return &Extent[T, M]{alloc: alloc, growth: growth}
}

// WithCapacity constructs an extent with room for at least capacity
// elements already reserved.
func WithCapacity[T any, M any](alloc memview.Allocator, growth GrowthPolicy, capacity int64) (*Extent[T, M], error) {
	e := New[T, M](alloc, growth)
	if capacity > 0 {
		if err := e.reserveExact(capacity); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func sizeOfT[T any]() int64 {
	var zero T

	return int64(unsafe.Sizeof(zero))
}

func (e *Extent[T, M]) slice() []T {
	if e.view.IsNull() {
		return nil
	}

	return unsafe.Slice((*T)(e.view.First), e.capacity)
}

// Len returns the number of live elements.
func (e *Extent[T, M]) Len() int64 { return e.length }

// Cap returns the number of elements the current allocation can hold.
func (e *Extent[T, M]) Cap() int64 { return e.capacity }

// UnusedCapacity returns Cap() - Len().
func (e *Extent[T, M]) UnusedCapacity() int64 { return e.capacity - e.length }

// IsEmpty reports whether the extent holds no elements.
func (e *Extent[T, M]) IsEmpty() bool { return e.length == 0 }

// Metadata returns a pointer to the caller-chosen metadata slot.
func (e *Extent[T, M]) Metadata() *M { return &e.meta }

// Data returns the live elements as a slice. The slice is invalidated by
// any operation that can grow the extent, exactly as for a Go slice backed
// by an array that gets reallocated.
func (e *Extent[T, M]) Data() []T {
	return e.slice()[:e.length:e.capacity]
}

// At returns the element at index i, debug-checked against bounds.
func (e *Extent[T, M]) At(i int64) T {
	errs.Check(i >= 0 && i < e.length, "Extent.At", "index out of range")

	return e.slice()[i]
}

// SetAt overwrites the element at index i, debug-checked against bounds.
func (e *Extent[T, M]) SetAt(i int64, v T) {
	errs.Check(i >= 0 && i < e.length, "Extent.SetAt", "index out of range")

	e.slice()[i] = v
}

func (e *Extent[T, M]) reserveExact(newCapacity int64) error {
	elemSize := sizeOfT[T]()

	newView := e.alloc.Allocate(newCapacity * elemSize)
	if newView.IsNull() {
		return errs.CapacityExhausted(newCapacity * elemSize)
	}

	newSlice := unsafe.Slice((*T)(newView.First), newCapacity)
	if !e.view.IsNull() {
		copy(newSlice, e.slice()[:e.length])

		if d, ok := e.alloc.(memview.Deallocator); ok {
			d.Deallocate(e.view)
		}
	}

	e.view = newView
	e.capacity = newCapacity

	return nil
}

// grow reserves room for at least lowerBound additional elements beyond the
// current size, via the injected growth policy, preserving the tail
// starting at offset (elements below offset are left where they are;
// elements from offset onward are shifted up by lowerBound). offset == -1
// means "no shift" (used by the no-insertion-point growth path).
func (e *Extent[T, M]) grow(lowerBound, offset int64) error {
	newCapacity := e.growth(e.capacity, lowerBound)
	elemSize := sizeOfT[T]()

	newView := e.alloc.Allocate(newCapacity * elemSize)
	if newView.IsNull() {
		return errs.CapacityExhausted(newCapacity * elemSize)
	}

	newSlice := unsafe.Slice((*T)(newView.First), newCapacity)

	if !e.view.IsNull() {
		old := e.slice()

		if offset < 0 {
			copy(newSlice, old[:e.length])
		} else {
			copy(newSlice[:offset], old[:offset])
			copy(newSlice[offset+lowerBound:e.length+lowerBound], old[offset:e.length])
		}

		if d, ok := e.alloc.(memview.Deallocator); ok {
			d.Deallocate(e.view)
		}
	}

	e.view = newView
	e.capacity = newCapacity

	return nil
}

// Reserve grows the extent, if necessary, so that Cap() >= k.
func (e *Extent[T, M]) Reserve(k int64) error {
	if e.capacity >= k {
		return nil
	}

	return e.grow(k-e.capacity, -1)
}

// ShrinkToFit releases unused capacity, reallocating to exactly Len().
func (e *Extent[T, M]) ShrinkToFit() error {
	return e.AdjustUnusedCapacity(0)
}

// AdjustUnusedCapacity reallocates so that Cap()-Len() == n exactly,
// preserving contents and metadata.
func (e *Extent[T, M]) AdjustUnusedCapacity(n int64) error {
	errs.Check(n >= 0, "Extent.AdjustUnusedCapacity", "n must be >= 0")

	if e.UnusedCapacity() == n {
		return nil
	}

	newCapacity := e.length + n
	if newCapacity == 0 {
		if d, ok := e.alloc.(memview.Deallocator); ok && !e.view.IsNull() {
			d.Deallocate(e.view)
		}

		e.view = memview.View{}
		e.capacity = 0

		return nil
	}

	return e.reserveExact(newCapacity)
}

// PushBack appends v, growing by the injected policy (lower bound 1) if the
// extent has no unused capacity, and returns a pointer to the new element's
// slot (valid only until the next operation that can grow the extent).
func (e *Extent[T, M]) PushBack(v T) (*T, error) {
	if e.UnusedCapacity() == 0 {
		if err := e.grow(1, -1); err != nil {
			return nil, err
		}
	}

	s := e.slice()
	s[e.length] = v
	e.length++

	return &s[e.length-1], nil
}

// PopBack removes the last element. Precondition: the extent is non-empty.
func (e *Extent[T, M]) PopBack() {
	errs.Check(e.length > 0, "Extent.PopBack", "extent is empty")

	e.length--

	var zero T
	e.slice()[e.length] = zero
}

// InsertSpace reserves contiguous room for n elements at the end, invokes
// writer to fill them, and returns their starting index.
func (e *Extent[T, M]) InsertSpace(n int64, writer Writer[T]) (int64, error) {
	if n <= 0 {
		return e.length, nil
	}

	if e.UnusedCapacity() < n {
		if err := e.grow(n, -1); err != nil {
			return 0, err
		}
	}

	at := e.length
	writer(e.slice()[at : at+n])
	e.length += n

	return at, nil
}

// InsertSpaceAt reserves contiguous room for n elements starting at pos,
// shifting elements at and after pos up by n, invokes writer to fill the
// new slots, and returns pos.
func (e *Extent[T, M]) InsertSpaceAt(pos, n int64, writer Writer[T]) (int64, error) {
	errs.Check(pos >= 0 && pos <= e.length, "Extent.InsertSpaceAt", "pos out of range")

	if n <= 0 {
		return pos, nil
	}

	if e.UnusedCapacity() < n {
		if err := e.grow(n, pos); err != nil {
			return 0, err
		}
	} else {
		s := e.slice()
		copy(s[pos+n:e.length+n], s[pos:e.length])
	}

	writer(e.slice()[pos : pos+n])
	e.length += n

	return pos, nil
}

// EraseSpace removes the n elements starting at first, moving the tail left
// by n. Precondition: first+n <= Len().
func (e *Extent[T, M]) EraseSpace(first, n int64) {
	errs.Check(n >= 0 && first >= 0 && first+n <= e.length, "Extent.EraseSpace", "range out of bounds")

	if n == 0 {
		return
	}

	s := e.slice()
	newLength := e.length - n
	copy(s[first:newLength], s[first+n:e.length])

	var zero T
	for i := newLength; i < e.length; i++ {
		s[i] = zero
	}

	e.length = newLength
}

// Clear destroys all live elements but preserves capacity.
func (e *Extent[T, M]) Clear() {
	s := e.slice()

	var zero T
	for i := int64(0); i < e.length; i++ {
		s[i] = zero
	}

	e.length = 0
}

// Equal reports element-wise equality using eq, ignoring metadata.
func Equal[T any, M any](a, b *Extent[T, M], eq func(x, y T) bool) bool {
	if a.length != b.length {
		return false
	}

	as, bs := a.Data(), b.Data()
	for i := range as {
		if !eq(as[i], bs[i]) {
			return false
		}
	}

	return true
}

// Compare returns -1, 0, or 1 comparing a and b lexicographically using
// less, ignoring metadata.
func Compare[T any, M any](a, b *Extent[T, M], less func(x, y T) bool) int {
	as, bs := a.Data(), b.Data()

	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		switch {
		case less(as[i], bs[i]):
			return -1
		case less(bs[i], as[i]):
			return 1
		}
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}
