// Package array provides a thin ordered-sequence façade over an extent
// that carries no user metadata.
package array

import (
	"github.com/SeleniaProject/succinct/extent"
	"github.com/SeleniaProject/succinct/memview"
)

// Array is a user-facing ordered sequence over extent.Extent[T, struct{}].
type Array[T any] struct {
	e *extent.Extent[T, struct{}]
}

// New constructs an empty array drawing storage from alloc.
func New[T any](alloc memview.Allocator) *Array[T] {
	return &Array[T]{e: extent.New[T, struct{}](alloc, nil)}
}

// Len returns the number of elements.
func (a *Array[T]) Len() int64 { return a.e.Len() }

// Cap returns the current capacity.
func (a *Array[T]) Cap() int64 { return a.e.Cap() }

// IsEmpty reports whether the array holds no elements.
func (a *Array[T]) IsEmpty() bool { return a.e.IsEmpty() }

// At returns the element at index i, in-bounds-checked at debug level.
func (a *Array[T]) At(i int64) T { return a.e.At(i) }

// SetAt overwrites the element at index i, in-bounds-checked at debug
// level.
func (a *Array[T]) SetAt(i int64, v T) { a.e.SetAt(i, v) }

// Data returns the live elements as a slice, invalidated by any growing
// operation.
func (a *Array[T]) Data() []T { return a.e.Data() }

// Reserve grows the array, if necessary, so that Cap() >= k.
func (a *Array[T]) Reserve(k int64) error { return a.e.Reserve(k) }

// ShrinkToFit releases unused capacity; capacity becomes max(Len(), 0).
func (a *Array[T]) ShrinkToFit() error { return a.e.ShrinkToFit() }

// PushBack appends v.
func (a *Array[T]) PushBack(v T) error {
	_, err := a.e.PushBack(v)

	return err
}

// PopBack removes the last element. Precondition: non-empty.
func (a *Array[T]) PopBack() { a.e.PopBack() }

// Append appends every element of values, in order.
func (a *Array[T]) Append(values ...T) error {
	_, err := a.e.InsertSpace(int64(len(values)), func(dst []T) {
		copy(dst, values)
	})

	return err
}

// Insert inserts values starting at pos, implemented as append-then-rotate
// over the freshly reserved space (the rotation is folded into
// InsertSpaceAt's shift-then-write).
func (a *Array[T]) Insert(pos int64, values ...T) error {
	_, err := a.e.InsertSpaceAt(pos, int64(len(values)), func(dst []T) {
		copy(dst, values)
	})

	return err
}

// Erase removes the n elements starting at pos.
func (a *Array[T]) Erase(pos, n int64) { a.e.EraseSpace(pos, n) }

// Clear destroys all elements but preserves capacity.
func (a *Array[T]) Clear() { a.e.Clear() }

// Resize grows or shrinks the array to exactly n elements, padding new
// slots with value when growing.
func (a *Array[T]) Resize(n int64, value T) error {
	switch {
	case n < a.Len():
		a.Erase(n, a.Len()-n)
	case n > a.Len():
		fill := n - a.Len()
		if _, err := a.e.InsertSpace(fill, func(dst []T) {
			for i := range dst {
				dst[i] = value
			}
		}); err != nil {
			return err
		}
	}

	return nil
}

// Swap exchanges the backing extents of a and b in constant time.
func (a *Array[T]) Swap(b *Array[T]) {
	a.e, b.e = b.e, a.e
}

// Equal reports element-wise equality using eq.
func Equal[T any](a, b *Array[T], eq func(x, y T) bool) bool {
	return extent.Equal(a.e, b.e, eq)
}

// Compare returns -1, 0, or 1 comparing a and b lexicographically using
// less.
func Compare[T any](a, b *Array[T], less func(x, y T) bool) int {
	return extent.Compare(a.e, b.e, less)
}
