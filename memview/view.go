// Package memview provides the typed-view-over-raw-bytes primitive and the
// allocator abstraction every higher layer in this module is built on:
// extent, array, bitvector, and the node pools all acquire their backing
// storage through a memview.Allocator rather than talking to the Go runtime
// directly.
package memview

import "unsafe"

// View is a pair (first, size) denoting a contiguous region of untyped
// bytes. The zero View is the null view: First is nil and Size is 0.
type View struct {
	First unsafe.Pointer
	Size  int64
}

// IsNull reports whether v is the null view.
func (v View) IsNull() bool {
	return v.First == nil
}

// Equal reports structural equality: same address and same size.
func (v View) Equal(other View) bool {
	return v.First == other.First && v.Size == other.Size
}

// Less orders views by address first, then by size, giving every pair of
// views a total order.
func (v View) Less(other View) bool {
	if v.First != other.First {
		return uintptr(v.First) < uintptr(other.First)
	}

	return v.Size < other.Size
}
