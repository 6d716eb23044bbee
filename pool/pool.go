// Package pool provides forward and doubly-linked node pools: arena-backed
// linked lists addressed by signed integer indices instead of pointers.
// Neighbour offsets are stored as deltas from the node's own index, so the
// backing store can move (e.g. on extent growth) without invalidating any
// index already handed out.
package pool

import (
	"github.com/SeleniaProject/succinct/errs"
	"github.com/SeleniaProject/succinct/extent"
	"github.com/SeleniaProject/succinct/memview"
)

// Limit is the sentinel index denoting end-of-list and a null free-list
// head. It never appears as a valid payload-carrying index.
const Limit int64 = -1

type forwardNode[T any] struct {
	next int64
	val  T
}

// ForwardPool is a singly-linked node pool.
type ForwardPool[T any] struct {
	nodes *extent.Extent[forwardNode[T], int64]
}

// NewForwardPool constructs an empty forward pool.
func NewForwardPool[T any](alloc memview.Allocator) *ForwardPool[T] {
	p := &ForwardPool[T]{nodes: extent.New[forwardNode[T], int64](alloc, nil)}
	*p.nodes.Metadata() = Limit

	return p
}

func (p *ForwardPool[T]) freeListHead() int64     { return *p.nodes.Metadata() }
func (p *ForwardPool[T]) setFreeListHead(x int64) { *p.nodes.Metadata() = x }

func (p *ForwardPool[T]) node(x int64) forwardNode[T] { return p.nodes.At(x) }

func (p *ForwardPool[T]) setNext(x, y int64) {
	n := p.nodes.At(x)
	n.next = y - x
	p.nodes.SetAt(x, n)
}

// Value returns the payload stored at index x.
func (p *ForwardPool[T]) Value(x int64) T { return p.node(x).val }

// SetValue overwrites the payload stored at index x.
func (p *ForwardPool[T]) SetValue(x int64, v T) {
	n := p.nodes.At(x)
	n.val = v
	p.nodes.SetAt(x, n)
}

// Next returns the successor of x, or Limit if x is the last node of its
// list.
func (p *ForwardPool[T]) Next(x int64) int64 { return x + p.node(x).next }

// AllocateNode reuses the free-list head if one is available, else appends
// a fresh node, links it to point at tail, stores val, and returns its
// index.
func (p *ForwardPool[T]) AllocateNode(val T, tail int64) (int64, error) {
	newIdx := p.freeListHead()

	if newIdx == Limit {
		if _, err := p.nodes.PushBack(forwardNode[T]{}); err != nil {
			return 0, err
		}

		newIdx = p.nodes.Len() - 1
	} else {
		p.setFreeListHead(p.Next(newIdx))
	}

	p.setNext(newIdx, tail)
	p.SetValue(newIdx, val)

	return newIdx, nil
}

// FreeNode unlinks x from its list and pushes it onto the free-list,
// returning what was x's successor. Precondition: x is a list head.
func (p *ForwardPool[T]) FreeNode(x int64) int64 {
	tail := p.Next(x)
	p.setNext(x, p.freeListHead())
	p.setFreeListHead(x)

	return tail
}

// FreeList frees the entire list starting at head.
func FreeList[T any](p *ForwardPool[T], head int64) {
	for head != Limit {
		head = p.FreeNode(head)
	}
}

// ForwardCursor wraps a (pool, index) pair; incrementing adds the node's
// stored delta to the current index.
type ForwardCursor[T any] struct {
	Pool *ForwardPool[T]
	Idx  int64
}

// Value returns the payload under the cursor.
func (c ForwardCursor[T]) Value() T { return c.Pool.Value(c.Idx) }

// Next returns a cursor advanced by one step, or a cursor at Limit if this
// was the last node.
func (c ForwardCursor[T]) Next() ForwardCursor[T] {
	return ForwardCursor[T]{Pool: c.Pool, Idx: c.Pool.Next(c.Idx)}
}

// Valid reports whether the cursor refers to an actual node.
func (c ForwardCursor[T]) Valid() bool { return c.Idx != Limit }

type linkedNode[T any] struct {
	prev int64
	next int64
	val  T
}

// LinkedPool is a doubly-linked node pool.
type LinkedPool[T any] struct {
	nodes *extent.Extent[linkedNode[T], int64]
}

// NewLinkedPool constructs an empty doubly-linked pool.
func NewLinkedPool[T any](alloc memview.Allocator) *LinkedPool[T] {
	p := &LinkedPool[T]{nodes: extent.New[linkedNode[T], int64](alloc, nil)}
	*p.nodes.Metadata() = Limit

	return p
}

func (p *LinkedPool[T]) freeListHead() int64     { return *p.nodes.Metadata() }
func (p *LinkedPool[T]) setFreeListHead(x int64) { *p.nodes.Metadata() = x }

func (p *LinkedPool[T]) node(x int64) linkedNode[T] { return p.nodes.At(x) }

func (p *LinkedPool[T]) setPrev(x, y int64) {
	n := p.nodes.At(x)
	n.prev = y - x
	p.nodes.SetAt(x, n)
}

func (p *LinkedPool[T]) setNext(x, y int64) {
	n := p.nodes.At(x)
	n.next = y - x
	p.nodes.SetAt(x, n)
}

// Value returns the payload stored at index x.
func (p *LinkedPool[T]) Value(x int64) T { return p.node(x).val }

// SetValue overwrites the payload stored at index x.
func (p *LinkedPool[T]) SetValue(x int64, v T) {
	n := p.nodes.At(x)
	n.val = v
	p.nodes.SetAt(x, n)
}

// Prev returns the predecessor of x, or Limit if x is the first node of
// its list.
func (p *LinkedPool[T]) Prev(x int64) int64 { return x + p.node(x).prev }

// Next returns the successor of x, or Limit if x is the last node of its
// list.
func (p *LinkedPool[T]) Next(x int64) int64 { return x + p.node(x).next }

// AllocateNode reuses the free-list head if one is available, else appends
// a fresh node, links it ahead of tail, stores val, and returns its index.
func (p *LinkedPool[T]) AllocateNode(val T, tail int64) (int64, error) {
	newIdx := p.freeListHead()

	if newIdx == Limit {
		if _, err := p.nodes.PushBack(linkedNode[T]{}); err != nil {
			return 0, err
		}

		newIdx = p.nodes.Len() - 1
	} else {
		p.setFreeListHead(p.Next(newIdx))
	}

	p.setPrev(newIdx, Limit)
	p.setNext(newIdx, tail)
	p.SetValue(newIdx, val)

	if tail != Limit {
		p.setPrev(tail, newIdx)
	}

	return newIdx, nil
}

// FreeNode unlinks x from its list's neighbours, pushes it onto the
// free-list, and returns what was x's successor.
func (p *LinkedPool[T]) FreeNode(x int64) int64 {
	previous := p.Prev(x)
	if previous != Limit {
		p.setNext(previous, Limit)
	}

	tail := p.Next(x)
	if tail != Limit {
		p.setPrev(tail, Limit)
	}

	p.setNext(x, p.freeListHead())
	p.setFreeListHead(x)

	return tail
}

// UnlinkNode makes prev(x) and next(x) skip over x, by adjusting their own
// deltas. Precondition: prev(x) != Limit && next(x) != Limit.
func (p *LinkedPool[T]) UnlinkNode(x int64) {
	errs.Check(p.Prev(x) != Limit && p.Next(x) != Limit, "LinkedPool.UnlinkNode", "x must have both neighbours")

	xn := p.node(x)

	pn := p.nodes.At(p.Prev(x))
	pn.next += xn.next
	p.nodes.SetAt(p.Prev(x), pn)

	nn := p.nodes.At(p.Next(x))
	nn.prev += xn.prev
	p.nodes.SetAt(p.Next(x), nn)
}

// RelinkNode reverses the exact edit UnlinkNode made, correct only when
// prev(x) and next(x) have not otherwise moved in between.
func (p *LinkedPool[T]) RelinkNode(x int64) {
	errs.Check(p.Prev(x) != Limit && p.Next(x) != Limit, "LinkedPool.RelinkNode", "x must have both neighbours")

	xn := p.node(x)

	pn := p.nodes.At(p.Prev(x))
	pn.next -= xn.next
	p.nodes.SetAt(p.Prev(x), pn)

	nn := p.nodes.At(p.Next(x))
	nn.prev -= xn.prev
	p.nodes.SetAt(p.Next(x), nn)
}

// FreeLinkedList frees the entire doubly-linked list starting at head.
func FreeLinkedList[T any](p *LinkedPool[T], head int64) {
	for head != Limit {
		head = p.FreeNode(head)
	}
}

// LinkedCursor wraps a (pool, index) pair over a doubly-linked pool.
type LinkedCursor[T any] struct {
	Pool *LinkedPool[T]
	Idx  int64
}

// Value returns the payload under the cursor.
func (c LinkedCursor[T]) Value() T { return c.Pool.Value(c.Idx) }

// Next returns a cursor advanced by one step.
func (c LinkedCursor[T]) Next() LinkedCursor[T] {
	return LinkedCursor[T]{Pool: c.Pool, Idx: c.Pool.Next(c.Idx)}
}

// Prev returns a cursor moved back by one step.
func (c LinkedCursor[T]) Prev() LinkedCursor[T] {
	return LinkedCursor[T]{Pool: c.Pool, Idx: c.Pool.Prev(c.Idx)}
}

// Valid reports whether the cursor refers to an actual node.
func (c LinkedCursor[T]) Valid() bool { return c.Idx != Limit }
