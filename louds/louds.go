// Package louds provides the two succinct ordinal-tree encodings this
// module builds on a bitvector's rank/select: LOUDS (level-order unary
// degree sequence) for general ordinal trees, and binary-LOUDS for binary
// trees. Both expose O(1) navigation, given an O(1) rank/select bitvector,
// using only the closed-form equations below — no auxiliary structure
// beyond the bit sequence itself.
package louds

import (
	"github.com/SeleniaProject/succinct/bitvector"
	"github.com/SeleniaProject/succinct/memview"
	"github.com/SeleniaProject/succinct/pool"
	"github.com/SeleniaProject/succinct/tree"
)

// ordinalSource is what NewLOUDS needs from a source tree's cursor type: a
// linked bicursor capable of having its right-successor slot rewritten, so
// construction can reuse that slot as a BFS queue instead of allocating a
// separate container.
type ordinalSource[C any] interface {
	comparable
	tree.LinkedBicursor[C]
}

// LOUDS is a bit sequence of length 2n+1 encoding a rooted ordinal tree of
// n nodes: breadth-first, each node contributes one 1-bit per child
// followed by a terminating 0. A node's identity is the position of its
// opening bit.
type LOUDS struct {
	bits *bitvector.Bitvector
}

// NewLOUDS builds a LOUDS encoding of the n-node tree reachable from root
// via left/right-successor, using limit as the sentinel "no successor"
// cursor value. Construction performs one breadth-first walk, splicing
// each node's left-successor child list onto the queue via its own
// right-successor slot (rewritten afterwards to point at limit, restoring
// the original tree shape once construction completes).
func NewLOUDS[C ordinalSource[C]](alloc memview.Allocator, root, limit C, n int64) (*LOUDS, error) {
	bits, err := bitvector.New(alloc, 2*n+1)
	if err != nil {
		return nil, err
	}

	bits.Bitset(0)

	head, tail := root, root
	i, j := int64(2), int64(0)

	for head != limit {
		tail.SetRightSuccessor(head.LeftSuccessor())

		for tail.HasRightSuccessor() {
			bits.Bitset(i)
			i++
			tail = tail.RightSuccessor()
		}

		i++

		parent := head
		head = head.RightSuccessor()

		if !bits.Bitread(j + 1) {
			parent.SetRightSuccessor(limit)
			j++
		}

		j++
	}

	bits.Init()

	return &LOUDS{bits: bits}, nil
}

// Root returns the root's bit position.
func (t *LOUDS) Root() int64 { return 2 }

// FirstChild returns v's first child. Precondition: !IsLeaf(v).
func (t *LOUDS) FirstChild(v int64) int64 { return t.Child(v, 0) }

// LastChild returns v's last child. Precondition: !IsLeaf(v).
func (t *LOUDS) LastChild(v int64) int64 { return t.Child(v, t.Children(v)-1) }

// NextSibling returns v's next sibling. Precondition: v has one.
func (t *LOUDS) NextSibling(v int64) int64 { return t.bits.Succ0(v) + 1 }

// PrevSibling returns v's previous sibling. Precondition: v has one.
func (t *LOUDS) PrevSibling(v int64) int64 { return t.bits.Pred0(v-2) + 1 }

// Parent returns v's parent. Precondition: v != Root().
func (t *LOUDS) Parent(v int64) int64 {
	j := t.bits.Select1(t.bits.Rank0(v - 1))

	return t.bits.Pred0(j) + 1
}

// IsLeaf reports whether v has no children.
func (t *LOUDS) IsLeaf(v int64) bool { return !t.bits.Bitread(v) }

// Nodemap returns v's breadth-first index.
func (t *LOUDS) Nodemap(v int64) int64 { return t.bits.Rank0(v - 1) }

// Nodeselect is the inverse of Nodemap: the bit position of the i-th node
// in breadth-first order.
func (t *LOUDS) Nodeselect(i int64) int64 { return t.bits.Select0(i) + 1 }

// Children returns v's number of children.
func (t *LOUDS) Children(v int64) int64 { return t.bits.Succ0(v) - v }

// Child returns v's n-th child (0-indexed). Precondition: 0 <= n < Children(v).
func (t *LOUDS) Child(v, n int64) int64 { return t.bits.Select0(t.bits.Rank1(v+n)) + 1 }

// ChildRank returns v's index among its siblings. Precondition: v != Root().
func (t *LOUDS) ChildRank(v int64) int64 {
	j := t.bits.Select1(t.bits.Rank0(v) - 1)

	return j - t.bits.Pred0(j) - 1
}

// LCA returns the lowest common ancestor of u and v, walking both upward by
// Parent and always advancing whichever has the larger position.
func (t *LOUDS) LCA(u, v int64) int64 {
	return tree.LCA(t.Parent, func(x int64) int64 { return x }, u, v)
}

// binarySource is what NewBinaryLOUDS needs from a source tree's cursor
// type: a plain bicursor, walked read-only via a scratch FIFO queue.
type binarySource[C any] interface {
	tree.Bicursor[C]
}

// BinaryLOUDS is a bit sequence of length 2n encoding a rooted binary tree
// of n nodes: two bits per node, in breadth-first order, recording
// presence of a left and a right child.
type BinaryLOUDS struct {
	bits *bitvector.Bitvector
}

// NewBinaryLOUDS builds a binary-LOUDS encoding of the n-node tree
// reachable from root via left/right-successor. Construction uses a
// scratch doubly-linked pool as a FIFO queue (oldest-pushed node dequeued
// first by walking its Prev chain) so the source tree itself is never
// mutated, unlike the ordinal LOUDS construction.
func NewBinaryLOUDS[C binarySource[C]](alloc memview.Allocator, root C, n int64) (*BinaryLOUDS, error) {
	bits, err := bitvector.New(alloc, 2*n)
	if err != nil {
		return nil, err
	}

	bl := &BinaryLOUDS{bits: bits}

	if n == 0 {
		return bl, nil
	}

	queue := pool.NewLinkedPool[C](alloc)

	head, err := queue.AllocateNode(root, pool.Limit)
	if err != nil {
		return nil, err
	}

	tail := head

	var i int64

	for tail != pool.Limit {
		cur := queue.Value(tail)

		if cur.HasLeftSuccessor() {
			head, err = queue.AllocateNode(cur.LeftSuccessor(), head)
			if err != nil {
				return nil, err
			}

			bits.Bitset(i)
		}

		i++

		if cur.HasRightSuccessor() {
			head, err = queue.AllocateNode(cur.RightSuccessor(), head)
			if err != nil {
				return nil, err
			}

			bits.Bitset(i)
		}

		i++

		prev := queue.Prev(tail)
		queue.FreeNode(tail)
		tail = prev
	}

	bits.Init()

	return bl, nil
}

// Root returns the root's node id.
func (t *BinaryLOUDS) Root() int64 { return 0 }

// Parent returns v's parent. Precondition: v != Root().
func (t *BinaryLOUDS) Parent(v int64) int64 { return t.bits.Select1(v-1) / 2 }

// HasLeftChild reports whether v has a left child.
func (t *BinaryLOUDS) HasLeftChild(v int64) bool { return t.bits.Bitread(2 * v) }

// HasRightChild reports whether v has a right child.
func (t *BinaryLOUDS) HasRightChild(v int64) bool { return t.bits.Bitread(2*v + 1) }

// IsLeaf reports whether v has neither child.
func (t *BinaryLOUDS) IsLeaf(v int64) bool { return !t.HasLeftChild(v) && !t.HasRightChild(v) }

// LeftChild returns v's left child. Precondition: HasLeftChild(v).
func (t *BinaryLOUDS) LeftChild(v int64) int64 { return t.bits.Rank1(2*v) + 1 }

// RightChild returns v's right child. Precondition: HasRightChild(v).
func (t *BinaryLOUDS) RightChild(v int64) int64 { return t.bits.Rank1(2 * (v + 1)) }

// ChildLabel reports which side of its parent v occupies: 0 for a left
// child, 1 for a right child, -1 for the root.
func (t *BinaryLOUDS) ChildLabel(v int64) int64 {
	if v == 0 {
		return -1
	}

	return t.bits.Select1(v-1) % 2
}

// Cursor is a BidirectionalBicursor over a BinaryLOUDS tree.
type Cursor struct {
	t *BinaryLOUDS
	v int64
}

// NewCursor returns a cursor positioned at t's root.
func NewCursor(t *BinaryLOUDS) Cursor { return Cursor{t: t, v: t.Root()} }

// Node returns the underlying node id.
func (c Cursor) Node() int64 { return c.v }

// HasLeftSuccessor implements tree.Bicursor.
func (c Cursor) HasLeftSuccessor() bool { return c.t.HasLeftChild(c.v) }

// HasRightSuccessor implements tree.Bicursor.
func (c Cursor) HasRightSuccessor() bool { return c.t.HasRightChild(c.v) }

// LeftSuccessor implements tree.Bicursor.
func (c Cursor) LeftSuccessor() Cursor { return Cursor{t: c.t, v: c.t.LeftChild(c.v)} }

// RightSuccessor implements tree.Bicursor.
func (c Cursor) RightSuccessor() Cursor { return Cursor{t: c.t, v: c.t.RightChild(c.v)} }

// HasPredecessor implements tree.BidirectionalBicursor.
func (c Cursor) HasPredecessor() bool { return c.v != c.t.Root() }

// Predecessor implements tree.BidirectionalBicursor.
func (c Cursor) Predecessor() Cursor { return Cursor{t: c.t, v: c.t.Parent(c.v)} }

// IsLeftSuccessor reports, in O(1) from ChildLabel, whether c is its
// parent's left successor — the shortcut spec.md prefers over the generic
// predecessor-and-compare implementation in package tree.
func (c Cursor) IsLeftSuccessor() bool { return c.t.ChildLabel(c.v) == 0 }

// IsRightSuccessor reports, in O(1) from ChildLabel, whether c is its
// parent's right successor.
func (c Cursor) IsRightSuccessor() bool { return c.t.ChildLabel(c.v) == 1 }
