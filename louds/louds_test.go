package louds

import (
	"testing"

	"github.com/SeleniaProject/succinct/memview"
	"github.com/SeleniaProject/succinct/tree"
)

// ordinalNode threads a general tree via the classic left-child /
// next-sibling encoding LOUDS construction walks.
type ordinalNode struct {
	firstChild, nextSibling, parent int
}

type ordinalTree struct {
	nodes []ordinalNode
}

type ordinalCursor struct {
	t   *ordinalTree
	idx int
}

func (c ordinalCursor) HasLeftSuccessor() bool  { return c.t.nodes[c.idx].firstChild >= 0 }
func (c ordinalCursor) HasRightSuccessor() bool { return c.t.nodes[c.idx].nextSibling >= 0 }
func (c ordinalCursor) LeftSuccessor() ordinalCursor {
	return ordinalCursor{t: c.t, idx: c.t.nodes[c.idx].firstChild}
}
func (c ordinalCursor) RightSuccessor() ordinalCursor {
	return ordinalCursor{t: c.t, idx: c.t.nodes[c.idx].nextSibling}
}
func (c ordinalCursor) HasPredecessor() bool { return c.t.nodes[c.idx].parent >= 0 }
func (c ordinalCursor) Predecessor() ordinalCursor {
	return ordinalCursor{t: c.t, idx: c.t.nodes[c.idx].parent}
}
func (c ordinalCursor) SetLeftSuccessor(o ordinalCursor)  { c.t.nodes[c.idx].firstChild = o.idx }
func (c ordinalCursor) SetRightSuccessor(o ordinalCursor) { c.t.nodes[c.idx].nextSibling = o.idx }

// buildOrdinalFixture threads the tree rooted at 1 with the children lists
// given, in label order, returning the tree plus a label->index map.
func buildOrdinalFixture(labels []int, children map[int][]int) (*ordinalTree, map[int]int) {
	idx := make(map[int]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}

	ot := &ordinalTree{nodes: make([]ordinalNode, len(labels))}
	for i := range ot.nodes {
		ot.nodes[i] = ordinalNode{firstChild: -1, nextSibling: -1, parent: -1}
	}

	for _, l := range labels {
		kids := children[l]
		for i, k := range kids {
			ot.nodes[idx[k]].parent = idx[l]
			if i == 0 {
				ot.nodes[idx[l]].firstChild = idx[k]
			} else {
				ot.nodes[idx[kids[i-1]]].nextSibling = idx[k]
			}
		}
	}

	return ot, idx
}

// TestLOUDSScenario builds the tree of spec.md's scenario 2 (node 1's
// children 2,3,4; node 2's children 5,6; node 3's children 7,8; node 7's
// children 9,10; node 8's child 11; node 9's children 17,18,19; node 11's
// children 13,14,15,16; node 14's child 20) and checks the closed-form
// navigation equations against the positions that breadth-first
// construction is required to produce.
func TestLOUDSScenario(t *testing.T) {
	labels := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 14, 15, 16, 17, 18, 19, 20}
	children := map[int][]int{
		1:  {2, 3, 4},
		2:  {5, 6},
		3:  {7, 8},
		7:  {9, 10},
		8:  {11},
		9:  {17, 18, 19},
		11: {13, 14, 15, 16},
		14: {20},
	}

	ot, idx := buildOrdinalFixture(labels, children)
	root := ordinalCursor{t: ot, idx: idx[1]}
	limit := ordinalCursor{t: ot, idx: -1}

	alloc := memview.NewSystemAllocator()

	lt, err := NewLOUDS[ordinalCursor](alloc, root, limit, int64(len(labels)))
	if err != nil {
		t.Fatalf("NewLOUDS: %v", err)
	}

	if got := lt.Root(); got != 2 {
		t.Fatalf("Root() = %d, want 2", got)
	}

	firstChild := lt.FirstChild(lt.Root())
	if firstChild != 6 {
		t.Fatalf("FirstChild(root) = %d, want 6", firstChild)
	}

	lastChild := lt.LastChild(lt.Root())
	if lastChild != 12 {
		t.Fatalf("LastChild(root) = %d, want 12", lastChild)
	}

	if got := lt.Children(lt.Root()); got != 3 {
		t.Fatalf("Children(root) = %d, want 3", got)
	}

	if got := lt.Child(6, 0); got != 13 {
		t.Fatalf("Child(6,0) = %d, want 13", got)
	}

	if got := lt.Child(6, 1); got != 14 {
		t.Fatalf("Child(6,1) = %d, want 14", got)
	}

	if got := lt.ChildRank(lastChild); got != 2 {
		t.Fatalf("ChildRank(lastChild) = %d, want 2", got)
	}

	if got := lt.LCA(firstChild, lastChild); got != lt.Root() {
		t.Fatalf("LCA(firstChild, lastChild) = %d, want root %d", got, lt.Root())
	}
}

// TestLOUDSNodemapNodeselectRoundTrip checks invariant 5 of spec.md §8:
// nodeselect(nodemap(v)) == v for every valid node position, over every
// opening-bit position of a 7-node tree (1:{2,3}, 2:{4,5}, 3:{6,7}), and
// checks that the walk reaches exactly n nodes.
func TestLOUDSNodemapNodeselectRoundTrip(t *testing.T) {
	labels := []int{1, 2, 3, 4, 5, 6, 7}
	children := map[int][]int{
		1: {2, 3},
		2: {4, 5},
		3: {6, 7},
	}

	ot, idx := buildOrdinalFixture(labels, children)
	root := ordinalCursor{t: ot, idx: idx[1]}
	limit := ordinalCursor{t: ot, idx: -1}

	alloc := memview.NewSystemAllocator()

	lt, err := NewLOUDS[ordinalCursor](alloc, root, limit, int64(len(labels)))
	if err != nil {
		t.Fatalf("NewLOUDS: %v", err)
	}

	var count int64

	v := lt.Root()
	stack := []int64{v}

	for len(stack) > 0 {
		v, stack = stack[len(stack)-1], stack[:len(stack)-1]
		count++

		if got := lt.Nodeselect(lt.Nodemap(v)); got != v {
			t.Fatalf("Nodeselect(Nodemap(%d)) = %d, want %d", v, got, v)
		}

		if !lt.IsLeaf(v) {
			for n := int64(0); n < lt.Children(v); n++ {
				stack = append(stack, lt.Child(v, n))
			}
		}
	}

	if count != int64(len(labels)) {
		t.Fatalf("visited %d nodes, want %d", count, len(labels))
	}
}

// binNode is a plain array-indexed binary tree node, left/right holding
// child indices or -1.
type binNode struct {
	left, right int
}

type binTree struct {
	nodes []binNode
}

type binCursor struct {
	t   *binTree
	idx int
}

func (c binCursor) HasLeftSuccessor() bool  { return c.t.nodes[c.idx].left >= 0 }
func (c binCursor) HasRightSuccessor() bool { return c.t.nodes[c.idx].right >= 0 }
func (c binCursor) LeftSuccessor() binCursor {
	return binCursor{t: c.t, idx: c.t.nodes[c.idx].left}
}
func (c binCursor) RightSuccessor() binCursor {
	return binCursor{t: c.t, idx: c.t.nodes[c.idx].right}
}

// TestBinaryLOUDSScenario builds the 12-node binary tree of spec.md's
// scenario 3 (designed so BFS id assignment lands exactly on the
// positions the scenario names) and checks navigation, tree_weight, and
// tree_height.
func TestBinaryLOUDSScenario(t *testing.T) {
	bt := &binTree{nodes: []binNode{
		{1, 2},   // A = root
		{3, 4},   // B
		{5, 9},   // C
		{6, -1},  // D
		{10, -1}, // E
		{11, -1}, // F
		{7, -1},  // G
		{8, -1},  // H
		{-1, -1}, // I
		{-1, -1}, // J
		{-1, -1}, // K
		{-1, -1}, // M
	}}

	root := binCursor{t: bt, idx: 0}

	alloc := memview.NewSystemAllocator()

	bl, err := NewBinaryLOUDS[binCursor](alloc, root, int64(len(bt.nodes)))
	if err != nil {
		t.Fatalf("NewBinaryLOUDS: %v", err)
	}

	if got := bl.LeftChild(bl.Root()); got != 1 {
		t.Fatalf("LeftChild(root) = %d, want 1", got)
	}

	if got := bl.RightChild(bl.Root()); got != 2 {
		t.Fatalf("RightChild(root) = %d, want 2", got)
	}

	if got := bl.RightChild(bl.LeftChild(bl.Root())); got != 4 {
		t.Fatalf("RightChild(LeftChild(root)) = %d, want 4", got)
	}

	if got := bl.ChildLabel(bl.Root()); got != -1 {
		t.Fatalf("ChildLabel(root) = %d, want -1", got)
	}

	cur := NewCursor(bl)

	if got := tree.Weight[Cursor](cur); got != 12 {
		t.Fatalf("Weight(root) = %d, want 12", got)
	}

	if got := tree.Height[Cursor](cur); got != 5 {
		t.Fatalf("Height(root) = %d, want 5", got)
	}
}

// TestBinaryLOUDSIsLeftRightSuccessor checks the O(1) child_label-based
// shortcuts against the generic predecessor-and-compare implementation in
// package tree.
func TestBinaryLOUDSIsLeftRightSuccessor(t *testing.T) {
	bt := &binTree{nodes: []binNode{
		{1, 2},
		{-1, -1},
		{-1, -1},
	}}

	alloc := memview.NewSystemAllocator()

	bl, err := NewBinaryLOUDS[binCursor](alloc, binCursor{t: bt, idx: 0}, int64(len(bt.nodes)))
	if err != nil {
		t.Fatalf("NewBinaryLOUDS: %v", err)
	}

	left := Cursor{t: bl, v: bl.LeftChild(bl.Root())}
	right := Cursor{t: bl, v: bl.RightChild(bl.Root())}

	if !left.IsLeftSuccessor() || left.IsRightSuccessor() {
		t.Fatalf("left child misclassified: IsLeftSuccessor=%v IsRightSuccessor=%v", left.IsLeftSuccessor(), left.IsRightSuccessor())
	}

	if !right.IsRightSuccessor() || right.IsLeftSuccessor() {
		t.Fatalf("right child misclassified: IsLeftSuccessor=%v IsRightSuccessor=%v", right.IsLeftSuccessor(), right.IsRightSuccessor())
	}

	if tree.IsLeftSuccessor[Cursor](left) != left.IsLeftSuccessor() {
		t.Fatalf("generic IsLeftSuccessor disagrees with the O(1) shortcut")
	}
}
