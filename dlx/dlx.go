// Package dlx implements Knuth's Dancing Links (Algorithm X) exact-cover
// solver: given a set of items and a set of options (each a subset of
// items), enumerate the option subsets that cover each item exactly once.
// The whole search state — item headers, option rows, and the active-item
// list — lives in one contiguous node array addressed by absolute index,
// so the structure can be relocated without recomputing any link.
package dlx

import (
	"github.com/SeleniaProject/succinct/array"
	"github.com/SeleniaProject/succinct/extent"
	"github.com/SeleniaProject/succinct/memview"
)

// Integer is the signed integral value type a Solver is built over: item
// indices (0-based, as supplied by the caller) and 1-based option ids (as
// recovered from a solution).
type Integer interface {
	~int | ~int32 | ~int64
}

type node struct {
	Top, Ulink, Dlink int64
}

// Solver is an exact-cover search over nItems items and the options given
// at construction, laid out as eco_dlx.hpp lays out its node array: a
// leading spacer, nItems column headers (vertical per-item row lists,
// count in Top), one node per (option, item) pair with per-option spacer
// nodes carrying the negative 1-based option id, and a trailer block of
// nItems+1 headers forming the horizontal circular list of active items.
type Solver[T Integer] struct {
	data       *extent.Extent[node, struct{}]
	solution   []int64
	itemsFirst int64
	nItems     int64
}

// New constructs a Solver for nItems items (0-indexed) and the given
// options, each a slice of item indices it contains.
func New[T Integer](alloc memview.Allocator, nItems T, options [][]T) (*Solver[T], error) {
	n := int64(nItems)

	s := &Solver[T]{
		data:     extent.New[node, struct{}](alloc, nil),
		solution: make([]int64, n),
		nItems:   n,
	}

	if _, err := s.data.PushBack(node{}); err != nil { // index 0: the leading spacer
		return nil, err
	}

	for i := int64(1); i <= n; i++ {
		if _, err := s.data.PushBack(node{Top: 0, Ulink: i, Dlink: i}); err != nil {
			return nil, err
		}
	}

	if _, err := s.data.PushBack(node{}); err != nil { // blank node preceding the first option
		return nil, err
	}

	p := s.data.Len() - 1
	spacer := int64(-1)

	for _, option := range options {
		j := int64(1)

		for _, item := range option {
			i := int64(item) + 1

			if _, err := s.data.PushBack(node{Top: i}); err != nil {
				return nil, err
			}

			idx := s.data.Len() - 1

			hdr := s.data.At(i)
			hdr.Top++
			prev := hdr.Ulink
			hdr.Ulink = idx
			s.data.SetAt(i, hdr)

			prevNode := s.data.At(prev)
			prevNode.Dlink = idx
			s.data.SetAt(prev, prevNode)

			s.data.SetAt(idx, node{Top: i, Ulink: prev, Dlink: i})

			j++
		}

		pNode := s.data.At(p)
		pNode.Dlink = p - 1 + j
		s.data.SetAt(p, pNode)

		if _, err := s.data.PushBack(node{Top: spacer, Ulink: s.data.Len() - j + 1, Dlink: 0}); err != nil {
			return nil, err
		}

		spacer--
		p += j
	}

	trailerStart := s.data.Len()

	if _, err := s.data.PushBack(node{Top: 0, Ulink: trailerStart + n, Dlink: trailerStart + 1}); err != nil {
		return nil, err
	}

	for i := int64(1); i <= n; i++ {
		if _, err := s.data.PushBack(node{Top: i, Ulink: s.data.Len() - 1, Dlink: s.data.Len() + 1}); err != nil {
			return nil, err
		}
	}

	last := s.data.At(s.data.Len() - 1)
	last.Dlink = s.data.Len() - n - 1
	s.data.SetAt(s.data.Len()-1, last)

	s.itemsFirst = trailerStart

	return s, nil
}

// NItems returns the number of items the solver was constructed over.
func (s *Solver[T]) NItems() T { return T(s.nItems) }

func (s *Solver[T]) itemHeader(i int64) int64 { return s.itemsFirst + i }
func (s *Solver[T]) rlink(i int64) int64      { return s.data.At(s.itemHeader(i)).Dlink }

func (s *Solver[T]) unlink(x int64) {
	n := s.data.At(x)

	p := s.data.At(n.Ulink)
	p.Dlink = n.Dlink
	s.data.SetAt(n.Ulink, p)

	nx := s.data.At(n.Dlink)
	nx.Ulink = n.Ulink
	s.data.SetAt(n.Dlink, nx)
}

func (s *Solver[T]) relink(x int64) {
	n := s.data.At(x)

	p := s.data.At(n.Ulink)
	p.Dlink = x
	s.data.SetAt(n.Ulink, p)

	nx := s.data.At(n.Dlink)
	nx.Ulink = x
	s.data.SetAt(n.Dlink, nx)
}

// hide removes every other node of the option row containing p from its
// item's vertical list, decrementing that item's live count.
func (s *Solver[T]) hide(p int64) {
	for q := p + 1; q != p; {
		x := s.data.At(q).Top
		if x <= 0 {
			q = s.data.At(q).Ulink

			continue
		}

		s.unlink(q)

		it := s.data.At(x)
		it.Top--
		s.data.SetAt(x, it)

		q++
	}
}

// unhide is hide's exact inverse, walking the row in the opposite order.
func (s *Solver[T]) unhide(p int64) {
	for q := p - 1; q != p; {
		x := s.data.At(q).Top
		if x <= 0 {
			q = s.data.At(q).Dlink

			continue
		}

		s.relink(q)

		it := s.data.At(x)
		it.Top++
		s.data.SetAt(x, it)

		q--
	}
}

// cover hides every option row containing item i, then removes i itself
// from the active-item list.
func (s *Solver[T]) cover(i int64) {
	for p := s.data.At(i).Dlink; p != i; p = s.data.At(p).Dlink {
		s.hide(p)
	}

	s.unlink(s.itemHeader(i))
}

// uncover is cover's exact inverse.
func (s *Solver[T]) uncover(i int64) {
	s.relink(s.itemHeader(i))

	for p := s.data.At(i).Ulink; p != i; p = s.data.At(p).Ulink {
		s.unhide(p)
	}
}

// ItemIterator walks the active-item list starting at the trailer
// sentinel, yielding each active item's 1-based id and its live row count.
type ItemIterator[T Integer] struct {
	s    *Solver[T]
	head int64
	pos  int64
}

// Item returns the 1-based item id at the iterator's current position.
func (it ItemIterator[T]) Item() T { return T(it.pos - it.head) }

// Count returns the item's live row count, read from its column header's
// Top field (which Hide/Unhide keep current) rather than the trailer
// node's static label — see DESIGN.md for why this, not the original's
// item_iterator::operator*, is the correct "remaining values" signal.
func (it ItemIterator[T]) Count() T {
	return T(it.s.data.At(it.pos - it.head).Top)
}

// Next advances the iterator to the next active item.
func (it ItemIterator[T]) Next() ItemIterator[T] {
	return ItemIterator[T]{s: it.s, head: it.head, pos: it.s.data.At(it.pos).Dlink}
}

// Equal reports whether it and other are at the same position.
func (it ItemIterator[T]) Equal(other ItemIterator[T]) bool { return it.pos == other.pos }

func (s *Solver[T]) itemBegin() ItemIterator[T] {
	return ItemIterator[T]{s: s, head: s.itemsFirst, pos: s.itemsFirst}
}

// ItemChoiceHeuristic picks which active item to cover next, given the
// item chosen at the enclosing level's default and an iterator over the
// active-item list.
type ItemChoiceHeuristic[T Integer] func(i T, first ItemIterator[T]) T

// MRV is the minimum-remaining-values heuristic: the active item with the
// smallest live row count, ties broken by first occurrence. It stops
// scanning as soon as it finds a zero-count item, since no count can be
// smaller.
func MRV[T Integer](i T, first ItemIterator[T]) T {
	best, bestCount, found := i, T(0), false

	for pos := first.Next(); !pos.Equal(first); pos = pos.Next() {
		c := pos.Count()

		if !found || c < bestCount {
			best, bestCount, found = pos.Item(), c, true
		}

		if bestCount == 0 {
			break
		}
	}

	return best
}

// SolutionIter walks the candidate-row stack of a found solution level by
// level (pos is the level), yielding each level's 1-based option id by
// walking right from the chosen row node to the spacer that closes its
// option.
type SolutionIter[T Integer] struct {
	s   *Solver[T]
	pos int64
}

// Choice returns the 1-based option id at the iterator's current level.
func (it SolutionIter[T]) Choice() T {
	spacer := it.s.solution[it.pos]
	for it.s.data.At(spacer).Top > 0 {
		spacer++
	}

	return T(-it.s.data.At(spacer).Top)
}

// Next advances the iterator to the next level.
func (it SolutionIter[T]) Next() SolutionIter[T] { return SolutionIter[T]{s: it.s, pos: it.pos + 1} }

func (s *Solver[T]) solutionBegin() SolutionIter[T] {
	return SolutionIter[T]{s: s, pos: 0}
}

func (s *Solver[T]) coverItem(i, l int64, heuristic ItemChoiceHeuristic[T]) int64 {
	i = int64(heuristic(T(i), s.itemBegin()))
	s.cover(i)
	s.solution[l] = s.data.At(i).Dlink

	return i
}

func (s *Solver[T]) tryOption(l int64) int64 {
	for p := s.solution[l] + 1; p != s.solution[l]; {
		i := s.data.At(p).Top
		if i <= 0 {
			p = s.data.At(p).Ulink

			continue
		}

		s.cover(i)
		p++
	}

	return l + 1
}

func (s *Solver[T]) retryOption(l int64) int64 {
	for p := s.solution[l] - 1; p != s.solution[l]; {
		i := s.data.At(p).Top
		if i <= 0 {
			p = s.data.At(p).Dlink

			continue
		}

		s.uncover(i)
		p--
	}

	i := s.data.At(s.solution[l]).Top
	s.solution[l] = s.data.At(s.solution[l]).Dlink

	return i
}

// Visitor is invoked exactly once per solution found, with the depth l and
// an iterator over solution[0..l) yielding each level's 1-based option id.
type Visitor[T Integer] func(l int64, first SolutionIter[T])

type searchState int

const (
	stateEnterLevel searchState = iota
	stateTryOption
	stateRetryOption
	stateBacktrack
	stateLeaveLevel
)

// Search runs Algorithm X: a small explicit state machine over levels
// l = 0, 1, ..., in place of recursion, bounding stack depth by the number
// of options in the partial solution. heuristic defaults to MRV when nil.
func (s *Solver[T]) Search(visitor Visitor[T], heuristic ItemChoiceHeuristic[T]) {
	if heuristic == nil {
		heuristic = MRV[T]
	}

	var i, l int64 = 1, 0
	state := stateEnterLevel

	for {
		switch state {
		case stateEnterLevel:
			if s.rlink(0) == s.itemsFirst {
				visitor(l, s.solutionBegin())

				state = stateLeaveLevel

				continue
			}

			i = s.coverItem(i, l, heuristic)
			state = stateTryOption

		case stateTryOption:
			if s.solution[l] == i {
				state = stateBacktrack
			} else {
				l = s.tryOption(l)
				state = stateEnterLevel
			}

		case stateRetryOption:
			i = s.retryOption(l)
			state = stateTryOption

		case stateBacktrack:
			s.uncover(i)
			state = stateLeaveLevel

		case stateLeaveLevel:
			if l > 0 {
				l--
				state = stateRetryOption
			} else {
				return
			}
		}
	}
}

// CollectAll is a ready-made Visitor, grounded on eco_dlx.hpp's
// dlx_visit_all, that appends every solution's 1-based option ids (in
// level order) to Solutions.
type CollectAll[T Integer] struct {
	Solutions *array.Array[*array.Array[T]]
	alloc     memview.Allocator
}

// NewCollectAll constructs a CollectAll drawing its result arrays from
// alloc.
func NewCollectAll[T Integer](alloc memview.Allocator) *CollectAll[T] {
	return &CollectAll[T]{Solutions: array.New[*array.Array[T]](alloc), alloc: alloc}
}

// Visit implements Visitor.
func (c *CollectAll[T]) Visit(l int64, first SolutionIter[T]) {
	options := array.New[T](c.alloc)

	for ; l > 0; l-- {
		_ = options.PushBack(first.Choice())
		first = first.Next()
	}

	_ = c.Solutions.PushBack(options)
}
