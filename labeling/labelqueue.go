package labeling

import (
	"container/heap"

	"github.com/katalvlaran/tdbcp/label"
)

// queueItem pairs a LazyLabel extension request with the ordering key
// (makespan, parent length+1, parent demand) spec.md §4.4 uses so the queue
// need not dereference the parent label on every comparison.
type queueItem struct {
	ll     label.LazyLabel
	length int
	q      float64
}

// LabelQueue is a min-priority-queue of pending label extensions, ordered
// ascending by (makespan, length+1, q) — the same tuple the original
// LabelExtensionComparator sorts by, translated from a std::priority_queue
// with a "greater" comparator (pop-smallest) into container/heap's
// pop-smallest-via-Less convention.
//
// Grounded on dijkstra.nodePQ: same Len/Less/Swap/Push/Pop slice-of-pointers
// shape, generalized from a single-field distance key to a 3-tuple.
type LabelQueue struct {
	items []*queueItem
}

// NewLabelQueue returns an empty, initialized LabelQueue.
func NewLabelQueue() *LabelQueue {
	q := &LabelQueue{}
	heap.Init(q)
	return q
}

// Enqueue pushes a lazy extension request, keyed by its parent's length and
// demand.
func (q *LabelQueue) Enqueue(ll label.LazyLabel, parentLength int, parentQ float64) {
	heap.Push(q, &queueItem{ll: ll, length: parentLength + 1, q: parentQ})
}

// Dequeue removes and returns the lazy extension with the smallest
// (makespan, length, q).
func (q *LabelQueue) Dequeue() label.LazyLabel {
	item := heap.Pop(q).(*queueItem)
	return item.ll
}

// Top returns the smallest item without removing it.
func (q *LabelQueue) Top() label.LazyLabel { return q.items[0].ll }

// Empty reports whether the queue has no pending extensions.
func (q *LabelQueue) Empty() bool { return len(q.items) == 0 }

// Len implements heap.Interface.
func (q *LabelQueue) Len() int { return len(q.items) }

// Less implements heap.Interface: ascending (makespan, length, q).
func (q *LabelQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.ll.Makespan != b.ll.Makespan {
		return a.ll.Makespan < b.ll.Makespan
	}
	if a.length != b.length {
		return a.length < b.length
	}
	return a.q < b.q
}

// Swap implements heap.Interface.
func (q *LabelQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

// Push implements heap.Interface. Callers should use Enqueue instead.
func (q *LabelQueue) Push(x interface{}) { q.items = append(q.items, x.(*queueItem)) }

// Pop implements heap.Interface. Callers should use Dequeue instead.
func (q *LabelQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}
