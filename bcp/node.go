package bcp

import "github.com/katalvlaran/tdbcp/vrpinstance"

// Node is one entry of the branch-cut-and-price search tree: a restricted
// master problem defined by the arcs forbidden along the path from the
// root, plus the LP bound and valuation computed for it (bcp.h's Node).
type Node struct {
	Index         int
	Bound         float64
	ForbiddenArcs []vrpinstance.Arc
	Opt           map[int]float64
}

// nodeHeap is a container/heap min-heap on ascending Bound, the Go
// counterpart of the original's priority_queue with a greater-than
// comparator: best-bound node selection always pops the open node with the
// smallest LP bound first.
type nodeHeap []*Node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].Bound < h[j].Bound }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*Node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
