package vrpinstance

import "container/heap"

// ComputeLDT fills in.LDT with the latest-departure-time table: LDT[k][i] is
// the latest time vertex k can depart toward i and still arrive at i's
// deadline tw[i].Right. It runs one "latest-is-best" backward search per
// target i over the predecessor digraph, relaxing with DepartureTime instead
// of a simple additive weight (time-dependent travel times cannot be
// summed).
//
// Adapted from dijkstra.Dijkstra's runner/nodePQ heap idiom: same min-heap
// lazy-decrease-key structure, but maximizing departure time ("bigger is
// better") and walking D's predecessors instead of its successors.
func (in *Instance) ComputeLDT() {
	n := in.N()
	in.LDT = make([][]float64, n)
	for k := range in.LDT {
		in.LDT[k] = make([]float64, n)
	}
	for _, i := range in.D.Vertices() {
		ldt := in.latestDepartureTo(i)
		for _, k := range in.D.Vertices() {
			in.LDT[k][i] = ldt[k]
		}
	}
}

// latestDepartureTo runs the backward latest-departure search rooted at
// target i and returns, for every vertex k, the latest time k can depart
// toward i without missing i's deadline.
func (in *Instance) latestDepartureTo(i int) []float64 {
	n := in.N()
	ldt := make([]float64, n)
	visited := make([]bool, n)
	for k := range ldt {
		ldt[k] = -Inf
	}
	ldt[i] = in.TW[i].Right

	pq := make(ldtPQ, 0, n)
	heap.Init(&pq)
	heap.Push(&pq, &ldtItem{v: i, t: ldt[i]})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*ldtItem)
		v, t := item.v, item.t
		if visited[v] {
			continue
		}
		if epsilonSmaller(t, ldt[v]) {
			continue
		}
		visited[v] = true

		for _, u := range in.D.Predecessors(v) {
			cand := in.DepartureTime(u, v, t)
			if cand >= Inf {
				continue
			}
			if cand > ldt[u] {
				ldt[u] = cand
				heap.Push(&pq, &ldtItem{v: u, t: cand})
			}
		}
	}
	return ldt
}

type ldtItem struct {
	v int
	t float64
}

// ldtPQ is a max-heap of *ldtItem ordered by descending t, the "latest
// departure wins" analogue of dijkstra.nodePQ's ascending min-heap.
type ldtPQ []*ldtItem

func (pq ldtPQ) Len() int            { return len(pq) }
func (pq ldtPQ) Less(i, j int) bool  { return pq[i].t > pq[j].t }
func (pq ldtPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *ldtPQ) Push(x interface{}) { *pq = append(*pq, x.(*ldtItem)) }
func (pq *ldtPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
