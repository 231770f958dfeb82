package labeling

import "github.com/katalvlaran/tdbcp/label"

// bucketEntry is one demand level of the dominance structure: all processed
// labels at vertex v whose demand floors to Floor, sorted by alpha when
// SortByCost is enabled. Go has no ordered map, so a per-vertex demand
// level is a growable, insertion-sorted []bucketEntry — the VectorMap
// equivalent spec.md §9 calls for, in the spirit of the teacher's own
// sorted-slice insertion idiom.
type bucketEntry struct {
	Floor  float64
	Labels []int // arena indices.
}

// levelFor returns a pointer to the bucketEntry with the given floor key in
// levels, inserting one in sorted position if absent.
func levelFor(levels *[]bucketEntry, floor float64) *bucketEntry {
	ls := *levels
	for i := range ls {
		if epsilonEqual(ls[i].Floor, floor) {
			return &ls[i]
		}
		if ls[i].Floor > floor {
			ls = append(ls, bucketEntry{})
			copy(ls[i+1:], ls[i:])
			ls[i] = bucketEntry{Floor: floor}
			*levels = ls
			return &ls[i]
		}
	}
	ls = append(ls, bucketEntry{Floor: floor})
	*levels = ls
	return &ls[len(ls)-1]
}

// alpha is the sort/pruning key for a processed label (spec.md §4.3).
func alpha(l *label.Label, partial bool) float64 {
	if partial {
		return l.MinCost
	}
	return -(l.RW.Right - l.Duration.At(l.RW.Right)) - l.P - l.CutCost
}

// beta is the pruning threshold a dominating label's alpha must not exceed
// (spec.md §4.3).
func beta(l *label.Label, partial bool) float64 {
	if partial {
		return l.Duration.Image().Right - l.P - l.CutCost
	}
	return -(l.RW.Right - l.Duration.At(l.RW.Right)) - l.P - l.CutCost
}
