package bidirectional

import "github.com/katalvlaran/tdbcp/label"

// Route is a complete negative-reduced-cost path from the origin to the
// destination depot, as returned by Driver.Run (spec.md §5).
type Route struct {
	Path     []int
	Duration float64
}

// solutionPool keeps the best (lowest-duration) route found for each set of
// visited vertices, matching the original's rationale: two merges that visit
// the same vertex set are redundant, so only the cheaper one is worth
// keeping (spec.md §5).
type solutionPool struct {
	n    int
	best map[string]Route
}

func newSolutionPool(n int) *solutionPool {
	return &solutionPool{n: n, best: make(map[string]Route)}
}

func (s *solutionPool) add(path []int, duration float64) {
	key := label.SetFromVertices(s.n, path).Key()
	if cur, ok := s.best[key]; !ok || duration < cur.Duration {
		s.best[key] = Route{Path: append([]int(nil), path...), Duration: duration}
	}
}

func (s *solutionPool) len() int { return len(s.best) }

func (s *solutionPool) routes() []Route {
	out := make([]Route, 0, len(s.best))
	for _, r := range s.best {
		out = append(out, r)
	}
	return out
}
