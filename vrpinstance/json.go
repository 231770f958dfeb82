package vrpinstance

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/katalvlaran/tdbcp/pwl"
)

// wireDigraph mirrors the corpus's {"vertex_count", "arcs"} digraph schema.
type wireDigraph struct {
	VertexCount int     `json:"vertex_count"`
	Arcs        [][]int `json:"arcs"`
}

type wireInterval struct {
	Left, Right float64
}

func (iv wireInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{iv.Left, iv.Right})
}

func (iv *wireInterval) UnmarshalJSON(b []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	iv.Left, iv.Right = pair[0], pair[1]
	return nil
}

type wireInstance struct {
	Digraph     wireDigraph       `json:"digraph"`
	StartDepot  int               `json:"start_depot"`
	EndDepot    int               `json:"end_depot"`
	Horizon     [2]float64        `json:"horizon"`
	TimeWindows []wireInterval    `json:"time_windows"`
	Capacity    float64           `json:"capacity"`
	Demands     []float64         `json:"demands"`
	Profits     []float64         `json:"profits,omitempty"`
	TravelTimes [][]*wirePWL      `json:"travel_times"`
}

type wirePiece struct {
	Domain wireInterval `json:"domain"`
	Image  wireInterval `json:"image"`
}

type wirePWL struct {
	Pieces []wirePiece `json:"pieces"`
}

func funcToWire(f pwl.Function) *wirePWL {
	if f.Empty() {
		return nil
	}
	w := &wirePWL{Pieces: make([]wirePiece, 0, len(f.Pieces))}
	for _, p := range f.Pieces {
		w.Pieces = append(w.Pieces, wirePiece{
			Domain: wireInterval{Left: p.Domain.Left, Right: p.Domain.Right},
			Image:  wireInterval{Left: p.Image.Left, Right: p.Image.Right},
		})
	}
	return w
}

func wireToFunc(w *wirePWL) pwl.Function {
	if w == nil {
		return pwl.Function{}
	}
	f := pwl.Function{Pieces: make([]pwl.Piece, 0, len(w.Pieces))}
	for _, p := range w.Pieces {
		f.Pieces = append(f.Pieces, pwl.Piece{
			Domain: pwl.Interval{Left: p.Domain.Left, Right: p.Domain.Right},
			Image:  pwl.Interval{Left: p.Image.Left, Right: p.Image.Right},
		})
	}
	return f
}

// MarshalJSON serializes in per the wire schema spec.md §6 defines:
// digraph, start_depot, end_depot, horizon, time_windows, capacity, demands,
// travel_times, and an optional profits array.
func (in *Instance) MarshalJSON() ([]byte, error) {
	n := in.N()
	w := wireInstance{
		Digraph:     wireDigraph{VertexCount: n},
		StartDepot:  in.O,
		EndDepot:    in.Dest,
		Horizon:     [2]float64{in.Horizon.Left, in.Horizon.Right},
		Capacity:    in.Capacity,
		Demands:     in.Demand,
		Profits:     in.Profit,
		TimeWindows: make([]wireInterval, n),
		TravelTimes: make([][]*wirePWL, n),
	}
	for v := 0; v < n; v++ {
		w.TimeWindows[v] = wireInterval{Left: in.TW[v].Left, Right: in.TW[v].Right}
	}
	for _, u := range in.D.Vertices() {
		w.TravelTimes[u] = make([]*wirePWL, n)
		for _, v := range in.D.Successors(u) {
			w.Digraph.Arcs = append(w.Digraph.Arcs, []int{u, v})
			w.TravelTimes[u][v] = funcToWire(in.Tau[u][v])
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses an Instance per the wire schema, then derives Arr,
// Dep, PreTau from the parsed Tau matrix and self-loop boundary functions,
// and finally computes LDT — matching from_json in the original
// implementation line for line.
func (in *Instance) UnmarshalJSON(b []byte) error {
	var w wireInstance
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("vrpinstance: decode: %w", err)
	}
	n := w.Digraph.VertexCount
	if len(w.TimeWindows) != n || len(w.Demands) != n {
		return fmt.Errorf("%w: time_windows/demands length mismatch", ErrMalformedInstance)
	}

	in.D = NewDigraph(n)
	for _, arc := range w.Digraph.Arcs {
		if len(arc) != 2 {
			return fmt.Errorf("%w: malformed arc entry", ErrMalformedInstance)
		}
		in.D.AddArc(arc[0], arc[1])
	}
	in.O = w.StartDepot
	in.Dest = w.EndDepot
	in.Horizon = pwl.Interval{Left: w.Horizon[0], Right: w.Horizon[1]}
	in.Capacity = w.Capacity
	in.Demand = w.Demands
	in.Profit = w.Profits

	in.TW = make([]pwl.Interval, n)
	for v := 0; v < n; v++ {
		in.TW[v] = pwl.Interval{Left: w.TimeWindows[v].Left, Right: w.TimeWindows[v].Right}
	}

	in.Tau = newFuncMatrix(n)
	in.Arr = newFuncMatrix(n)
	in.Dep = newFuncMatrix(n)
	in.PreTau = newFuncMatrix(n)

	for _, u := range in.D.Vertices() {
		for _, v := range in.D.Successors(u) {
			var tau pwl.Function
			if u < len(w.TravelTimes) && v < len(w.TravelTimes[u]) {
				tau = wireToFunc(w.TravelTimes[u][v])
			}
			in.Tau[u][v] = tau
			in.Arr[u][v] = tau.Add(pwl.Identity(tau.Domain()))
			dep, err := in.Arr[u][v].Inverse()
			if err != nil {
				return fmt.Errorf("%w: arc (%d,%d) arrival function is not invertible: %v", ErrMalformedInstance, u, v, err)
			}
			in.Dep[u][v] = dep
			in.PreTau[u][v] = pwl.Identity(dep.Domain()).Sub(dep)
		}
	}
	for u := 0; u < n; u++ {
		in.Tau[u][u] = pwl.Constant(0, in.TW[u])
		in.PreTau[u][u] = pwl.Constant(0, in.TW[u])
		in.Dep[u][u] = pwl.Identity(in.TW[u])
		in.Arr[u][u] = pwl.Identity(in.TW[u])
	}

	in.ComputeLDT()
	return nil
}
