package solverio

import (
	"github.com/katalvlaran/tdbcp/bcp"
	"github.com/katalvlaran/tdbcp/label"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

// NodeLogRecord maps a bcp.Node to a structured log record: one free
// function per entity, the design this package follows instead of a
// Printable/to_json method on each type (spec.md §9).
func NodeLogRecord(n *bcp.Node) map[string]interface{} {
	return map[string]interface{}{
		"index":          n.Index,
		"bound":          n.Bound,
		"forbidden_arcs": len(n.ForbiddenArcs),
		"columns_set":    len(n.Opt),
	}
}

// LabelLogRecord maps a label.Label to a structured log record.
func LabelLogRecord(l label.Label) map[string]interface{} {
	return map[string]interface{}{
		"vertex":   l.V,
		"q":        l.Q,
		"p":        l.P,
		"length":   l.Length,
		"min_cost": l.MinCost,
	}
}

// PricingProblemLogRecord maps a vrpinstance.PricingProblem to a
// structured log record.
func PricingProblemLogRecord(pp vrpinstance.PricingProblem) map[string]interface{} {
	return map[string]interface{}{
		"forbidden_arcs": len(pp.Forbidden),
		"vertex_count":   len(pp.Profit),
		"active_cuts":    len(pp.Cuts),
	}
}
