package solverio

import (
	"time"

	"github.com/katalvlaran/tdbcp/bcp"
	"github.com/katalvlaran/tdbcp/bidirectional"
	"github.com/katalvlaran/tdbcp/labeling"
)

// BCPExecutionLog, BLBExecutionLog, and MLBExecutionLog are spec.md §6's
// nested execution-log types, aliased onto the logs each layer already
// produces rather than redefined.
type (
	BCPExecutionLog = bcp.RunLog
	BLBExecutionLog = bidirectional.RunLog
	MLBExecutionLog = labeling.RunLog
)

// CGExecutionLog is the column-generation slice of a BCP run: the timings
// and formulation sizes bcp.RunLog tracks per round, broken out into their
// own named type since spec.md §6 lists CGExecutionLog as a distinct
// nested log alongside BLBExecutionLog/BCPExecutionLog even though this
// port folds the underlying counters into bcp.RunLog itself (no separate
// CG-solver object exists here — see DESIGN.md).
type CGExecutionLog struct {
	LPTime          time.Duration `json:"lp_time"`
	PricingTime     time.Duration `json:"pricing_time"`
	CutTime         time.Duration `json:"cut_time"`
	VariableCount   int           `json:"variable_count"`
	ConstraintCount int           `json:"constraint_count"`
}

func newCGExecutionLog(log bcp.RunLog) CGExecutionLog {
	return CGExecutionLog{
		LPTime:          log.LPTime,
		PricingTime:     log.PricingTime,
		CutTime:         log.CutTime,
		VariableCount:   log.VariableCount,
		ConstraintCount: log.ConstraintCount,
	}
}

// ExecutionLog is the full nested execution report spec.md §6 describes:
// column-generation, bidirectional-labeling, and branch-cut-and-price
// statistics from one solve.
type ExecutionLog struct {
	ColumnGeneration      CGExecutionLog  `json:"column_generation"`
	BidirectionalLabeling BLBExecutionLog `json:"bidirectional_labeling"`
	BranchCutAndPrice     BCPExecutionLog `json:"branch_cut_and_price"`
}

// NewExecutionLog assembles the nested report from a completed BCP run and
// the bidirectional-labeling run last observed at the root (the pricing
// call whose log is most representative of the labeling engine's behavior
// across the whole search, per spec.md §7's "partial results returned
// intact on expiry" contract).
func NewExecutionLog(bcpLog bcp.RunLog, rootBLBLog bidirectional.RunLog) ExecutionLog {
	return ExecutionLog{
		ColumnGeneration:      newCGExecutionLog(bcpLog),
		BidirectionalLabeling: rootBLBLog,
		BranchCutAndPrice:     bcpLog,
	}
}
