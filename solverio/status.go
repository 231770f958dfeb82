package solverio

import (
	"github.com/katalvlaran/tdbcp/bcp"
	"github.com/katalvlaran/tdbcp/bidirectional"
	"github.com/katalvlaran/tdbcp/labeling"
)

// BCStatus, BLBStatus, and MLBStatus are the status enumerations spec.md §6
// names, aliased directly onto the already-built per-package status types
// rather than redefined — bcp.Status, bidirectional.Status, and
// labeling.Status already carry the right value sets, String(), and
// MarshalJSON.
type (
	BCStatus  = bcp.Status
	BLBStatus = bidirectional.Status
	MLBStatus = labeling.Status
)
