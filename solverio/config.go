package solverio

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/tdbcp/bcp"
	"github.com/katalvlaran/tdbcp/bidirectional"
)

// ExperimentConfig is the tunable-parameter object spec.md §6 names,
// recognized by every layer of the core. Unrecognized keys are ignored by
// go-json's default decoding behavior; missing keys keep
// DefaultExperimentConfig's values, since decoding happens on top of an
// already-defaulted struct.
type ExperimentConfig struct {
	TimeLimitSeconds        float64 `json:"time_limit"`
	CutLimit                int     `json:"cut_limit"`
	NodeLimit               int     `json:"node_limit"`
	Partial                 bool    `json:"partial"`
	LimitedExtension        bool    `json:"limited_extension"`
	LazyExtension           bool    `json:"lazy_extension"`
	UnreachableStrengthened bool    `json:"unreachable_strengthened"`
	SortByCost              bool    `json:"sort_by_cost"`
	Symmetric               bool    `json:"symmetric"`
	IterativeMerge          bool    `json:"iterative_merge"`
	ExactLabeling           bool    `json:"exact_labeling"`
}

// DefaultExperimentConfig returns the teacher-default tunables spec.md §6
// lists for every key.
func DefaultExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		TimeLimitSeconds:        7200,
		CutLimit:                100,
		NodeLimit:               1<<31 - 1,
		Partial:                 true,
		LimitedExtension:        true,
		LazyExtension:           true,
		UnreachableStrengthened: true,
		SortByCost:              true,
		Symmetric:               false,
		IterativeMerge:          true,
		ExactLabeling:           true,
	}
}

// LoadExperimentConfig decodes data on top of DefaultExperimentConfig, so
// any key data omits keeps its default value.
func LoadExperimentConfig(data []byte) (ExperimentConfig, error) {
	cfg := DefaultExperimentConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ExperimentConfig{}, err
	}
	return cfg, nil
}

// ApplyToDriver configures a bidirectional.Driver's tunables from c. Only
// the labeling-level and merge-level keys apply here; cut_limit/node_limit
// belong to the BCP tree (see ApplyToTree).
func (c ExperimentConfig) ApplyToDriver(d *bidirectional.Driver) {
	d.TimeLimit = time.Duration(c.TimeLimitSeconds * float64(time.Second))
	d.Partial = c.Partial
	d.LimitedExtension = c.LimitedExtension
	d.LazyExtension = c.LazyExtension
	d.UnreachableStrengthened = c.UnreachableStrengthened
	d.SortByCost = c.SortByCost
	d.Symmetric = c.Symmetric
	d.ClosingState = !c.IterativeMerge // ClosingState: true = last-arc merge, false = iterative merge.
	d.RelaxElementaryCheck = !c.ExactLabeling
	d.RelaxCostCheck = !c.ExactLabeling
}

// ApplyToTree configures a bcp.Tree's tunables from c.
func (c ExperimentConfig) ApplyToTree(t *bcp.Tree) {
	t.TimeLimit = time.Duration(c.TimeLimitSeconds * float64(time.Second))
	t.CutLimit = c.CutLimit
	t.NodeLimit = c.NodeLimit
}
