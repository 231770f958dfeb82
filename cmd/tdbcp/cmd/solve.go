package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tdbcp/bcp"
	"github.com/katalvlaran/tdbcp/solverio"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

// exitOutOfMemory is spec.md §6's reserved exit code for a run that ended
// with MemoryLimitReached.
const exitOutOfMemory = 3

var (
	configPath   string
	instancePath string
	outPath      string
)

// solveCmd represents the solve command.
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a TDVRPTW instance",
	Long: `solve reads an experiment configuration and a VRP instance, both JSON,
runs branch-cut-and-price, and writes one JSON object with fields "Exact"
(the execution log) and "Best solution" (the incumbent routes and value).

When --config or --instance is a combined file holding both top-level keys
"config" and "instance", that single file may be passed to --instance and
--config omitted.`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&configPath, "config", "", "experiment config JSON file (defaults applied for omitted keys)")
	solveCmd.Flags().StringVarP(&instancePath, "instance", "i", "", "VRP instance JSON file (required)")
	solveCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result to this file instead of stdout")
	solveCmd.MarkFlagRequired("instance")
}

type combinedInput struct {
	Config   json.RawMessage `json:"config"`
	Instance json.RawMessage `json:"instance"`
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	instanceData, err := os.ReadFile(instancePath)
	if err != nil {
		return fmt.Errorf("reading instance file: %w", err)
	}

	var configData []byte
	if configPath != "" {
		configData, err = os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	} else {
		var combined combinedInput
		if err := json.Unmarshal(instanceData, &combined); err == nil && len(combined.Instance) > 0 {
			configData = combined.Config
			instanceData = combined.Instance
		}
	}

	var vrp vrpinstance.Instance
	if err := json.Unmarshal(instanceData, &vrp); err != nil {
		return fmt.Errorf("parsing instance JSON: %w", err)
	}

	cfg, err := solverio.LoadExperimentConfig(configData)
	if err != nil {
		return fmt.Errorf("parsing config JSON: %w", err)
	}

	log.Info("starting solve", "vertex_count", vrp.N(), "time_limit_s", cfg.TimeLimitSeconds)

	result := solverio.Solve(cfg, &vrp)

	log.Info("solve finished",
		"status", result.Exact.BranchCutAndPrice.Status,
		"best_value", result.BestSolution.Value,
		"route_count", len(result.BestSolution.Routes))

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
	} else {
		fmt.Println(string(data))
	}

	if result.Exact.BranchCutAndPrice.Status == bcp.StatusMemoryLimitReached {
		os.Exit(exitOutOfMemory)
	}

	return nil
}
