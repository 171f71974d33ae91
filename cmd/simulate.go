package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adas-hsim/adas-hsim/hsim/simulate"
	"github.com/adas-hsim/adas-hsim/hsim/synth"
)

var (
	simulateHorizon float64 // --horizon
	simulateLogs    bool    // --logs: include the per-slice execution log
	simulateJSON    bool    // --json
)

// simulateCmd runs synthesis followed by the discrete-event simulation
// over a model file and reports response times and measured utilization.
var simulateCmd = &cobra.Command{
	Use:   "simulate <model-file>",
	Short: "Synthesize BDR interfaces, then simulate and report response times",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		model, err := loadModel(args[0])
		if err != nil {
			logrus.Fatalf("loading model: %v", err)
		}
		if err := model.Validate(); err != nil {
			logrus.Fatalf("invalid model: %v", err)
		}

		policy := loadRunPolicy()
		if _, err := synth.Synthesize(model, policy.SynthOptions()); err != nil {
			logrus.Fatalf("synthesis failed: %v", err)
		}

		logrus.Infof("simulating horizon=%.1f", simulateHorizon)
		report, err := simulate.Simulate(context.Background(), model, simulateHorizon, simulate.Options{IncludeExecutionLogs: simulateLogs})
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		if report.Truncated {
			logrus.Warn("simulation was truncated before reaching the horizon")
		}

		if simulateJSON {
			printJSON(report)
			return
		}
		printSimulationTable(report)
	},
}

func init() {
	simulateCmd.Flags().Float64Var(&simulateHorizon, "horizon", 1000, "Simulation horizon (time units)")
	simulateCmd.Flags().BoolVar(&simulateLogs, "logs", false, "Include the per-slice execution log in the report")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "Print the result as JSON")
}

func printSimulationTable(r *simulate.Report) {
	fmt.Println("=== Simulation Results ===")
	fmt.Printf("Horizon      : %.1f\n", r.SimulationTime)
	fmt.Printf("Truncated    : %v\n", r.Truncated)
	fmt.Println("-- Task response times --")
	for _, rt := range r.TaskResponseTimes {
		fmt.Printf("  %-16s avg=%8.3f max=%8.3f missed=%d\n", rt.TaskID, rt.Avg, rt.Max, rt.MissedDeadlines)
	}
	fmt.Println("-- Component utilization --")
	for _, cu := range r.ComponentUtilizations {
		fmt.Printf("  %-16s measured=%.4f allocated=%.4f\n", cu.ComponentID, cu.Utilization, cu.AllocatedUtilization)
	}
}
