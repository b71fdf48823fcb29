package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/gantry/internal/cli"
)

var solveCmd = &cobra.Command{
	Use:   "solve [scenario]",
	Short: "Solve a scenario and print the plan",
	Long: `Compiles the named builtin scenario (or a YAML scenario file) into a
planning problem, solves it, and prints the resulting plan. With
--visualize the compiled commands are also replayed against the
in-memory simulator.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("scenario")
		if !cmd.Flags().Changed("scenario") && len(args) > 0 {
			name = args[0]
		}
		maxTime, _ := cmd.Flags().GetDuration("max-time")
		strategy, _ := cmd.Flags().GetString("strategy")
		visualize, _ := cmd.Flags().GetBool("visualize")
		jsonMode, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		redisAddr, _ := cmd.Flags().GetString("redis")

		err := cli.RunSolve(cmd.Context(), cli.SolveOptions{
			Scenario:  name,
			MaxTime:   maxTime,
			Strategy:  strategy,
			Visualize: visualize,
			JSON:      jsonMode,
			Verbose:   verbose,
			RedisAddr: redisAddr,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().String("scenario", "cleaning", "Builtin scenario name or YAML file")
	solveCmd.Flags().Duration("max-time", 30*time.Second, "Solver time budget")
	solveCmd.Flags().String("strategy", "", "Search strategy hint for the solver")
	solveCmd.Flags().Bool("visualize", false, "Replay the solved commands in the simulator")
	solveCmd.Flags().Bool("json", false, "Print the report as JSON")
}
