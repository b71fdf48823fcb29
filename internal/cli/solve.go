package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/gantry"
	"github.com/aretw0/gantry/internal/logging"
	"github.com/aretw0/gantry/pkg/adapters/memory"
	"github.com/aretw0/gantry/pkg/adapters/redis"
	"github.com/aretw0/gantry/pkg/ports"
)

// SolveOptions configure one command-line solve.
type SolveOptions struct {
	Scenario  string
	MaxTime   time.Duration
	Strategy  string
	Visualize bool
	JSON      bool
	Verbose   bool
	RedisAddr string
}

// NewLogger builds the process logger at the requested verbosity.
func NewLogger(verbose bool) *slog.Logger {
	return logging.New(verbose)
}

// NewStore selects the report store: Redis when an address is set,
// otherwise an in-process map.
func NewStore(redisAddr string) ports.PlanStore {
	if redisAddr != "" {
		return redis.New(redisAddr, "", 0)
	}
	return memory.NewReportStore()
}

// RunSolve solves one scenario and prints the outcome to stdout.
func RunSolve(ctx context.Context, opts SolveOptions) error {
	logger := NewLogger(opts.Verbose)
	runner := NewRunner(logger, NewStore(opts.RedisAddr), nil)

	res, err := runner.Solve(ctx, opts.Scenario, gantry.RunOptions{
		MaxTime:   opts.MaxTime,
		Strategy:  opts.Strategy,
		Visualize: opts.Visualize,
	})
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Report)
	}

	if !res.Report.Solved {
		fmt.Printf("No plan found for %s (%d evaluations, %s)\n",
			res.Report.Scenario, res.Report.Evaluations, res.Report.Elapsed)
		return nil
	}

	fmt.Printf("Solved %s: %d steps, cost %.0f, %d evaluations, %s\n",
		res.Report.Scenario, res.Report.Length, res.Report.Cost,
		res.Report.Evaluations, res.Report.Elapsed)
	for i, step := range res.Plan {
		fmt.Printf("%3d. %s\n", i+1, step)
	}
	if opts.Visualize {
		fmt.Printf("Replayed %d commands\n", len(res.Commands))
	}
	fmt.Printf("Report: %s\n", res.Report.ID)
	return nil
}
