package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/gantry/pkg/command"
)

// commandType maps a command to a low-cardinality metric label.
func commandType(cmd command.Command) string {
	switch cmd.(type) {
	case *command.Trajectory:
		return "trajectory"
	case *command.Attach:
		return "attach"
	case *command.Detach:
		return "detach"
	case *command.Clean:
		return "clean"
	case *command.Cook:
		return "cook"
	default:
		return "unknown"
	}
}

// Metrics holds the Prometheus collectors for solver runs and replay.
type Metrics struct {
	solves        *prometheus.CounterVec
	solveDuration prometheus.Histogram
	planCost      prometheus.Histogram
	commands      *prometheus.CounterVec
	steps         prometheus.Counter
}

// NewMetrics builds the collector set and registers it with reg.
// Pass prometheus.DefaultRegisterer to use the process-global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gantry_solves_total",
				Help: "Solver runs by outcome.",
			},
			[]string{"solved"},
		),
		solveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gantry_solve_duration_seconds",
				Help:    "Wall-clock time spent in the solver.",
				Buckets: prometheus.DefBuckets,
			},
		),
		planCost: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gantry_plan_cost",
				Help:    "Total action cost of solved plans.",
				Buckets: prometheus.LinearBuckets(0, 2, 10),
			},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gantry_commands_total",
				Help: "Commands replayed by type.",
			},
			[]string{"type"},
		),
		steps: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gantry_simulation_steps_total",
				Help: "Simulator steps taken during replay.",
			},
		),
	}
	reg.MustRegister(m.solves, m.solveDuration, m.planCost, m.commands, m.steps)
	return m
}

// Hooks returns a Hooks value that feeds the collectors.
func (m *Metrics) Hooks() *Hooks {
	return &Hooks{
		OnSolveEnd: func(ev SolveEvent) {
			m.solves.WithLabelValues(strconv.FormatBool(ev.Solved)).Inc()
			m.solveDuration.Observe(ev.Elapsed.Seconds())
			if ev.Solved {
				m.planCost.Observe(ev.Cost)
			}
		},
		OnCommand: func(ev CommandEvent) {
			m.commands.WithLabelValues(commandType(ev.Command)).Inc()
		},
		OnStep: func() {
			m.steps.Inc()
		},
	}
}
