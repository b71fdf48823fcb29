// Package testutils holds shared fixtures for engine and adapter tests.
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/gantry/pkg/adapters/memory"
	"github.com/aretw0/gantry/pkg/scenario"
)

// World builds a builtin scenario with a fresh in-memory simulator and
// its samplers wired in. It fails the test immediately on error.
func World(t *testing.T, name string) (*scenario.Scenario, *memory.Simulator) {
	t.Helper()

	sc, err := scenario.Builtin(name)
	require.NoError(t, err, "Failed to load builtin scenario")

	sim, err := memory.FromScenario(sc)
	require.NoError(t, err, "Failed to build simulator from scenario")

	sc.Samplers = memory.Samplers(sim, sc)
	return sc, sim
}
