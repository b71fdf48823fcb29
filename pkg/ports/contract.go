package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gantry/pkg/domain"
)

// RunPlanStoreContract runs a suite of tests to verify that a PlanStore
// implementation adheres to the defined interface contract.
func RunPlanStoreContract(t *testing.T, store PlanStore) {
	ctx := context.Background()
	id := "contract-test-report-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		report := &domain.Report{
			ID:          id,
			Scenario:    "cleaning",
			Solved:      true,
			Plan:        []string{"pick(left, celery, p1, g1, q1, t1)", "clean(celery, sink)"},
			Length:      2,
			Cost:        1,
			Evaluations: 17,
			Elapsed:     42 * time.Millisecond,
		}

		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.Scenario, loaded.Scenario)
		assert.Equal(t, report.Plan, loaded.Plan)
		assert.Equal(t, report.Cost, loaded.Cost)
		assert.Equal(t, report.Elapsed, loaded.Elapsed)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, &domain.Report{ID: id, Scenario: "cleaning"})
		require.NoError(t, err)

		err = store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
	})
}
