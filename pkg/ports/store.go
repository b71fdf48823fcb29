package ports

import (
	"context"

	"github.com/aretw0/gantry/pkg/domain"
)

// PlanStore persists solve reports so a replay or audit can retrieve
// them later.
type PlanStore interface {
	// Save persists a report under its ID.
	Save(ctx context.Context, report *domain.Report) error

	// Load retrieves a report by ID. Returns domain.ErrReportNotFound if
	// it does not exist.
	Load(ctx context.Context, id string) (*domain.Report, error)

	// Delete removes a report by ID.
	Delete(ctx context.Context, id string) error
}
