package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/gantry/pkg/domain"
)

// ReportStore implements ports.PlanStore with an in-process map.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]*domain.Report
}

// NewReportStore creates an empty store.
func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[string]*domain.Report)}
}

// Save stores a copy of the report under its ID.
func (s *ReportStore) Save(_ context.Context, report *domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *report
	clone.Plan = append([]string(nil), report.Plan...)
	s.reports[report.ID] = &clone
	return nil
}

// Load retrieves a report by ID.
func (s *ReportStore) Load(_ context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	clone := *report
	clone.Plan = append([]string(nil), report.Plan...)
	return &clone, nil
}

// Delete removes a report. Deleting an unknown ID is not an error.
func (s *ReportStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reports, id)
	return nil
}

// List returns stored report IDs in sorted order.
func (s *ReportStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.reports))
	for id := range s.reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
