package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	pkgerrors "github.com/pharmaflow/pharmaflow-backend/pkg/errors"
)

// activityWindow is how recently a pharmacy must have ordered to count as
// active on the agent dashboard.
const activityWindow = 7 * 24 * time.Hour

type saltSearcher interface {
	SearchBySalt(ctx context.Context, salt string) ([]models.Medicine, error)
}

// PharmacySummary is the slice of pharmacy fields surfaced in the report.
type PharmacySummary struct {
	ID        uuid.UUID `json:"id"`
	StoreName string    `json:"storeName"`
	City      string    `json:"city"`
	State     string    `json:"state"`
}

// PharmacyActivity is one monitored pharmacy with its ordering stats.
type PharmacyActivity struct {
	Pharmacy    PharmacySummary `json:"pharmacy"`
	TotalOrders int64           `json:"totalOrders"`
	LastOrderAt *time.Time      `json:"lastOrderAt,omitempty"`
	IsActive    bool            `json:"isActive"`
}

// Performance summarizes an agent's assigned pharmacies.
type Performance struct {
	Pharmacies []PharmacyActivity `json:"pharmacies"`
	Assigned   int                `json:"assigned"`
	Active     int                `json:"active"`
	Inactive   int                `json:"inactive"`
}

// Service answers agent-facing queries: substitute discovery and the
// assigned-pharmacy activity report.
type Service struct {
	repo    *Repository
	catalog saltSearcher
	now     func() time.Time
}

func NewService(repo *Repository, catalog saltSearcher) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("agents repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog searcher required")
	}
	return &Service{repo: repo, catalog: catalog, now: time.Now}, nil
}

// Substitutes lists medicines sharing the given active ingredient.
func (s *Service) Substitutes(ctx context.Context, salt string) ([]models.Medicine, error) {
	return s.catalog.SearchBySalt(ctx, salt)
}

// Report builds the activity summary for the agent's assigned pharmacies.
func (s *Service) Report(ctx context.Context, agentID uuid.UUID) (*Performance, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no agent assigned")
	}

	pharmacies, err := s.repo.ListAssignedPharmacies(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned pharmacies")
	}

	ids := make([]uuid.UUID, 0, len(pharmacies))
	for _, p := range pharmacies {
		ids = append(ids, p.ID)
	}
	stats, err := s.repo.OrderStatsByPharmacy(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate order stats")
	}

	cutoff := s.now().Add(-activityWindow)
	report := &Performance{
		Pharmacies: make([]PharmacyActivity, 0, len(pharmacies)),
		Assigned:   len(pharmacies),
	}
	for _, pharmacy := range pharmacies {
		entry := PharmacyActivity{Pharmacy: PharmacySummary{
			ID:        pharmacy.ID,
			StoreName: pharmacy.StoreName,
			City:      pharmacy.City,
			State:     pharmacy.State,
		}}
		if stat, ok := stats[pharmacy.ID]; ok {
			entry.TotalOrders = stat.TotalOrders
			entry.LastOrderAt = stat.LastOrderAt
			entry.IsActive = stat.LastOrderAt != nil && stat.LastOrderAt.After(cutoff)
		}
		if entry.IsActive {
			report.Active++
		} else {
			report.Inactive++
		}
		report.Pharmacies = append(report.Pharmacies, entry)
	}
	return report, nil
}
