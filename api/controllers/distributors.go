package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pharmaflow/pharmaflow-backend/api/responses"
	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	pkgerrors "github.com/pharmaflow/pharmaflow-backend/pkg/errors"
	"github.com/pharmaflow/pharmaflow-backend/pkg/logger"
)

// DistributorLister is the read surface behind the distributor picker.
type DistributorLister interface {
	List(ctx context.Context) ([]models.Distributor, error)
}

type distributorView struct {
	ID         uuid.UUID `json:"id"`
	AgencyName string    `json:"agencyName"`
	City       string    `json:"city"`
	State      string    `json:"state"`
}

type distributorsResponse struct {
	Distributors []distributorView `json:"distributors"`
}

// DistributorsList returns all distributors, ordered by agency name.
func DistributorsList(repo DistributorLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "distributors repository unavailable"))
			return
		}

		result, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list distributors"))
			return
		}

		views := make([]distributorView, 0, len(result))
		for _, d := range result {
			views = append(views, distributorView{
				ID:         d.ID,
				AgencyName: d.AgencyName,
				City:       d.City,
				State:      d.State,
			})
		}
		responses.WriteSuccess(w, distributorsResponse{Distributors: views})
	}
}
