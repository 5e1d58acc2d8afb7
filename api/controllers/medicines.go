package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharmaflow-backend/api/middleware"
	"github.com/pharmaflow/pharmaflow-backend/api/responses"
	"github.com/pharmaflow/pharmaflow-backend/api/validators"
	"github.com/pharmaflow/pharmaflow-backend/internal/catalog"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
	pkgerrors "github.com/pharmaflow/pharmaflow-backend/pkg/errors"
	"github.com/pharmaflow/pharmaflow-backend/pkg/logger"
	"github.com/pharmaflow/pharmaflow-backend/pkg/pagination"
)

type addMedicineBody struct {
	Name        string          `json:"name" validate:"required,max=256"`
	SaltName    string          `json:"saltName" validate:"omitempty,max=256"`
	Brand       string          `json:"brand" validate:"omitempty,max=256"`
	MRP         decimal.Decimal `json:"mrp"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Category    string          `json:"category" validate:"omitempty,max=256"`
	Description *string         `json:"description" validate:"omitempty,max=2048"`
}

type updateMedicineBody struct {
	Name        *string          `json:"name" validate:"omitempty,max=256"`
	SaltName    *string          `json:"saltName" validate:"omitempty,max=256"`
	Brand       *string          `json:"brand" validate:"omitempty,max=256"`
	MRP         *decimal.Decimal `json:"mrp"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Category    *string          `json:"category" validate:"omitempty,max=256"`
	Description *string          `json:"description" validate:"omitempty,max=2048"`
}

type medicinesResponse struct {
	Medicines []catalog.MedicineView `json:"medicines"`
}

type medicinesPageResponse struct {
	Medicines  []catalog.MedicineView `json:"medicines"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

type medicineResponse struct {
	Medicine *catalog.MedicineView `json:"medicine"`
}

// requireDistributor resolves the caller's distributor binding or fails.
func requireDistributor(r *http.Request) (uuid.UUID, error) {
	id := parseOptionalUUID(middleware.DistributorIDFromContext(r.Context()))
	if id == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "distributor account required")
	}
	return *id, nil
}

// MedicinesSearch lists catalog entries matching the q parameter. Without a
// query, distributors see their own catalog and everyone else the full set.
func MedicinesSearch(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		scope := catalog.SearchScope{
			Role:          enums.UserRole(middleware.RoleFromContext(r.Context())),
			DistributorID: parseOptionalUUID(middleware.DistributorIDFromContext(r.Context())),
		}
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.Search(r.Context(), scope, query, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, medicinesPageResponse{
			Medicines:  catalog.FromModels(page.Medicines),
			NextCursor: page.NextCursor,
		})
	}
}

// MedicinesAdd creates a catalog listing owned by the calling distributor.
func MedicinesAdd(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		distributorID, err := requireDistributor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addMedicineBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		medicine, err := svc.Add(r.Context(), catalog.AddMedicineInput{
			DistributorID: distributorID,
			Name:          body.Name,
			SaltName:      body.SaltName,
			Brand:         body.Brand,
			MRP:           body.MRP,
			Stock:         body.Stock,
			Category:      body.Category,
			Description:   body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, medicineResponse{Medicine: catalog.FromModel(medicine)})
	}
}

// MedicinesUpdate applies a partial patch to an owned listing.
func MedicinesUpdate(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		distributorID, err := requireDistributor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		medicineID, err := validators.ParsePathUUID(chi.URLParam(r, "medicineID"), "medicineID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMedicineBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		medicine, err := svc.Update(r.Context(), catalog.UpdateMedicineInput{
			DistributorID: distributorID,
			MedicineID:    medicineID,
			Name:          body.Name,
			SaltName:      body.SaltName,
			Brand:         body.Brand,
			MRP:           body.MRP,
			Stock:         body.Stock,
			Category:      body.Category,
			Description:   body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, medicineResponse{Medicine: catalog.FromModel(medicine)})
	}
}
