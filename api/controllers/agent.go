package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pharmaflow/pharmaflow-backend/api/middleware"
	"github.com/pharmaflow/pharmaflow-backend/api/responses"
	"github.com/pharmaflow/pharmaflow-backend/internal/agents"
	"github.com/pharmaflow/pharmaflow-backend/internal/catalog"
	pkgerrors "github.com/pharmaflow/pharmaflow-backend/pkg/errors"
	"github.com/pharmaflow/pharmaflow-backend/pkg/logger"
)

// AgentSubstitutes lists medicines sharing the salt given in the query.
func AgentSubstitutes(svc *agents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "agents service unavailable"))
			return
		}

		salt := strings.TrimSpace(r.URL.Query().Get("salt"))
		result, err := svc.Substitutes(r.Context(), salt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, medicinesResponse{Medicines: catalog.FromModels(result)})
	}
}

// AgentPerformance returns the assigned-pharmacy activity report.
func AgentPerformance(svc *agents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "agents service unavailable"))
			return
		}

		agentID := uuid.Nil
		if id := parseOptionalUUID(middleware.AgentIDFromContext(r.Context())); id != nil {
			agentID = *id
		}

		report, err := svc.Report(r.Context(), agentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
