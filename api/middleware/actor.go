package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pharmaflow/pharmaflow-backend/api/responses"
	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	pkgerrors "github.com/pharmaflow/pharmaflow-backend/pkg/errors"
	"github.com/pharmaflow/pharmaflow-backend/pkg/logger"
)

type ActorLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Actor resolves the authenticated user's org bindings (pharmacy, distributor,
// agent) from the users table and seeds them into the request context. Claims
// carry only identity; the bindings are re-read per request so a reassignment
// takes effect immediately.
func Actor(loader ActorLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if loader == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "actor loader unavailable"))
				return
			}

			userID := UserIDFromContext(ctx)
			if userID == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
				return
			}

			uid, err := uuid.Parse(userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
				return
			}

			user, err := loader.GetByID(ctx, uid)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			fields := map[string]any{}
			if user.PharmacyID != nil {
				ctx = WithPharmacyID(ctx, user.PharmacyID.String())
				fields["pharmacy_id"] = user.PharmacyID.String()
			}
			if user.DistributorID != nil {
				ctx = WithDistributorID(ctx, user.DistributorID.String())
				fields["distributor_id"] = user.DistributorID.String()
			}
			if user.AgentID != nil {
				ctx = WithAgentID(ctx, user.AgentID.String())
				fields["agent_id"] = user.AgentID.String()
			}

			if logg != nil && len(fields) > 0 {
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
