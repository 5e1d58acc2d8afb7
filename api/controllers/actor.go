package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/pharmaflow/pharmaflow-backend/api/middleware"
	"github.com/pharmaflow/pharmaflow-backend/internal/orders"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
)

// actorFromContext rebuilds the caller identity seeded by the auth and actor
// middleware. Unparseable values come back as zero; the services treat a
// missing binding as a forbidden request.
func actorFromContext(ctx context.Context) orders.Actor {
	actor := orders.Actor{
		Role: enums.UserRole(middleware.RoleFromContext(ctx)),
	}
	if id, err := uuid.Parse(middleware.UserIDFromContext(ctx)); err == nil {
		actor.UserID = id
	}
	actor.PharmacyID = parseOptionalUUID(middleware.PharmacyIDFromContext(ctx))
	actor.DistributorID = parseOptionalUUID(middleware.DistributorIDFromContext(ctx))
	actor.AgentID = parseOptionalUUID(middleware.AgentIDFromContext(ctx))
	return actor
}

func parseOptionalUUID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
