package middleware

import "context"

type contextKey string

const (
	ctxUserID        contextKey = "user_id"
	ctxRole          contextKey = "actor_role"
	ctxPharmacyID    contextKey = "pharmacy_id"
	ctxDistributorID contextKey = "distributor_id"
	ctxAgentID       contextKey = "agent_id"
	ctxTokenID       contextKey = "token_id"
)

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func UserIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxUserID)
}

func RoleFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxRole)
}

func PharmacyIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxPharmacyID)
}

func DistributorIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxDistributorID)
}

func AgentIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxAgentID)
}

// TokenIDFromContext returns the jti of the presented token, used on logout
// to revoke the matching session.
func TokenIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxTokenID)
}

// WithTokenID injects the token identifier into the context.
func WithTokenID(ctx context.Context, tokenID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTokenID, tokenID)
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// WithPharmacyID injects the pharmacy identifier into the context for downstream handlers.
func WithPharmacyID(ctx context.Context, pharmacyID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPharmacyID, pharmacyID)
}

// WithDistributorID injects the distributor identifier into the context.
func WithDistributorID(ctx context.Context, distributorID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxDistributorID, distributorID)
}

// WithAgentID injects the agent identifier into the context.
func WithAgentID(ctx context.Context, agentID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAgentID, agentID)
}
