package logger

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for correlation fields.
type contextKey string

const (
	// CorrelationIDKey is the context key for request correlation IDs.
	CorrelationIDKey contextKey = "correlation_id"

	// UserIDKey is the context key for user identifiers.
	UserIDKey contextKey = "user_id"

	// TenantIDKey is the context key for tenant identifiers.
	TenantIDKey contextKey = "tenant_id"
)

// WithCorrelationID adds a correlation ID to the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// GetCorrelationID retrieves the correlation ID from the context.
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}

// EnsureCorrelationID returns ctx with a correlation ID, generating a new
// UUID when none is present.
func EnsureCorrelationID(ctx context.Context) (context.Context, string) {
	if id := GetCorrelationID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return WithCorrelationID(ctx, id), id
}

// WithUserID adds a user identifier to the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// GetUserID retrieves the user identifier from the context.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// WithTenantID adds a tenant identifier to the context.
func WithTenantID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TenantIDKey, id)
}

// GetTenantID retrieves the tenant identifier from the context.
func GetTenantID(ctx context.Context) string {
	if id, ok := ctx.Value(TenantIDKey).(string); ok {
		return id
	}
	return ""
}

// contextFields extracts the correlation fields present in ctx as log
// fields.
func contextFields(ctx context.Context) F {
	if ctx == nil {
		return nil
	}

	var fields F
	add := func(key, val string) {
		if val == "" {
			return
		}
		if fields == nil {
			fields = make(F, 3)
		}
		fields[key] = val
	}

	add(string(CorrelationIDKey), GetCorrelationID(ctx))
	add(string(UserIDKey), GetUserID(ctx))
	add(string(TenantIDKey), GetTenantID(ctx))
	return fields
}
