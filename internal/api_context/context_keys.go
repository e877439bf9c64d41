package api_context

import (
	"context"
	"slices"
)

type ctxKey string

const (
	IDKey         ctxKey = "id"
	AuthUserIDKey ctxKey = "authUserID"
	AuthRolesKey  ctxKey = "authRoles"
	RequestIDKey  ctxKey = "requestID"
)

// WithRequestID tags ctx with the id correlating log lines of one HTTP request
// or one background task run.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok && id != ""
}

// WithAssetID stores the asset id parsed from the URL.
func WithAssetID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, IDKey, id)
}

func IDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(IDKey).(int64)
	return id, ok
}

// WithAuth stores the authenticated caller and the roles granted by its token.
func WithAuth(ctx context.Context, userID string, roles []string) context.Context {
	ctx = context.WithValue(ctx, AuthUserIDKey, userID)
	return context.WithValue(ctx, AuthRolesKey, roles)
}

func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(string)
	return id, ok && id != ""
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}

// HasRole reports whether the authenticated caller was granted role.
func HasRole(ctx context.Context, role string) bool {
	roles, _ := AuthRolesFromContext(ctx)
	return slices.Contains(roles, role)
}
