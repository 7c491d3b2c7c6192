package auth

import (
	"context"
	"strings"

	"dentalcenter.org/internal/clinic"
)

type ctxKey string

const (
	userIDKey ctxKey = "auth_user_id"
	roleKey   ctxKey = "auth_role"
)

// ContextWithUser stores the acting user's identity and role in the context.
func ContextWithUser(ctx context.Context, userID string, role clinic.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, strings.TrimSpace(userID))
	if role != "" {
		ctx = context.WithValue(ctx, roleKey, role)
	}
	return ctx
}

// UserIDFromContext extracts the acting user id from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// RoleFromContext returns the role stored in context.
func RoleFromContext(ctx context.Context) (clinic.Role, bool) {
	v, ok := ctx.Value(roleKey).(clinic.Role)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// IsAdmin reports whether the context carries the Admin role.
func IsAdmin(ctx context.Context) bool {
	role, ok := RoleFromContext(ctx)
	return ok && role == clinic.RoleAdmin
}
