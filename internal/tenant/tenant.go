package tenant

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
)

// Role is the actor's role within its institution.
type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleEditor     Role = "editor"
	RoleViewer     Role = "viewer"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	case RoleEditor:
		return RoleEditor, true
	case RoleViewer:
		return RoleViewer, true
	}
	return "", false
}

// Context carries the authenticated actor through every core call. All
// tenant-scoped reads and writes take their institution id from here, never
// from client-supplied input.
type Context struct {
	InstitutionID uuid.UUID
	UserID        uuid.UUID
	Role          Role
}

// CanEdit reports whether the actor may mutate pages.
func (c Context) CanEdit() bool {
	return c.Role == RoleSuperAdmin || c.Role == RoleEditor
}

// IsSuperAdmin reports whether the actor holds the super-admin role.
func (c Context) IsSuperAdmin() bool {
	return c.Role == RoleSuperAdmin
}

type tenantContextKey struct{}

func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tc)
}

// FromContext extracts the verified actor. It fails when no authenticated
// actor is attached; callers must not fall back to client-provided ids.
func FromContext(ctx context.Context) (Context, error) {
	val := ctx.Value(tenantContextKey{})
	tc, ok := val.(Context)
	if !ok || tc.InstitutionID == uuid.Nil || tc.UserID == uuid.Nil {
		return Context{}, domainagg.NewError(domainagg.CodeUnauthenticated, "tenant.FromContext", "no authenticated actor in context", nil)
	}
	if _, valid := ParseRole(string(tc.Role)); !valid {
		return Context{}, domainagg.NewError(domainagg.CodeUnauthenticated, "tenant.FromContext", "actor role is not recognized", nil)
	}
	return tc, nil
}
