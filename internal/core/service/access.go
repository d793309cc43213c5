package service

import (
	"context"

	"github.com/annuaire/directory-system/internal/core/ports"
)

// Access implements the read-access decision: an owner can always read their
// own directory, anyone else needs an explicit permission row. Writes never
// consult this check because they are always self-scoped.
type Access struct {
	permissions ports.PermissionRepository
}

func NewAccess(permissions ports.PermissionRepository) *Access {
	return &Access{permissions: permissions}
}

func (a *Access) CanRead(ctx context.Context, requester, owner string) (bool, error) {
	if requester == owner {
		return true, nil
	}
	return a.permissions.Exists(ctx, owner, requester)
}
