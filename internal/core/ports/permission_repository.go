package ports

import (
	"context"

	"github.com/annuaire/directory-system/internal/core/domain"
)

// PermissionRepository defines the persistence interface for the flat
// (owner, grantee) read-permission relation.
type PermissionRepository interface {
	// Grant inserts the (owner, grantee) pair, replacing any existing row
	// for the same pair (set semantics).
	Grant(ctx context.Context, owner, grantee string) error
	// Revoke removes the (owner, grantee) pair. Revoking an absent pair is
	// not an error.
	Revoke(ctx context.Context, owner, grantee string) error
	// Exists reports whether grantee may read owner's directory.
	Exists(ctx context.Context, owner, grantee string) (bool, error)
	// OwnersFor returns the owners whose directories grantee may read.
	OwnersFor(ctx context.Context, grantee string) ([]string, error)
	// GranteesFor returns the accounts allowed to read owner's directory.
	GranteesFor(ctx context.Context, owner string) ([]string, error)
	// RemoveAccount drops every row mentioning name as owner or grantee.
	RemoveAccount(ctx context.Context, name string) error
	// List returns the whole relation.
	List(ctx context.Context) ([]domain.Permission, error)
}
