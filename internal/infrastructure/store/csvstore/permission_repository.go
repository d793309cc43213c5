package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/annuaire/directory-system/internal/core/domain"
)

// PermissionRepository persists the read-permission relation in the
// permissions.csv table, one row per (Proprietaire, Utilisateur_Autorise)
// pair.
type PermissionRepository struct {
	store *Store
}

func (r *PermissionRepository) Grant(ctx context.Context, owner, grantee string) error {
	r.store.permissionsMu.Lock()
	defer r.store.permissionsMu.Unlock()

	perms, err := r.readAll()
	if err != nil {
		return err
	}
	remaining := withoutPair(perms, owner, grantee)
	remaining = append(remaining, domain.Permission{Owner: owner, Grantee: grantee})
	return r.writeAll(remaining)
}

func (r *PermissionRepository) Revoke(ctx context.Context, owner, grantee string) error {
	r.store.permissionsMu.Lock()
	defer r.store.permissionsMu.Unlock()

	perms, err := r.readAll()
	if err != nil {
		return err
	}
	return r.writeAll(withoutPair(perms, owner, grantee))
}

func (r *PermissionRepository) Exists(ctx context.Context, owner, grantee string) (bool, error) {
	r.store.permissionsMu.Lock()
	defer r.store.permissionsMu.Unlock()

	perms, err := r.readAll()
	if err != nil {
		return false, err
	}
	for _, p := range perms {
		if p.Owner == owner && p.Grantee == grantee {
			return true, nil
		}
	}
	return false, nil
}

func (r *PermissionRepository) OwnersFor(ctx context.Context, grantee string) ([]string, error) {
	r.store.permissionsMu.Lock()
	defer r.store.permissionsMu.Unlock()

	perms, err := r.readAll()
	if err != nil {
		return nil, err
	}
	owners := make([]string, 0)
	for _, p := range perms {
		if p.Grantee == grantee {
			owners = append(owners, p.Owner)
		}
	}
	return owners, nil
}

func (r *PermissionRepository) GranteesFor(ctx context.Context, owner string) ([]string, error) {
	r.store.permissionsMu.Lock()
	defer r.store.permissionsMu.Unlock()

	perms, err := r.readAll()
	if err != nil {
		return nil, err
	}
	grantees := make([]string, 0)
	for _, p := range perms {
		if p.Owner == owner {
			grantees = append(grantees, p.Grantee)
		}
	}
	return grantees, nil
}

func (r *PermissionRepository) RemoveAccount(ctx context.Context, name string) error {
	r.store.permissionsMu.Lock()
	defer r.store.permissionsMu.Unlock()

	perms, err := r.readAll()
	if err != nil {
		return err
	}
	remaining := perms[:0]
	for _, p := range perms {
		if p.Owner == name || p.Grantee == name {
			continue
		}
		remaining = append(remaining, p)
	}
	return r.writeAll(remaining)
}

func (r *PermissionRepository) List(ctx context.Context) ([]domain.Permission, error) {
	r.store.permissionsMu.Lock()
	defer r.store.permissionsMu.Unlock()

	return r.readAll()
}

func withoutPair(perms []domain.Permission, owner, grantee string) []domain.Permission {
	remaining := make([]domain.Permission, 0, len(perms))
	for _, p := range perms {
		if p.Owner == owner && p.Grantee == grantee {
			continue
		}
		remaining = append(remaining, p)
	}
	return remaining
}

func (r *PermissionRepository) readAll() ([]domain.Permission, error) {
	rows, err := readTable(r.store.permissionsPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read permissions table: %w", err)
	}
	perms := make([]domain.Permission, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		perms = append(perms, domain.Permission{Owner: row[0], Grantee: row[1]})
	}
	return perms, nil
}

func (r *PermissionRepository) writeAll(perms []domain.Permission) error {
	rows := make([][]string, 0, len(perms))
	for _, p := range perms {
		rows = append(rows, []string{p.Owner, p.Grantee})
	}
	return writeTable(r.store.permissionsPath(), permissionsHeader, rows)
}
