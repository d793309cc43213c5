package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/annuaire/directory-system/internal/core/domain"
)

// In-memory repositories shared by the service tests.

type stubAccountRepo struct {
	accounts []domain.Account
}

func (r *stubAccountRepo) Insert(_ context.Context, account *domain.Account) error {
	for _, a := range r.accounts {
		if a.Name == account.Name {
			return domain.ErrAccountExists
		}
	}
	r.accounts = append(r.accounts, *account)
	return nil
}

func (r *stubAccountRepo) FindByName(_ context.Context, name string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Name == name {
			account := a
			return &account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Update(_ context.Context, account *domain.Account) error {
	for i := range r.accounts {
		if r.accounts[i].Name == account.Name {
			r.accounts[i] = *account
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Delete(_ context.Context, name string) error {
	for i, a := range r.accounts {
		if a.Name == name {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *stubAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	return append([]domain.Account(nil), r.accounts...), nil
}

type stubDirectoryRepo struct {
	directories map[string][]domain.Contact
}

func newStubDirectoryRepo() *stubDirectoryRepo {
	return &stubDirectoryRepo{directories: make(map[string][]domain.Contact)}
}

func (r *stubDirectoryRepo) Create(_ context.Context, owner string) error {
	r.directories[owner] = []domain.Contact{}
	return nil
}

func (r *stubDirectoryRepo) Delete(_ context.Context, owner string) error {
	delete(r.directories, owner)
	return nil
}

func (r *stubDirectoryRepo) List(_ context.Context, owner string) ([]domain.Contact, error) {
	contacts, ok := r.directories[owner]
	if !ok {
		return nil, domain.ErrDirectoryNotFound
	}
	return append([]domain.Contact(nil), contacts...), nil
}

func (r *stubDirectoryRepo) Add(_ context.Context, owner string, contact domain.Contact) error {
	contacts, ok := r.directories[owner]
	if !ok {
		return domain.ErrDirectoryNotFound
	}
	for _, c := range contacts {
		if c.Key() == contact.Key() {
			return domain.ErrContactExists
		}
	}
	r.directories[owner] = append(contacts, contact)
	return nil
}

func (r *stubDirectoryRepo) Update(_ context.Context, owner string, contact domain.Contact) error {
	contacts, ok := r.directories[owner]
	if !ok {
		return domain.ErrDirectoryNotFound
	}
	for i := range contacts {
		if contacts[i].Key() == contact.Key() {
			contacts[i] = contact
			return nil
		}
	}
	return domain.ErrContactNotFound
}

func (r *stubDirectoryRepo) Remove(_ context.Context, owner string, key domain.ContactKey) error {
	contacts, ok := r.directories[owner]
	if !ok {
		return domain.ErrDirectoryNotFound
	}
	for i := range contacts {
		if contacts[i].Key() == key {
			r.directories[owner] = append(contacts[:i], contacts[i+1:]...)
			return nil
		}
	}
	return domain.ErrContactNotFound
}

func (r *stubDirectoryRepo) Count(_ context.Context, owner string) (int, error) {
	return len(r.directories[owner]), nil
}

type stubPermissionRepo struct {
	perms []domain.Permission
}

func (r *stubPermissionRepo) Grant(_ context.Context, owner, grantee string) error {
	r.remove(owner, grantee)
	r.perms = append(r.perms, domain.Permission{Owner: owner, Grantee: grantee})
	return nil
}

func (r *stubPermissionRepo) Revoke(_ context.Context, owner, grantee string) error {
	r.remove(owner, grantee)
	return nil
}

func (r *stubPermissionRepo) remove(owner, grantee string) {
	remaining := r.perms[:0]
	for _, p := range r.perms {
		if p.Owner == owner && p.Grantee == grantee {
			continue
		}
		remaining = append(remaining, p)
	}
	r.perms = remaining
}

func (r *stubPermissionRepo) Exists(_ context.Context, owner, grantee string) (bool, error) {
	for _, p := range r.perms {
		if p.Owner == owner && p.Grantee == grantee {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPermissionRepo) OwnersFor(_ context.Context, grantee string) ([]string, error) {
	owners := make([]string, 0)
	for _, p := range r.perms {
		if p.Grantee == grantee {
			owners = append(owners, p.Owner)
		}
	}
	return owners, nil
}

func (r *stubPermissionRepo) GranteesFor(_ context.Context, owner string) ([]string, error) {
	grantees := make([]string, 0)
	for _, p := range r.perms {
		if p.Owner == owner {
			grantees = append(grantees, p.Grantee)
		}
	}
	return grantees, nil
}

func (r *stubPermissionRepo) RemoveAccount(_ context.Context, name string) error {
	remaining := r.perms[:0]
	for _, p := range r.perms {
		if p.Owner == name || p.Grantee == name {
			continue
		}
		remaining = append(remaining, p)
	}
	r.perms = remaining
	return nil
}

func (r *stubPermissionRepo) List(_ context.Context) ([]domain.Permission, error) {
	return append([]domain.Permission(nil), r.perms...), nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
