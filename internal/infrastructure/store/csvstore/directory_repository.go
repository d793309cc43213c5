package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/annuaire/directory-system/internal/core/domain"
)

// DirectoryRepository persists one contact table per account under
// annuaires/annuaire_<owner>.csv with the columns Nom, Prenom, Telephone,
// Adresse, Email.
type DirectoryRepository struct {
	store *Store
}

func (r *DirectoryRepository) Create(ctx context.Context, owner string) error {
	r.store.directoriesMu.Lock()
	defer r.store.directoriesMu.Unlock()

	path, ok := r.store.directoryPath(owner)
	if !ok {
		return domain.ErrInvalidAccountName
	}
	return writeTable(path, contactsHeader, nil)
}

func (r *DirectoryRepository) Delete(ctx context.Context, owner string) error {
	r.store.directoriesMu.Lock()
	defer r.store.directoriesMu.Unlock()

	path, ok := r.store.directoryPath(owner)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete directory table: %w", err)
	}
	return nil
}

func (r *DirectoryRepository) List(ctx context.Context, owner string) ([]domain.Contact, error) {
	r.store.directoriesMu.Lock()
	defer r.store.directoriesMu.Unlock()

	return r.readAll(owner)
}

func (r *DirectoryRepository) Add(ctx context.Context, owner string, contact domain.Contact) error {
	r.store.directoriesMu.Lock()
	defer r.store.directoriesMu.Unlock()

	contacts, err := r.readAll(owner)
	if err != nil {
		return err
	}
	for _, c := range contacts {
		if c.Key() == contact.Key() {
			return domain.ErrContactExists
		}
	}
	return r.writeAll(owner, append(contacts, contact))
}

func (r *DirectoryRepository) Update(ctx context.Context, owner string, contact domain.Contact) error {
	r.store.directoriesMu.Lock()
	defer r.store.directoriesMu.Unlock()

	contacts, err := r.readAll(owner)
	if err != nil {
		return err
	}
	updated := false
	for i := range contacts {
		if contacts[i].Key() == contact.Key() {
			contacts[i] = contact
			updated = true
		}
	}
	if !updated {
		return domain.ErrContactNotFound
	}
	return r.writeAll(owner, contacts)
}

func (r *DirectoryRepository) Remove(ctx context.Context, owner string, key domain.ContactKey) error {
	r.store.directoriesMu.Lock()
	defer r.store.directoriesMu.Unlock()

	contacts, err := r.readAll(owner)
	if err != nil {
		return err
	}
	remaining := contacts[:0]
	found := false
	for _, c := range contacts {
		if c.Key() == key {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		return domain.ErrContactNotFound
	}
	return r.writeAll(owner, remaining)
}

func (r *DirectoryRepository) Count(ctx context.Context, owner string) (int, error) {
	r.store.directoriesMu.Lock()
	defer r.store.directoriesMu.Unlock()

	contacts, err := r.readAll(owner)
	if err != nil {
		if errors.Is(err, domain.ErrDirectoryNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return len(contacts), nil
}

func (r *DirectoryRepository) readAll(owner string) ([]domain.Contact, error) {
	path, ok := r.store.directoryPath(owner)
	if !ok {
		return nil, domain.ErrDirectoryNotFound
	}
	rows, err := readTable(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrDirectoryNotFound
		}
		return nil, fmt.Errorf("read directory table: %w", err)
	}
	contacts := make([]domain.Contact, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		contacts = append(contacts, domain.Contact{
			Surname:   row[0],
			FirstName: row[1],
			Phone:     row[2],
			Address:   row[3],
			Email:     row[4],
		})
	}
	return contacts, nil
}

func (r *DirectoryRepository) writeAll(owner string, contacts []domain.Contact) error {
	path, ok := r.store.directoryPath(owner)
	if !ok {
		return domain.ErrDirectoryNotFound
	}
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{c.Surname, c.FirstName, c.Phone, c.Address, c.Email})
	}
	return writeTable(path, contactsHeader, rows)
}
