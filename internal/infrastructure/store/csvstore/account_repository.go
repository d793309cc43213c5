package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/annuaire/directory-system/internal/core/domain"
)

// AccountRepository persists accounts in the comptes.csv table, one row per
// account: Nom, Statut, Mot_de_passe.
type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) error {
	r.store.accountsMu.Lock()
	defer r.store.accountsMu.Unlock()

	rows, err := r.readAll()
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Name == account.Name {
			return domain.ErrAccountExists
		}
	}
	rows = append(rows, *account)
	return r.writeAll(rows)
}

func (r *AccountRepository) FindByName(ctx context.Context, name string) (*domain.Account, error) {
	r.store.accountsMu.Lock()
	defer r.store.accountsMu.Unlock()

	rows, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Name == name {
			account := row
			return &account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	r.store.accountsMu.Lock()
	defer r.store.accountsMu.Unlock()

	rows, err := r.readAll()
	if err != nil {
		return err
	}
	updated := false
	for i := range rows {
		if rows[i].Name == account.Name {
			rows[i] = *account
			updated = true
		}
	}
	if !updated {
		return domain.ErrAccountNotFound
	}
	return r.writeAll(rows)
}

func (r *AccountRepository) Delete(ctx context.Context, name string) error {
	r.store.accountsMu.Lock()
	defer r.store.accountsMu.Unlock()

	rows, err := r.readAll()
	if err != nil {
		return err
	}
	remaining := rows[:0]
	found := false
	for _, row := range rows {
		if row.Name == name {
			found = true
			continue
		}
		remaining = append(remaining, row)
	}
	if !found {
		return domain.ErrAccountNotFound
	}
	return r.writeAll(remaining)
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	r.store.accountsMu.Lock()
	defer r.store.accountsMu.Unlock()

	return r.readAll()
}

func (r *AccountRepository) readAll() ([]domain.Account, error) {
	rows, err := readTable(r.store.accountsPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read accounts table: %w", err)
	}
	accounts := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		accounts = append(accounts, domain.Account{
			Name:           row[0],
			Role:           row[1],
			PasswordDigest: row[2],
		})
	}
	return accounts, nil
}

func (r *AccountRepository) writeAll(accounts []domain.Account) error {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{a.Name, a.Role, a.PasswordDigest})
	}
	return writeTable(r.store.accountsPath(), accountsHeader, rows)
}
