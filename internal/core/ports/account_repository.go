package ports

import (
	"context"

	"github.com/annuaire/directory-system/internal/core/domain"
)

// AccountRepository defines the persistence interface for accounts.
type AccountRepository interface {
	// Insert adds a new account. Returns domain.ErrAccountExists when the
	// name is already taken.
	Insert(ctx context.Context, account *domain.Account) error
	// FindByName returns the account or domain.ErrAccountNotFound.
	FindByName(ctx context.Context, name string) (*domain.Account, error)
	// Update replaces the stored row matching account.Name. Returns
	// domain.ErrAccountNotFound when no such account exists.
	Update(ctx context.Context, account *domain.Account) error
	// Delete removes the account row. Returns domain.ErrAccountNotFound
	// when no such account exists.
	Delete(ctx context.Context, name string) error
	// List returns every account in table order.
	List(ctx context.Context) ([]domain.Account, error)
}
