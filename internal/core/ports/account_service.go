package ports

import (
	"context"

	"github.com/annuaire/directory-system/internal/core/domain"
)

// UpdateAccountInput carries the optional fields of an account update. Empty
// fields are left unchanged.
type UpdateAccountInput struct {
	Name      string
	NewDigest string
	NewRole   string
}

type AccountService interface {
	Create(ctx context.Context, name, passwordDigest, role string) error
	// Authenticate returns the account's role on an exact match of name and
	// digest, or domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, name, passwordDigest string) (string, error)
	Update(ctx context.Context, input UpdateAccountInput) error
	// Delete removes the account, its directory, and every permission row
	// mentioning it.
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) ([]domain.AccountStats, error)
	// EnsureDefaultAdmin creates the default administrator account when no
	// administrator exists yet.
	EnsureDefaultAdmin(ctx context.Context) error
}
