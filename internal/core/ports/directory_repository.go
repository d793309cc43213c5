package ports

import (
	"context"

	"github.com/annuaire/directory-system/internal/core/domain"
)

// DirectoryRepository defines the persistence interface for one contact
// collection per account. Mutating methods cover the full read-modify-write
// cycle so a backend can serialize it against concurrent callers.
type DirectoryRepository interface {
	// Create initialises an empty directory for owner.
	Create(ctx context.Context, owner string) error
	// Delete removes owner's directory entirely. Deleting a missing
	// directory is not an error.
	Delete(ctx context.Context, owner string) error
	// List returns all contacts of owner in stored order, or
	// domain.ErrDirectoryNotFound.
	List(ctx context.Context, owner string) ([]domain.Contact, error)
	// Add appends a contact. Returns domain.ErrDirectoryNotFound or
	// domain.ErrContactExists on a duplicate (surname, first name) key.
	Add(ctx context.Context, owner string, contact domain.Contact) error
	// Update replaces the full row matching contact's key. Returns
	// domain.ErrDirectoryNotFound or domain.ErrContactNotFound.
	Update(ctx context.Context, owner string, contact domain.Contact) error
	// Remove deletes the row matching key. Returns
	// domain.ErrDirectoryNotFound or domain.ErrContactNotFound.
	Remove(ctx context.Context, owner string, key domain.ContactKey) error
	// Count returns the number of contacts in owner's directory, zero when
	// the directory does not exist.
	Count(ctx context.Context, owner string) (int, error)
}
