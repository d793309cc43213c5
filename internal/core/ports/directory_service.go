package ports

import (
	"context"

	"github.com/annuaire/directory-system/internal/core/domain"
)

type DirectoryService interface {
	// List returns all contacts of owner, gated by the read-access check on
	// requester.
	List(ctx context.Context, owner, requester string) ([]domain.Contact, error)
	Add(ctx context.Context, owner string, contact domain.Contact) error
	// Update replaces the full contact row matching the key of contact.
	Update(ctx context.Context, owner string, contact domain.Contact) error
	Remove(ctx context.Context, owner string, key domain.ContactKey) error
	// Search returns the contacts of owner matching term, gated by the
	// read-access check on requester. A missing directory yields an empty
	// result, not an error.
	Search(ctx context.Context, owner, requester, term string) ([]domain.Contact, error)
}
