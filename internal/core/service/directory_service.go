package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/annuaire/directory-system/internal/core/domain"
	"github.com/annuaire/directory-system/internal/core/ports"
)

// DirectoryService implements contact CRUD over per-account directories.
// Reads are gated by the access checker; writes are always self-scoped and
// skip it.
type DirectoryService struct {
	repo   ports.DirectoryRepository
	access ports.AccessChecker
	logger zerolog.Logger
}

func NewDirectoryService(repo ports.DirectoryRepository, access ports.AccessChecker, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, access: access, logger: logger}
}

func (s *DirectoryService) List(ctx context.Context, owner, requester string) ([]domain.Contact, error) {
	ok, err := s.access.CanRead(ctx, requester, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx, owner)
}

func (s *DirectoryService) Add(ctx context.Context, owner string, contact domain.Contact) error {
	if contact.Surname == "" || contact.FirstName == "" || contact.Email == "" {
		return domain.ErrMissingField
	}
	if err := s.repo.Add(ctx, owner, contact); err != nil {
		return err
	}
	s.logger.Info().Str("owner", owner).Str("surname", contact.Surname).Str("first_name", contact.FirstName).Msg("contact added")
	return nil
}

func (s *DirectoryService) Update(ctx context.Context, owner string, contact domain.Contact) error {
	if contact.Surname == "" || contact.FirstName == "" {
		return domain.ErrMissingField
	}
	return s.repo.Update(ctx, owner, contact)
}

func (s *DirectoryService) Remove(ctx context.Context, owner string, key domain.ContactKey) error {
	if key.Surname == "" || key.FirstName == "" {
		return domain.ErrMissingField
	}
	return s.repo.Remove(ctx, owner, key)
}

func (s *DirectoryService) Search(ctx context.Context, owner, requester, term string) ([]domain.Contact, error) {
	ok, err := s.access.CanRead(ctx, requester, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	contacts, err := s.repo.List(ctx, owner)
	if err != nil {
		// A vanished directory is an empty search result, matching the
		// behaviour of listing: only LISTE_CONTACTS reports 404.
		if errors.Is(err, domain.ErrDirectoryNotFound) {
			return []domain.Contact{}, nil
		}
		return nil, err
	}

	results := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.Matches(term) {
			results = append(results, c)
		}
	}
	return results, nil
}
