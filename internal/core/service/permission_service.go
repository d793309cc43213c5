package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/annuaire/directory-system/internal/core/domain"
	"github.com/annuaire/directory-system/internal/core/ports"
)

// PermissionService manages the (owner, grantee) read-permission relation.
type PermissionService struct {
	repo   ports.PermissionRepository
	logger zerolog.Logger
}

func NewPermissionService(repo ports.PermissionRepository, logger zerolog.Logger) *PermissionService {
	return &PermissionService{repo: repo, logger: logger}
}

func (s *PermissionService) Grant(ctx context.Context, owner, grantee string) error {
	if owner == grantee {
		return domain.ErrSelfTarget
	}
	if err := s.repo.Grant(ctx, owner, grantee); err != nil {
		return err
	}
	s.logger.Info().Str("owner", owner).Str("grantee", grantee).Msg("read access granted")
	return nil
}

func (s *PermissionService) Revoke(ctx context.Context, owner, grantee string) error {
	if owner == grantee {
		return domain.ErrSelfTarget
	}
	if err := s.repo.Revoke(ctx, owner, grantee); err != nil {
		return err
	}
	s.logger.Info().Str("owner", owner).Str("grantee", grantee).Msg("read access revoked")
	return nil
}

func (s *PermissionService) GrantorsFor(ctx context.Context, grantee string) ([]string, error) {
	return s.repo.OwnersFor(ctx, grantee)
}

func (s *PermissionService) GranteesFor(ctx context.Context, owner string) ([]string, error) {
	return s.repo.GranteesFor(ctx, owner)
}
