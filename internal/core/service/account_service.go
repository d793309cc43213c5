package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/annuaire/directory-system/internal/core/domain"
	"github.com/annuaire/directory-system/internal/core/ports"
)

// Default administrator identity seeded when no administrator exists yet.
const (
	defaultAdminName     = "aoun"
	defaultAdminPassword = "stri26"
)

// AccountService implements account lifecycle, authentication, and the admin
// statistics view.
type AccountService struct {
	accounts    ports.AccountRepository
	directories ports.DirectoryRepository
	permissions ports.PermissionRepository
	logger      zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, directories ports.DirectoryRepository, permissions ports.PermissionRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{
		accounts:    accounts,
		directories: directories,
		permissions: permissions,
		logger:      logger,
	}
}

// validAccountName rejects names that cannot serve as a table key. The
// flat-file backend derives a file path from the name, so path metacharacters
// are refused at creation time.
func validAccountName(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	return true
}

func (s *AccountService) Create(ctx context.Context, name, passwordDigest, role string) error {
	if name == "" || passwordDigest == "" || role == "" {
		return domain.ErrMissingField
	}
	if !validAccountName(name) {
		return domain.ErrInvalidAccountName
	}
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}

	account := &domain.Account{
		Name:           name,
		Role:           role,
		PasswordDigest: passwordDigest,
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		return err
	}
	if err := s.directories.Create(ctx, name); err != nil {
		return err
	}

	s.logger.Info().Str("account", name).Str("role", role).Msg("account created")
	return nil
}

func (s *AccountService) Authenticate(ctx context.Context, name, passwordDigest string) (string, error) {
	if name == "" || passwordDigest == "" {
		return "", domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if account.PasswordDigest != passwordDigest {
		return "", domain.ErrInvalidCredentials
	}
	return account.Role, nil
}

func (s *AccountService) Update(ctx context.Context, input ports.UpdateAccountInput) error {
	if input.Name == "" {
		return domain.ErrMissingField
	}
	if input.NewRole != "" && !domain.ValidRole(input.NewRole) {
		return domain.ErrInvalidRole
	}

	account, err := s.accounts.FindByName(ctx, input.Name)
	if err != nil {
		return err
	}
	if input.NewDigest != "" {
		account.PasswordDigest = input.NewDigest
	}
	if input.NewRole != "" {
		account.Role = input.NewRole
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}

	s.logger.Info().Str("account", input.Name).Msg("account updated")
	return nil
}

func (s *AccountService) Delete(ctx context.Context, name string) error {
	if err := s.accounts.Delete(ctx, name); err != nil {
		return err
	}
	if err := s.directories.Delete(ctx, name); err != nil {
		return err
	}
	if err := s.permissions.RemoveAccount(ctx, name); err != nil {
		return err
	}

	s.logger.Info().Str("account", name).Msg("account and associated data deleted")
	return nil
}

func (s *AccountService) List(ctx context.Context) ([]string, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(accounts))
	for _, a := range accounts {
		names = append(names, a.Name)
	}
	return names, nil
}

// Stats assembles the administrator dashboard: one row per account with its
// contact count and the number of directories it has been granted access to.
func (s *AccountService) Stats(ctx context.Context) ([]domain.AccountStats, error) {
	perms, err := s.permissions.List(ctx)
	if err != nil {
		return nil, err
	}
	readableBy := make(map[string]int, len(perms))
	for _, p := range perms {
		readableBy[p.Grantee]++
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]domain.AccountStats, 0, len(accounts))
	for _, a := range accounts {
		count, err := s.directories.Count(ctx, a.Name)
		if err != nil {
			return nil, err
		}
		stats = append(stats, domain.AccountStats{
			Name:         a.Name,
			Role:         a.Role,
			ContactCount: count,
			ReadableBy:   readableBy[a.Name],
		})
	}
	return stats, nil
}

// EnsureDefaultAdmin seeds the default administrator account when the table
// holds no administrator, so a fresh deployment is never locked out.
func (s *AccountService) EnsureDefaultAdmin(ctx context.Context) error {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.Role == domain.RoleAdmin {
			return nil
		}
	}

	if err := s.Create(ctx, defaultAdminName, DigestPassword(defaultAdminPassword), domain.RoleAdmin); err != nil {
		return err
	}
	s.logger.Warn().Str("account", defaultAdminName).Msg("default administrator account created")
	return nil
}

// DigestPassword computes the fixed one-way digest clients apply to passwords
// before sending them: lowercase hex SHA-512.
func DigestPassword(password string) string {
	sum := sha512.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}
