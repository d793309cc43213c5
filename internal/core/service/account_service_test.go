package service

import (
	"context"
	"errors"
	"testing"

	"github.com/annuaire/directory-system/internal/core/domain"
	"github.com/annuaire/directory-system/internal/core/ports"
)

func newAccountService() (*AccountService, *stubAccountRepo, *stubDirectoryRepo, *stubPermissionRepo) {
	accounts := &stubAccountRepo{}
	directories := newStubDirectoryRepo()
	permissions := &stubPermissionRepo{}
	svc := NewAccountService(accounts, directories, permissions, testLogger())
	return svc, accounts, directories, permissions
}

func TestAccountService_Create_Success(t *testing.T) {
	svc, accounts, directories, _ := newAccountService()

	if err := svc.Create(context.Background(), "alice", "digest", domain.RoleAdmin); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(accounts.accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(accounts.accounts))
	}
	if _, ok := directories.directories["alice"]; !ok {
		t.Fatalf("expected an empty directory for alice")
	}
}

func TestAccountService_Create_Duplicate(t *testing.T) {
	svc, accounts, _, _ := newAccountService()

	_ = svc.Create(context.Background(), "alice", "digest", domain.RoleStandard)
	err := svc.Create(context.Background(), "alice", "other", domain.RoleStandard)
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	if len(accounts.accounts) != 1 {
		t.Fatalf("expected exactly 1 account row, got %d", len(accounts.accounts))
	}
}

func TestAccountService_Create_Validation(t *testing.T) {
	svc, _, _, _ := newAccountService()
	ctx := context.Background()

	if err := svc.Create(ctx, "", "digest", domain.RoleStandard); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty name, got %v", err)
	}
	if err := svc.Create(ctx, "bob", "", domain.RoleStandard); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty digest, got %v", err)
	}
	if err := svc.Create(ctx, "bob", "digest", "superuser"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err := svc.Create(ctx, "../etc", "digest", domain.RoleStandard); !errors.Is(err, domain.ErrInvalidAccountName) {
		t.Fatalf("expected ErrInvalidAccountName, got %v", err)
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	svc, _, _, _ := newAccountService()
	ctx := context.Background()
	_ = svc.Create(ctx, "carol", "digest", domain.RoleAdmin)

	role, err := svc.Authenticate(ctx, "carol", "digest")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if role != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %s", domain.RoleAdmin, role)
	}

	if _, err := svc.Authenticate(ctx, "carol", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong digest, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost", "digest"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown account, got %v", err)
	}
}

func TestAccountService_Update_PartialFields(t *testing.T) {
	svc, accounts, _, _ := newAccountService()
	ctx := context.Background()
	_ = svc.Create(ctx, "dave", "old-digest", domain.RoleStandard)

	if err := svc.Update(ctx, ports.UpdateAccountInput{Name: "dave", NewRole: domain.RoleAdmin}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if accounts.accounts[0].Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %s", accounts.accounts[0].Role)
	}
	if accounts.accounts[0].PasswordDigest != "old-digest" {
		t.Fatalf("digest changed unexpectedly: %s", accounts.accounts[0].PasswordDigest)
	}

	if err := svc.Update(ctx, ports.UpdateAccountInput{Name: "ghost", NewRole: domain.RoleAdmin}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_Delete_Cascades(t *testing.T) {
	svc, accounts, directories, permissions := newAccountService()
	ctx := context.Background()
	_ = svc.Create(ctx, "alice", "d1", domain.RoleStandard)
	_ = svc.Create(ctx, "bob", "d2", domain.RoleStandard)
	_ = permissions.Grant(ctx, "alice", "bob")
	_ = permissions.Grant(ctx, "bob", "alice")

	if err := svc.Delete(ctx, "alice"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(accounts.accounts) != 1 || accounts.accounts[0].Name != "bob" {
		t.Fatalf("unexpected remaining accounts: %+v", accounts.accounts)
	}
	if _, ok := directories.directories["alice"]; ok {
		t.Fatalf("directory not deleted")
	}
	if len(permissions.perms) != 0 {
		t.Fatalf("permissions mentioning alice not removed: %+v", permissions.perms)
	}

	if err := svc.Delete(ctx, "alice"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on second delete, got %v", err)
	}
}

func TestAccountService_Stats(t *testing.T) {
	svc, _, directories, permissions := newAccountService()
	ctx := context.Background()
	_ = svc.Create(ctx, "alice", "d1", domain.RoleAdmin)
	_ = svc.Create(ctx, "bob", "d2", domain.RoleStandard)

	_ = directories.Add(ctx, "alice", domain.Contact{Surname: "SMITH", FirstName: "Ann", Email: "a@x.com"})
	_ = directories.Add(ctx, "alice", domain.Contact{Surname: "DOE", FirstName: "Jo", Email: "j@x.com"})
	// bob may read alice's directory: counted against bob, not alice.
	_ = permissions.Grant(ctx, "alice", "bob")

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 stat rows, got %d", len(stats))
	}

	byName := make(map[string]domain.AccountStats)
	for _, s := range stats {
		byName[s.Name] = s
	}
	if byName["alice"].ContactCount != 2 || byName["alice"].ReadableBy != 0 {
		t.Fatalf("unexpected alice stats: %+v", byName["alice"])
	}
	if byName["bob"].ContactCount != 0 || byName["bob"].ReadableBy != 1 {
		t.Fatalf("unexpected bob stats: %+v", byName["bob"])
	}
}

func TestAccountService_EnsureDefaultAdmin(t *testing.T) {
	svc, accounts, directories, _ := newAccountService()
	ctx := context.Background()

	if err := svc.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("EnsureDefaultAdmin returned error: %v", err)
	}
	if len(accounts.accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(accounts.accounts))
	}
	admin := accounts.accounts[0]
	if admin.Name != "aoun" || admin.Role != domain.RoleAdmin {
		t.Fatalf("unexpected default admin: %+v", admin)
	}
	if admin.PasswordDigest != DigestPassword("stri26") {
		t.Fatalf("default admin digest mismatch")
	}
	if _, ok := directories.directories["aoun"]; !ok {
		t.Fatalf("default admin directory not created")
	}

	// Idempotent: an administrator already exists.
	if err := svc.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("second EnsureDefaultAdmin returned error: %v", err)
	}
	if len(accounts.accounts) != 1 {
		t.Fatalf("expected still 1 account, got %d", len(accounts.accounts))
	}
}

func TestDigestPassword(t *testing.T) {
	digest := DigestPassword("stri26")
	if len(digest) != 128 {
		t.Fatalf("expected 128 hex chars, got %d", len(digest))
	}
	if digest != DigestPassword("stri26") {
		t.Fatalf("digest is not deterministic")
	}
}
