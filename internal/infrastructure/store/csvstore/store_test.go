package csvstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/annuaire/directory-system/internal/core/domain"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return s
}

func TestInit_CreatesHeaderTables(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	for file, header := range map[string]string{
		"comptes.csv":     "Nom,Statut,Mot_de_passe",
		"permissions.csv": "Proprietaire,Utilisateur_Autorise",
	} {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		if got := strings.TrimSpace(string(data)); got != header {
			t.Errorf("%s header = %q, want %q", file, got, header)
		}
	}
	if fi, err := os.Stat(filepath.Join(dir, "annuaires")); err != nil || !fi.IsDir() {
		t.Fatalf("annuaires directory missing: %v", err)
	}
}

func TestInit_PreservesExistingData(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx := context.Background()
	if err := s.Accounts().Insert(ctx, &domain.Account{Name: "alice", Role: domain.RoleStandard, PasswordDigest: "d"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// A second Init over the same directory must not truncate tables.
	if err := New(dir).Init(); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	if _, err := New(dir).Accounts().FindByName(ctx, "alice"); err != nil {
		t.Fatalf("account lost after re-init: %v", err)
	}
}

func TestAccountRepository_CRUD(t *testing.T) {
	s := newStore(t)
	repo := s.Accounts()
	ctx := context.Background()

	account := &domain.Account{Name: "alice", Role: domain.RoleStandard, PasswordDigest: "digest"}
	if err := repo.Insert(ctx, account); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, account); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}

	found, err := repo.FindByName(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Role != domain.RoleStandard || found.PasswordDigest != "digest" {
		t.Fatalf("unexpected account: %+v", found)
	}
	if _, err := repo.FindByName(ctx, "ghost"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	account.Role = domain.RoleAdmin
	if err := repo.Update(ctx, account); err != nil {
		t.Fatalf("update: %v", err)
	}
	found, _ = repo.FindByName(ctx, "alice")
	if found.Role != domain.RoleAdmin {
		t.Fatalf("role not persisted: %+v", found)
	}
	if err := repo.Update(ctx, &domain.Account{Name: "ghost"}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "alice"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	accounts, err := repo.List(ctx)
	if err != nil || len(accounts) != 0 {
		t.Fatalf("expected empty list, got %v %v", accounts, err)
	}
}

func TestAccountRepository_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := New(dir)
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := s.Accounts().Insert(ctx, &domain.Account{Name: "alice", Role: domain.RoleAdmin, PasswordDigest: "d1"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	reopened := New(dir)
	found, err := reopened.Accounts().FindByName(ctx, "alice")
	if err != nil {
		t.Fatalf("find after reopen: %v", err)
	}
	if found.Role != domain.RoleAdmin || found.PasswordDigest != "d1" {
		t.Fatalf("unexpected account after reopen: %+v", found)
	}
}

func TestPermissionRepository_GrantIdempotent(t *testing.T) {
	s := newStore(t)
	repo := s.Permissions()
	ctx := context.Background()

	if err := repo.Grant(ctx, "alice", "bob"); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := repo.Grant(ctx, "alice", "bob"); err != nil {
		t.Fatalf("second grant: %v", err)
	}

	perms, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(perms) != 1 {
		t.Fatalf("expected a single row, got %v", perms)
	}

	ok, err := repo.Exists(ctx, "alice", "bob")
	if err != nil || !ok {
		t.Fatalf("expected grant to exist: %v %v", ok, err)
	}
	// The relation is directional.
	ok, _ = repo.Exists(ctx, "bob", "alice")
	if ok {
		t.Fatal("reverse pair must not exist")
	}
}

func TestPermissionRepository_RevokeAndListings(t *testing.T) {
	s := newStore(t)
	repo := s.Permissions()
	ctx := context.Background()

	_ = repo.Grant(ctx, "alice", "bob")
	_ = repo.Grant(ctx, "carol", "bob")
	_ = repo.Grant(ctx, "alice", "dave")

	owners, err := repo.OwnersFor(ctx, "bob")
	if err != nil || len(owners) != 2 {
		t.Fatalf("owners for bob = %v, %v", owners, err)
	}
	grantees, err := repo.GranteesFor(ctx, "alice")
	if err != nil || len(grantees) != 2 {
		t.Fatalf("grantees for alice = %v, %v", grantees, err)
	}

	if err := repo.Revoke(ctx, "alice", "bob"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := repo.Exists(ctx, "alice", "bob"); ok {
		t.Fatal("pair still present after revoke")
	}
	// Revoking an absent pair is not an error.
	if err := repo.Revoke(ctx, "alice", "bob"); err != nil {
		t.Fatalf("revoke absent: %v", err)
	}
}

func TestPermissionRepository_RemoveAccount(t *testing.T) {
	s := newStore(t)
	repo := s.Permissions()
	ctx := context.Background()

	_ = repo.Grant(ctx, "alice", "bob")
	_ = repo.Grant(ctx, "bob", "carol")
	_ = repo.Grant(ctx, "carol", "dave")

	if err := repo.RemoveAccount(ctx, "bob"); err != nil {
		t.Fatalf("remove account: %v", err)
	}

	perms, _ := repo.List(ctx)
	if len(perms) != 1 || perms[0].Owner != "carol" || perms[0].Grantee != "dave" {
		t.Fatalf("expected only carol->dave to survive, got %v", perms)
	}
}

func TestDirectoryRepository_RoundTrip(t *testing.T) {
	s := newStore(t)
	repo := s.Directories()
	ctx := context.Background()

	if err := repo.Create(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}

	ann := domain.Contact{Surname: "SMITH", FirstName: "Ann", Phone: "0612345678", Address: "Paris", Email: "a@x.com"}
	if err := repo.Add(ctx, "alice", ann); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.Add(ctx, "alice", ann); !errors.Is(err, domain.ErrContactExists) {
		t.Fatalf("expected ErrContactExists, got %v", err)
	}

	n, err := repo.Count(ctx, "alice")
	if err != nil || n != 1 {
		t.Fatalf("count = %d, %v", n, err)
	}

	ann.Email = "new@x.com"
	if err := repo.Update(ctx, "alice", ann); err != nil {
		t.Fatalf("update: %v", err)
	}
	contacts, err := repo.List(ctx, "alice")
	if err != nil || len(contacts) != 1 || contacts[0].Email != "new@x.com" {
		t.Fatalf("unexpected contents: %v %v", contacts, err)
	}

	ghost := domain.Contact{Surname: "GHOST", FirstName: "Nope"}
	if err := repo.Update(ctx, "alice", ghost); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}

	if err := repo.Remove(ctx, "alice", ann.Key()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.Remove(ctx, "alice", ann.Key()); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound on second remove, got %v", err)
	}
}

func TestDirectoryRepository_MissingDirectory(t *testing.T) {
	s := newStore(t)
	repo := s.Directories()
	ctx := context.Background()

	if _, err := repo.List(ctx, "ghost"); !errors.Is(err, domain.ErrDirectoryNotFound) {
		t.Fatalf("expected ErrDirectoryNotFound, got %v", err)
	}
	// Missing tables count as empty so admin stats stay total.
	if n, err := repo.Count(ctx, "ghost"); err != nil || n != 0 {
		t.Fatalf("count = %d, %v", n, err)
	}
	// Deleting a table that never existed is fine.
	if err := repo.Delete(ctx, "ghost"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestDirectoryRepository_RejectsUnsafeOwner(t *testing.T) {
	s := newStore(t)
	repo := s.Directories()
	ctx := context.Background()

	for _, owner := range []string{"", ".", "..", "../etc", "a/b", "a\\b"} {
		if err := repo.Create(ctx, owner); !errors.Is(err, domain.ErrInvalidAccountName) {
			t.Errorf("create %q: expected ErrInvalidAccountName, got %v", owner, err)
		}
		if _, err := repo.List(ctx, owner); !errors.Is(err, domain.ErrDirectoryNotFound) {
			t.Errorf("list %q: expected ErrDirectoryNotFound, got %v", owner, err)
		}
	}
}

func TestDirectoryRepository_FileLayout(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx := context.Background()

	_ = s.Directories().Create(ctx, "alice")
	_ = s.Directories().Add(ctx, "alice", domain.Contact{Surname: "SMITH", FirstName: "Ann", Phone: "06", Address: "Paris", Email: "a@x.com"})

	data, err := os.ReadFile(filepath.Join(dir, "annuaires", "annuaire_alice.csv"))
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %q", lines)
	}
	if lines[0] != "Nom,Prenom,Telephone,Adresse,Email" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "SMITH,Ann,06,Paris,a@x.com" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}
