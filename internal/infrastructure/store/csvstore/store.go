// Package csvstore persists the account, permission, and directory tables as
// header-prefixed CSV files, byte-compatible with existing data directories.
// Every mutation reads the whole table, applies the change in memory, and
// rewrites the table wholesale; a per-table mutex serializes that cycle
// because two interleaved rewrites would silently drop one writer's changes.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	accountsFile    = "comptes.csv"
	permissionsFile = "permissions.csv"
	directoriesDir  = "annuaires"
)

var (
	accountsHeader    = []string{"Nom", "Statut", "Mot_de_passe"}
	permissionsHeader = []string{"Proprietaire", "Utilisateur_Autorise"}
	contactsHeader    = []string{"Nom", "Prenom", "Telephone", "Adresse", "Email"}
)

// Store owns the data directory and the per-table locks shared by the three
// repositories.
type Store struct {
	dataDir string

	accountsMu    sync.Mutex
	permissionsMu sync.Mutex
	directoriesMu sync.Mutex
}

func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// Init creates the data directory tree and header-only tables when absent.
// Existing files are left untouched.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Join(s.dataDir, directoriesDir), 0o755); err != nil {
		return fmt.Errorf("create data directories: %w", err)
	}
	for _, t := range []struct {
		path   string
		header []string
	}{
		{s.accountsPath(), accountsHeader},
		{s.permissionsPath(), permissionsHeader},
	} {
		if _, err := os.Stat(t.path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", t.path, err)
		}
		if err := writeTable(t.path, t.header, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{store: s}
}

func (s *Store) Permissions() *PermissionRepository {
	return &PermissionRepository{store: s}
}

func (s *Store) Directories() *DirectoryRepository {
	return &DirectoryRepository{store: s}
}

func (s *Store) accountsPath() string {
	return filepath.Join(s.dataDir, accountsFile)
}

func (s *Store) permissionsPath() string {
	return filepath.Join(s.dataDir, permissionsFile)
}

// directoryPath returns the per-owner directory file path, or false when the
// owner name cannot safely name a file. Owner values arrive from the wire,
// so path metacharacters must never reach the filesystem.
func (s *Store) directoryPath(owner string) (string, bool) {
	if owner == "" || owner == "." || owner == ".." || strings.ContainsAny(owner, "/\\\x00") {
		return "", false
	}
	return filepath.Join(s.dataDir, directoriesDir, "annuaire_"+owner+".csv"), true
}

// readTable returns the data rows of a CSV table, skipping the header line.
func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

// writeTable rewrites a table wholesale: header first, then rows, through a
// temp file renamed into place so readers never observe a half-written table.
func writeTable(path string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s header: %w", filepath.Base(path), err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s rows: %w", filepath.Base(path), err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp table: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
