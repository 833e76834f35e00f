package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		name    string
		version int
		ok      bool
	}{
		{"001_initial_schema.sql", 1, true},
		{"002_demo_content.sql", 2, true},
		{"120_later.sql", 120, true},
		{"000_zero.sql", 0, false},
		{"abc_initial.sql", 0, false},
		{"1_short.sql", 0, false},
		{"001.sql", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			version, ok := migrationVersion(tc.name)
			if version != tc.version || ok != tc.ok {
				t.Errorf("Expected (%d, %v), got (%d, %v)", tc.version, tc.ok, version, ok)
			}
		})
	}
}

func TestListMigrations_Sorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"010_ten.sql", "002_two.sql", "README.md", "001_one.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := listMigrations(dir)
	if err != nil {
		t.Fatalf("listMigrations: %v", err)
	}

	want := []int{1, 2, 10}
	if len(got) != len(want) {
		t.Fatalf("Expected %d migrations, got %d", len(want), len(got))
	}
	for i, v := range want {
		if got[i].version != v {
			t.Errorf("Position %d: expected version %d, got %d", i, v, got[i].version)
		}
	}
}

func TestListMigrations_MissingDir(t *testing.T) {
	if _, err := listMigrations(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestRepoMigrationsParse(t *testing.T) {
	got, err := listMigrations(filepath.Join("..", "..", "migrations"))
	if err != nil {
		t.Fatalf("listMigrations: %v", err)
	}
	if len(got) < 2 || got[0].version != 1 || got[1].version != 2 {
		t.Errorf("Unexpected repository migrations %+v", got)
	}
}
