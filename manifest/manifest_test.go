package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	// Create a temporary directory with a bootfix.toml
	dir := t.TempDir()
	tomlContent := `
[program]
path = "boot/day8.txt"

[history]
path = "runs.db"
disabled = true

[log]
verbosity = 2
`
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(tomlContent), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Program.Path != "boot/day8.txt" {
		t.Errorf("Expected program path 'boot/day8.txt', got %q", m.Program.Path)
	}
	if !m.History.Disabled {
		t.Error("Expected history to be disabled")
	}
	if m.Log.Verbosity != 2 {
		t.Errorf("Expected verbosity 2, got %d", m.Log.Verbosity)
	}
	if m.ProgramPath() != filepath.Join(m.Dir, "boot", "day8.txt") {
		t.Errorf("Unexpected resolved program path %q", m.ProgramPath())
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(""), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Program.Path != "instructions.txt" {
		t.Errorf("Expected default program path, got %q", m.Program.Path)
	}
	if m.History.Path != filepath.Join(".bootfix", "history.db") {
		t.Errorf("Expected default history path, got %q", m.History.Path)
	}
	if m.History.Disabled {
		t.Error("Expected history enabled by default")
	}
}

func TestLoadManifestMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte("[program\npath="), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Expected an error for malformed toml")
	}
}

func TestFindAndLoadMissingManifest(t *testing.T) {
	dir := t.TempDir()

	m, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("Expected defaults for a missing manifest, got nil")
	}
	if m.Program.Path != "instructions.txt" {
		t.Errorf("Expected default program path, got %q", m.Program.Path)
	}
}
