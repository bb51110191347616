// Package manifest handles bootfix.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the configuration file looked up in a project directory.
const ManifestName = "bootfix.toml"

// Manifest represents a bootfix.toml project configuration.
type Manifest struct {
	Program Program `toml:"program"`
	History History `toml:"history"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the bootfix.toml file (set at load time).
	Dir string `toml:"-"`
}

// Program configures the boot-code source location.
type Program struct {
	Path string `toml:"path"`
}

// History configures the run-history store.
type History struct {
	Path     string `toml:"path"`
	Disabled bool   `toml:"disabled"`
}

// Log configures logging output.
type Log struct {
	Verbosity int `toml:"verbosity"`
}

// Default returns the manifest used when no bootfix.toml exists,
// anchored at dir.
func Default(dir string) *Manifest {
	m := &Manifest{Dir: dir}
	m.applyDefaults()
	return m
}

// Load parses a bootfix.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	m.applyDefaults()
	return &m, nil
}

// FindAndLoad loads the manifest from startDir if one exists there.
// A missing manifest is not an error: defaults are returned instead.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(dir, ManifestName)); err != nil {
		return Default(dir), nil
	}
	return Load(dir)
}

func (m *Manifest) applyDefaults() {
	if m.Program.Path == "" {
		m.Program.Path = "instructions.txt"
	}
	if m.History.Path == "" {
		m.History.Path = filepath.Join(".bootfix", "history.db")
	}
}

// ProgramPath returns the absolute path of the configured program file.
func (m *Manifest) ProgramPath() string {
	return m.resolve(m.Program.Path)
}

// HistoryPath returns the absolute path of the run-history database.
func (m *Manifest) HistoryPath() string {
	return m.resolve(m.History.Path)
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Dir, path)
}
