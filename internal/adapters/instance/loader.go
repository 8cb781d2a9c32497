// Package instance scans Factorio instance directories into read-only
// installed-state snapshots.
package instance

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.fmods.dev/fmods/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader implements ports.SnapshotLoader for on-disk Factorio instances.
// The game's own content lives under <instance>/data, one directory per
// content package with an info.json manifest; independently installed mods
// live in the shared mods directory under the user config dir.
type Loader struct {
	modsDir string
}

// Option configures a Loader.
type Option func(*Loader)

// WithModsDir overrides the mods directory. The default is
// <user config dir>/Factorio/mods.
func WithModsDir(dir string) Option {
	return func(l *Loader) { l.modsDir = dir }
}

// NewLoader creates a snapshot loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load scans the instance at path. The game version is derived from the
// bundled base package with the patch component zeroed, which is the form
// releases declare their target game version in.
func (l *Loader) Load(path string) (*domain.Snapshot, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(domain.ErrInstanceNotFound, "path", path)
	}

	content, err := readMods(filepath.Join(path, "data"))
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrBrokenInstance, err), "path", path)
	}

	contentVersions := make(map[string]domain.Version, len(content))
	for _, pkg := range content {
		contentVersions[pkg.Name] = pkg.Version
	}

	base, ok := contentVersions["base"]
	if !ok {
		return nil, zerr.With(domain.ErrBrokenInstance, "path", path)
	}
	gameVersion := domain.NewVersion(base.Major, base.Minor, 0)

	modsDir := l.modsDir
	if modsDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to locate user config dir")
		}
		modsDir = filepath.Join(configDir, "Factorio", "mods")
	}

	mods, err := readMods(modsDir)
	if err != nil {
		// First run: the mods directory does not exist yet.
		if err := os.MkdirAll(modsDir, 0o755); err != nil {
			return nil, zerr.Wrap(err, "failed to create mods directory")
		}
		mods = nil
	}

	return &domain.Snapshot{
		Path:            path,
		GameVersion:     gameVersion,
		ContentVersions: contentVersions,
		Mods:            mods,
		ModsDir:         modsDir,
	}, nil
}

// modManifest is the subset of an info.json manifest the scanner reads.
type modManifest struct {
	Name    string         `json:"name"`
	Version domain.Version `json:"version"`
}

// readMods collects the <dir>/*/info.json manifests. Entries without a
// readable manifest are skipped rather than failing the whole scan.
func readMods(dir string) ([]domain.InstalledMod, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var mods []domain.InstalledMod
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name(), "info.json"))
		if err != nil {
			continue
		}

		var manifest modManifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			continue
		}

		mods = append(mods, domain.InstalledMod{Name: manifest.Name, Version: manifest.Version})
	}

	return mods, nil
}
