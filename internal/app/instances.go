package app

import (
	"fmt"

	"go.fmods.dev/fmods/internal/core/domain"
	"go.trai.ch/zerr"
)

// AddInstance validates the directory at path and registers it under name.
// An existing name is only replaced with the replace flag, or after an
// interactive confirmation when prompting is enabled.
func (a *App) AddInstance(name, path string, makeDefault, replace bool) error {
	cfg, err := a.configs.Load()
	if err != nil {
		return err
	}

	if _, exists := cfg.Instances[name]; exists && !replace {
		fmt.Fprintf(a.out, "The instance %q already exists.\n", name)
		if !cfg.Ask || !a.confirm("Replace it? (yes/no)") {
			return zerr.With(domain.ErrInstanceExists, "instance", name)
		}
	}

	snapshot, err := a.snapshots.Load(path)
	if err != nil {
		return err
	}
	a.renderInstance(name, snapshot)

	cfg.Instances[name] = path
	if makeDefault {
		cfg.DefaultInstance = name
	}

	return a.configs.Save(cfg)
}

// RemoveInstance forgets the named instance; a default pointing at it is
// cleared as well. The instance directory itself is left untouched.
func (a *App) RemoveInstance(name string) error {
	cfg, err := a.configs.Load()
	if err != nil {
		return err
	}

	if _, ok := cfg.Instances[name]; !ok {
		return zerr.With(domain.ErrUnknownInstance, "instance", name)
	}

	delete(cfg.Instances, name)
	if cfg.DefaultInstance == name {
		cfg.DefaultInstance = ""
	}

	return a.configs.Save(cfg)
}

// ListInstances prints the configured instances and the default.
func (a *App) ListInstances() error {
	cfg, err := a.configs.Load()
	if err != nil {
		return err
	}

	defaultName := "not specified"
	if cfg.DefaultInstance != "" {
		defaultName = cfg.DefaultInstance
	}

	fmt.Fprintf(a.out, "Default instance: %s\n", modStyle.Render(defaultName))
	fmt.Fprintf(a.out, "Saved %s instances:\n", countStyle.Render(fmt.Sprint(len(cfg.Instances))))
	for name, path := range cfg.Instances {
		fmt.Fprintf(a.out, "  %s %s %s\n", modStyle.Render(name), arrow, path)
	}

	return nil
}

// SetDefaultInstance marks the named instance as the default.
func (a *App) SetDefaultInstance(name string) error {
	cfg, err := a.configs.Load()
	if err != nil {
		return err
	}

	if _, ok := cfg.Instances[name]; !ok {
		return zerr.With(domain.ErrUnknownInstance, "instance", name)
	}

	cfg.DefaultInstance = name

	return a.configs.Save(cfg)
}

// UnsetDefaultInstance clears the default instance.
func (a *App) UnsetDefaultInstance() error {
	cfg, err := a.configs.Load()
	if err != nil {
		return err
	}

	cfg.DefaultInstance = ""

	return a.configs.Save(cfg)
}
