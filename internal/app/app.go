// Package app implements the application layer for fmods: it connects the
// configuration store, the instance scanner and the per-instance registry
// and installer behind the CLI commands.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.fmods.dev/fmods/internal/core/domain"
	"go.fmods.dev/fmods/internal/core/ports"
	"go.fmods.dev/fmods/internal/engine/planner"
	"go.fmods.dev/fmods/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// maxParallelDownloads bounds the errgroup used for fresh installs.
const maxParallelDownloads = 4

// RegistryFactory builds a registry client bound to an instance snapshot.
type RegistryFactory func(*domain.Snapshot) ports.Registry

// InstallerFactory builds an installer bound to an instance snapshot.
type InstallerFactory func(*domain.Snapshot) ports.Installer

// App represents the main application logic.
type App struct {
	configs      ports.ConfigStore
	snapshots    ports.SnapshotLoader
	logger       ports.Logger
	newRegistry  RegistryFactory
	newInstaller InstallerFactory

	in  io.Reader
	out io.Writer
}

// New creates a new App instance. The registry and installer are created
// per resolved instance because both are bound to its snapshot.
func New(
	configs ports.ConfigStore,
	snapshots ports.SnapshotLoader,
	logger ports.Logger,
	newRegistry RegistryFactory,
	newInstaller InstallerFactory,
) *App {
	return &App{
		configs:      configs,
		snapshots:    snapshots,
		logger:       logger,
		newRegistry:  newRegistry,
		newInstaller: newInstaller,
		in:           os.Stdin,
		out:          os.Stdout,
	}
}

// WithIO overrides the prompt input and report output. Used for testing.
func (a *App) WithIO(in io.Reader, out io.Writer) *App {
	a.in = in
	a.out = out
	return a
}

// InstallOptions controls the install flow.
type InstallOptions struct {
	// Yes applies the plan without asking for confirmation.
	Yes bool
}

// Install resolves modID (at the given version, or the newest compatible
// release when nil) against the named instance, prints the change plan,
// asks for confirmation and applies it.
func (a *App) Install(ctx context.Context, instanceName, modID string, version *domain.Version, opts InstallOptions) error {
	cfg, _, snapshot, err := a.openInstance(instanceName)
	if err != nil {
		return err
	}

	a.logger.Info("resolving dependencies")

	registry := a.newRegistry(snapshot)
	resolved, err := resolver.Resolve(ctx, registry, snapshot, modID, version)
	if err != nil {
		return err
	}

	plan := planner.Compute(snapshot, resolved)
	a.renderPlan(plan)

	if plan.Empty() {
		return nil
	}

	if !opts.Yes && cfg.Ask && !a.confirm("Proceed? (yes/no)") {
		return nil
	}

	return a.apply(ctx, snapshot, plan)
}

// apply executes the plan: fresh installs download in parallel, updates
// run serially as remove-then-download, conflicting mods are removed last.
func (a *App) apply(ctx context.Context, snapshot *domain.Snapshot, plan *domain.Plan) error {
	installer := a.newInstaller(snapshot)

	if len(plan.Install) > 0 {
		a.logger.Info("downloading mods")

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(maxParallelDownloads)
		for _, action := range plan.Install {
			group.Go(func() error {
				return installer.Install(groupCtx, action.ModID, action.Version)
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}
	}

	if len(plan.Update) > 0 {
		a.logger.Info("updating mods")

		for _, action := range plan.Update {
			if err := installer.Remove(action.ModID); err != nil {
				return err
			}
			if err := installer.Install(ctx, action.ModID, action.NewVersion); err != nil {
				return err
			}
		}
	}

	if len(plan.Conflicts) > 0 {
		a.logger.Info("removing conflicting mods")

		for _, modID := range plan.Conflicts {
			if err := installer.Remove(modID); err != nil {
				return err
			}
		}
	}

	a.logger.Info("done")

	return nil
}

// Remove deletes an installed mod from the instance.
func (a *App) Remove(instanceName, modID string) error {
	_, _, snapshot, err := a.openInstance(instanceName)
	if err != nil {
		return err
	}

	if _, installed := snapshot.Installed(modID); !installed {
		return zerr.With(domain.ErrModNotInstalled, "mod", modID)
	}

	return a.newInstaller(snapshot).Remove(modID)
}

// List prints the instance's installed mods.
func (a *App) List(instanceName string) error {
	_, _, snapshot, err := a.openInstance(instanceName)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Installed %s mods:\n", countStyle.Render(fmt.Sprint(len(snapshot.Mods))))
	for _, mod := range snapshot.Mods {
		fmt.Fprintf(a.out, "  %s %s\n", modStyle.Render(mod.Name), mod.Version)
	}

	return nil
}

// Info prints the instance details: name, path, game version and the
// bundled content versions.
func (a *App) Info(instanceName string) error {
	_, name, snapshot, err := a.openInstance(instanceName)
	if err != nil {
		return err
	}

	a.renderInstance(name, snapshot)

	return nil
}

// openInstance resolves the instance name, falling back to the configured
// default, and scans it into a snapshot.
func (a *App) openInstance(name string) (*domain.Config, string, *domain.Snapshot, error) {
	cfg, err := a.configs.Load()
	if err != nil {
		return nil, "", nil, err
	}

	if name == "" {
		name = cfg.DefaultInstance
	}
	if name == "" {
		return nil, "", nil, domain.ErrNoInstanceSelected
	}

	path, ok := cfg.Instances[name]
	if !ok {
		return nil, "", nil, zerr.With(domain.ErrUnknownInstance, "instance", name)
	}

	snapshot, err := a.snapshots.Load(path)
	if err != nil {
		return nil, "", nil, err
	}

	return cfg, name, snapshot, nil
}

// confirm loops until the user answers yes or no.
func (a *App) confirm(prompt string) bool {
	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprintln(a.out, prompt)
		if !scanner.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}
